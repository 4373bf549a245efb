package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Target is a validated root path bound to one-level enumeration. Listing
// only ever inspects direct children of the root; it is not a tree walk.
type Target struct {
	path string
}

// NewTarget validates path syntactically. Existence is checked lazily by
// Exists and the enumeration operations, never at construction.
func NewTarget(path string) (*Target, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: target path cannot be empty", ErrInvalidArgument)
	}
	return &Target{path: filepath.Clean(path)}, nil
}

func (t *Target) Path() string { return t.path }

// Exists reports whether the target path currently exists.
func (t *Target) Exists() bool {
	_, err := os.Stat(t.path)
	return err == nil
}

func (t *Target) readChildren() ([]fs.DirEntry, error) {
	entries, err := os.ReadDir(t.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, t.path)
		}
		return nil, fmt.Errorf("%w: reading %s: %w", ErrScanFailed, t.path, err)
	}
	return entries, nil
}

// childIsDir partitions a direct child the same way Entity.Kind later will:
// symlinks are resolved, so a symlink to a directory counts as a directory.
// A broken symlink resolves to nothing and stays in the files bucket.
func (t *Target) childIsDir(ent fs.DirEntry) bool {
	if ent.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(filepath.Join(t.path, ent.Name()))
		if err != nil {
			return false
		}
		return info.IsDir()
	}
	return ent.IsDir()
}

// ListFiles returns one Entity per direct child that is not a directory.
func (t *Target) ListFiles() ([]*Entity, error) {
	entries, err := t.readChildren()
	if err != nil {
		return nil, err
	}

	var files []*Entity
	for _, ent := range entries {
		if t.childIsDir(ent) {
			continue
		}
		e, err := NewEntity(filepath.Join(t.path, ent.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, e)
	}
	return files, nil
}

// ListDirs returns one Entity per direct child that is a directory.
func (t *Target) ListDirs() ([]*Entity, error) {
	entries, err := t.readChildren()
	if err != nil {
		return nil, err
	}

	var dirs []*Entity
	for _, ent := range entries {
		if !t.childIsDir(ent) {
			continue
		}
		e, err := NewEntity(filepath.Join(t.path, ent.Name()))
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, e)
	}
	return dirs, nil
}

// RunScan combines ListFiles and ListDirs into one ResultSet keyed by the
// target path. A missing root reports ErrNotFound; any other enumeration
// failure carries ErrScanFailed with the cause attached.
func (t *Target) RunScan() (*ResultSet, error) {
	if !t.Exists() {
		return nil, fmt.Errorf("%w: scan target %s", ErrNotFound, t.path)
	}

	files, err := t.ListFiles()
	if err != nil {
		return nil, err
	}
	dirs, err := t.ListDirs()
	if err != nil {
		return nil, err
	}

	return NewResultSet(t.path, files, dirs), nil
}
