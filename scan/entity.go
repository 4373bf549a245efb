// Package scan enumerates the direct children of a directory, wraps each one
// in an Entity with live metadata, aggregates them into a ResultSet and
// persists the result as a JSON snapshot.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/redjax/fileops/convert"
)

// Kind classifies an Entity as a file or a directory.
type Kind string

const (
	KindFile Kind = "file"
	KindDir  Kind = "dir"
)

// Entity is a metadata snapshot for one filesystem path. All derived fields
// (kind, timestamps, size) are recomputed from a fresh stat on every call so
// they always reflect the current filesystem state. An Entity whose path has
// vanished reports ErrNotFound instead of stale or zero values.
type Entity struct {
	path string
}

// NewEntity wraps path in an Entity. The path is not required to exist yet;
// existence is checked by the derived-field queries.
func NewEntity(path string) (*Entity, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: entity path cannot be empty", ErrInvalidArgument)
	}
	return &Entity{path: filepath.Clean(path)}, nil
}

func (e *Entity) Path() string { return e.path }

// Name is the final path component.
func (e *Entity) Name() string { return filepath.Base(e.path) }

// ParentDir is the path of the containing directory.
func (e *Entity) ParentDir() string { return filepath.Dir(e.path) }

func (e *Entity) stat() (os.FileInfo, error) {
	info, err := os.Stat(e.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, e.path)
		}
		return nil, fmt.Errorf("stat %s: %w", e.path, err)
	}
	return info, nil
}

// Kind reports whether the path is currently a file or a directory.
func (e *Entity) Kind() (Kind, error) {
	info, err := e.stat()
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return KindDir, nil
	}
	return KindFile, nil
}

// CreatedAt is the creation timestamp where the OS exposes one. Linux has no
// portable birth time, so the inode change time stands in there.
func (e *Entity) CreatedAt() (time.Time, error) {
	info, err := e.stat()
	if err != nil {
		return time.Time{}, err
	}
	return creationTime(info), nil
}

// ModifiedAt is the last modification timestamp.
func (e *Entity) ModifiedAt() (time.Time, error) {
	info, err := e.stat()
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// SizeBytes is the byte length for a file. For a directory it is the sum of
// the sizes of direct regular-file, non-symlink children only — subdirectories
// and symlinks are excluded, and the sum does not recurse. A missing path or
// one that is neither file nor directory reports ErrSizeUnavailable rather
// than a zero that could pass for an empty file.
func (e *Entity) SizeBytes() (int64, error) {
	info, err := os.Stat(e.path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrSizeUnavailable, e.path)
	}
	switch mode := info.Mode(); {
	case mode.IsRegular():
		return info.Size(), nil
	case mode.IsDir():
		return shallowDirSize(e.path)
	default:
		return 0, fmt.Errorf("%w: %s is neither file nor directory", ErrSizeUnavailable, e.path)
	}
}

// SizeHuman renders SizeBytes in base-1024 units. Unavailable sizes render
// as "0 bytes".
func (e *Entity) SizeHuman() string {
	n, err := e.SizeBytes()
	if err != nil {
		return convert.BytesToHuman(-1)
	}
	return convert.BytesToHuman(n)
}

func shallowDirSize(dir string) (int64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrSizeUnavailable, dir)
	}

	var total int64
	for _, ent := range entries {
		if !ent.Type().IsRegular() {
			continue
		}
		info, err := ent.Info()
		if err != nil {
			// Child vanished between the readdir and the stat.
			continue
		}
		total += info.Size()
	}
	return total, nil
}
