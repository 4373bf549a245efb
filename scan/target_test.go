package scan

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTargetEmptyPath(t *testing.T) {
	_, err := NewTarget("")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTargetExists(t *testing.T) {
	dir := t.TempDir()

	target, err := NewTarget(dir)
	require.NoError(t, err)
	assert.True(t, target.Exists())

	missing, err := NewTarget(filepath.Join(dir, "gone"))
	require.NoError(t, err)
	assert.False(t, missing.Exists())
}

func TestTargetListMissingPath(t *testing.T) {
	target, err := NewTarget(filepath.Join(t.TempDir(), "gone"))
	require.NoError(t, err)

	_, err = target.ListFiles()
	require.ErrorIs(t, err, ErrNotFound)

	_, err = target.ListDirs()
	require.ErrorIs(t, err, ErrNotFound)

	_, err = target.RunScan()
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTargetRunScanPartitionsChildren(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), 3)
	writeFile(t, filepath.Join(dir, "b.txt"), 5)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "other"), 0o755))

	target, err := NewTarget(dir)
	require.NoError(t, err)

	rs, err := target.RunScan()
	require.NoError(t, err)

	assert.Equal(t, dir, rs.ScanTarget())
	assert.Equal(t, 2, rs.CountFiles())
	assert.Equal(t, 2, rs.CountDirs())

	// Every direct child lands in exactly one bucket. Enumeration order is
	// not part of the contract, so only set membership is checked.
	children, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, rs.All(), len(children))

	got := map[string]Kind{}
	for _, e := range rs.Files() {
		got[e.Name()] = KindFile
	}
	for _, e := range rs.Dirs() {
		got[e.Name()] = KindDir
	}
	assert.Equal(t, map[string]Kind{
		"a.txt": KindFile,
		"b.txt": KindFile,
		"sub":   KindDir,
		"other": KindDir,
	}, got)
}

func TestTargetClassifiesSymlinksByResolvedKind(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs extra privileges on windows")
	}

	dir := t.TempDir()
	realDir := filepath.Join(dir, "realdir")
	require.NoError(t, os.Mkdir(realDir, 0o755))
	writeFile(t, filepath.Join(dir, "real.txt"), 1)
	require.NoError(t, os.Symlink(realDir, filepath.Join(dir, "dirlink")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "real.txt"), filepath.Join(dir, "filelink")))

	target, err := NewTarget(dir)
	require.NoError(t, err)

	rs, err := target.RunScan()
	require.NoError(t, err)

	names := func(entities []*Entity) map[string]bool {
		got := map[string]bool{}
		for _, e := range entities {
			got[e.Name()] = true
		}
		return got
	}
	assert.Equal(t, map[string]bool{"realdir": true, "dirlink": true}, names(rs.Dirs()))
	assert.Equal(t, map[string]bool{"real.txt": true, "filelink": true}, names(rs.Files()))

	// The buckets agree with what each entity reports about itself.
	for _, e := range rs.Dirs() {
		kind, err := e.Kind()
		require.NoError(t, err)
		assert.Equal(t, KindDir, kind, "%s in dirs bucket", e.Name())
	}
	for _, e := range rs.Files() {
		kind, err := e.Kind()
		require.NoError(t, err)
		assert.Equal(t, KindFile, kind, "%s in files bucket", e.Name())
	}
}

func TestTargetListOnlyInspectsDirectChildren(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeFile(t, filepath.Join(sub, "nested.txt"), 1)

	target, err := NewTarget(dir)
	require.NoError(t, err)

	files, err := target.ListFiles()
	require.NoError(t, err)
	assert.Empty(t, files, "nested files must not appear")

	dirs, err := target.ListDirs()
	require.NoError(t, err)
	require.Len(t, dirs, 1)
	assert.Equal(t, "sub", dirs[0].Name())
}
