package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/redjax/fileops/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlatform stands in for the host probe so tests never depend on the OS
// they happen to run under.
type fakePlatform struct {
	goos string
}

func (f fakePlatform) IsLinux() bool   { return f.goos == "linux" }
func (f fakePlatform) IsMac() bool     { return f.goos == "darwin" }
func (f fakePlatform) IsWindows() bool { return f.goos == "windows" }
func (f fakePlatform) String() string  { return f.goos }

func setupScanDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("abc"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	return dir
}

func TestNewScannerEmptyPath(t *testing.T) {
	_, err := NewScanner("")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestScannerScan(t *testing.T) {
	dir := setupScanDir(t)

	s, err := NewScanner(dir, WithPlatform(fakePlatform{goos: "linux"}))
	require.NoError(t, err)

	rs, err := s.Scan()
	require.NoError(t, err)

	assert.Equal(t, 2, rs.CountFiles())
	assert.Equal(t, 1, rs.CountDirs())

	all := rs.All()
	require.Len(t, all, 3)
	seen := map[string]bool{}
	for _, e := range all {
		assert.False(t, seen[e.Path()], "no duplicate paths in All()")
		seen[e.Path()] = true
	}

	ts, ok := rs.Timestamp()
	require.True(t, ok)
	assert.False(t, ts.IsZero())
	assert.Same(t, rs, s.Results())
}

func TestScannerTimestampSurvivesRescans(t *testing.T) {
	dir := setupScanDir(t)

	s, err := NewScanner(dir, WithPlatform(fakePlatform{goos: "darwin"}))
	require.NoError(t, err)

	first, err := s.Scan()
	require.NoError(t, err)
	firstTime, ok := first.Timestamp()
	require.True(t, ok)

	second, err := s.Scan()
	require.NoError(t, err)
	assert.NotSame(t, first, second, "each scan produces fresh results")

	secondTime, ok := second.Timestamp()
	require.True(t, ok)
	assert.Equal(t, firstTime, secondTime, "the scan timestamp is set once per Scanner")
}

func TestScannerMissingTarget(t *testing.T) {
	s, err := NewScanner(filepath.Join(t.TempDir(), "does", "not", "exist"),
		WithPlatform(fakePlatform{goos: "plan9"}))
	require.NoError(t, err)

	_, err = s.Scan()
	require.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, s.Results())

	_, ok := s.ScanTime()
	assert.False(t, ok, "a failed scan must not stamp a timestamp")

	// Saving before any successful scan is a state error, not a write error.
	err = s.SaveToJSON(filepath.Join(t.TempDir(), "out.json"))
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestScannerScanAndSaveRequiresOutputPath(t *testing.T) {
	s, err := NewScanner(setupScanDir(t))
	require.NoError(t, err)

	_, err = s.ScanAndSave("")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestScannerSaveAndLoadRoundTrip(t *testing.T) {
	dir := setupScanDir(t)
	out := filepath.Join(t.TempDir(), "results", "results.json")

	s, err := NewScanner(dir, WithPlatform(fakePlatform{goos: "linux"}))
	require.NoError(t, err)

	rs, err := s.ScanAndSave(out)
	require.NoError(t, err)

	snap, err := LoadSnapshot(out)
	require.NoError(t, err)

	assert.Equal(t, dir, snap.ScanTarget)
	require.NotNil(t, snap.ScanTimestamp)
	assert.Len(t, snap.Files, rs.CountFiles())
	assert.Len(t, snap.Dirs, rs.CountDirs())

	wantPaths := map[string]bool{}
	for _, e := range rs.All() {
		wantPaths[e.Path()] = true
	}
	gotPaths := map[string]bool{}
	for _, rec := range snap.Files {
		assert.Equal(t, "file", rec.EntityType)
		require.NotNil(t, rec.SizeInBytes)
		require.NotNil(t, rec.SizeStr)
		gotPaths[rec.Path] = true
	}
	for _, rec := range snap.Dirs {
		assert.Equal(t, "dir", rec.EntityType)
		gotPaths[rec.Path] = true
	}
	assert.Equal(t, wantPaths, gotPaths)

	// Spot-check one known file record.
	for _, rec := range snap.Files {
		if rec.Name != "a.txt" {
			continue
		}
		assert.Equal(t, int64(3), *rec.SizeInBytes)
		assert.Equal(t, "3.0 B", *rec.SizeStr)
		assert.Equal(t, dir, rec.ParentDir)
		assert.NotEmpty(t, rec.CreatedAt)
		assert.NotEmpty(t, rec.ModifiedAt)
	}
}

func TestScanAndSaveRecordsHistoryOnlyAfterWrite(t *testing.T) {
	dir := setupScanDir(t)
	store, err := history.OpenAt(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	s, err := NewScanner(dir, WithHistory(store))
	require.NoError(t, err)

	// Block the write: the output's parent "directory" is a regular file,
	// so MkdirAll must fail and no history row may appear.
	blockDir := t.TempDir()
	blocker := filepath.Join(blockDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err = s.ScanAndSave(filepath.Join(blocker, "out.json"))
	require.ErrorIs(t, err, ErrWriteFailed)

	entries, err := store.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries, "a failed save must not be recorded")

	// A successful save records exactly one entry naming the output file.
	out := filepath.Join(t.TempDir(), "out.json")
	rs, err := s.ScanAndSave(out)
	require.NoError(t, err)

	entries, err = store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, dir, entries[0].Target)
	assert.Equal(t, out, entries[0].OutputFile)
	assert.Equal(t, rs.CountFiles(), entries[0].Files)
	assert.Equal(t, rs.CountDirs(), entries[0].Dirs)
}

func TestSaveToJSONAbortsWhenEntityVanishes(t *testing.T) {
	dir := setupScanDir(t)

	s, err := NewScanner(dir)
	require.NoError(t, err)
	_, err = s.Scan()
	require.NoError(t, err)

	// Remove a scanned file before serialization. Derived fields are
	// evaluated at write time, so the whole save must fail.
	require.NoError(t, os.Remove(filepath.Join(dir, "a.txt")))

	out := filepath.Join(t.TempDir(), "out.json")
	err = s.SaveToJSON(out)
	require.ErrorIs(t, err, ErrNotFound)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no partial snapshot may be written")
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, ErrNotFound)
}
