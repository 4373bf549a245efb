package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := OpenAt(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := setupTestStore(t)

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	entries := []*Entry{
		{Target: "/data/one", ScanTime: base, Files: 3, Dirs: 1},
		{Target: "/data/two", ScanTime: base.Add(time.Minute), Files: 5, Dirs: 2, OutputFile: "results.json"},
		{Target: "/data/three", ScanTime: base.Add(2 * time.Minute), Files: 0, Dirs: 0},
	}
	for _, e := range entries {
		require.NoError(t, store.Record(e))
	}

	recent, err := store.Recent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	// Newest first.
	assert.Equal(t, "/data/three", recent[0].Target)
	assert.Equal(t, "/data/two", recent[1].Target)
	assert.Equal(t, 5, recent[1].Files)
	assert.Equal(t, 2, recent[1].Dirs)
	assert.Equal(t, "results.json", recent[1].OutputFile)
	assert.True(t, recent[1].ScanTime.Equal(base.Add(time.Minute)))
}

func TestRecentOnEmptyStore(t *testing.T) {
	store := setupTestStore(t)

	recent, err := store.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}
