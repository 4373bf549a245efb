package scan

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Snapshot is the persisted form of a ResultSet. Timestamps are RFC 3339
// strings; ScanTimestamp is null until a Scanner has stamped the results.
type Snapshot struct {
	ScanTimestamp *string        `json:"scan_timestamp"`
	ScanTarget    string         `json:"scan_target"`
	Files         []EntityRecord `json:"files"`
	Dirs          []EntityRecord `json:"dirs"`
}

// EntityRecord is one entity with its derived fields evaluated at
// serialization time. Size fields are null when the size was unavailable.
type EntityRecord struct {
	Path        string  `json:"path"`
	Name        string  `json:"name"`
	EntityType  string  `json:"entity_type"`
	ParentDir   string  `json:"parent_dir"`
	CreatedAt   string  `json:"created_at"`
	ModifiedAt  string  `json:"modified_at"`
	SizeInBytes *int64  `json:"size_in_bytes"`
	SizeStr     *string `json:"size_str"`
}

func recordFromEntity(e *Entity) (EntityRecord, error) {
	kind, err := e.Kind()
	if err != nil {
		return EntityRecord{}, err
	}
	created, err := e.CreatedAt()
	if err != nil {
		return EntityRecord{}, err
	}
	modified, err := e.ModifiedAt()
	if err != nil {
		return EntityRecord{}, err
	}

	rec := EntityRecord{
		Path:       e.Path(),
		Name:       e.Name(),
		EntityType: string(kind),
		ParentDir:  e.ParentDir(),
		CreatedAt:  created.Format(time.RFC3339),
		ModifiedAt: modified.Format(time.RFC3339),
	}

	size, err := e.SizeBytes()
	switch {
	case err == nil:
		human := e.SizeHuman()
		rec.SizeInBytes = &size
		rec.SizeStr = &human
	case errors.Is(err, ErrSizeUnavailable):
		// Size fields stay null.
	default:
		return EntityRecord{}, err
	}

	return rec, nil
}

func snapshotFromResults(rs *ResultSet) (*Snapshot, error) {
	snap := &Snapshot{
		ScanTarget: rs.ScanTarget(),
		Files:      make([]EntityRecord, 0, rs.CountFiles()),
		Dirs:       make([]EntityRecord, 0, rs.CountDirs()),
	}

	if t, ok := rs.Timestamp(); ok {
		ts := t.Format(time.RFC3339)
		snap.ScanTimestamp = &ts
	}

	for _, e := range rs.Files() {
		rec, err := recordFromEntity(e)
		if err != nil {
			return nil, fmt.Errorf("serializing %s: %w", e.Path(), err)
		}
		snap.Files = append(snap.Files, rec)
	}
	for _, e := range rs.Dirs() {
		rec, err := recordFromEntity(e)
		if err != nil {
			return nil, fmt.Errorf("serializing %s: %w", e.Path(), err)
		}
		snap.Dirs = append(snap.Dirs, rec)
	}

	return snap, nil
}

func writeSnapshot(rs *ResultSet, outputPath string) error {
	snap, err := snapshotFromResults(rs)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding snapshot: %w", ErrWriteFailed, err)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: creating %s: %w", ErrWriteFailed, dir, err)
		}
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrWriteFailed, outputPath, err)
	}
	return nil
}

// LoadSnapshot reads a snapshot previously written by SaveToJSON.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", path, err)
	}
	return &snap, nil
}
