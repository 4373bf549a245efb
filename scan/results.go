package scan

import "time"

// ResultSet holds the files/dirs partition produced by one enumeration pass.
// It is not mutated after construction except for the single timestamp stamp
// applied by the owning Scanner.
type ResultSet struct {
	scanTarget string
	scanTime   time.Time
	stamped    bool
	files      []*Entity
	dirs       []*Entity
}

// NewResultSet builds a ResultSet for scanTarget. files and dirs may be empty.
func NewResultSet(scanTarget string, files, dirs []*Entity) *ResultSet {
	return &ResultSet{
		scanTarget: scanTarget,
		files:      files,
		dirs:       dirs,
	}
}

func (r *ResultSet) ScanTarget() string { return r.scanTarget }

// Timestamp reports the scan time and whether a Scanner has stamped one yet.
func (r *ResultSet) Timestamp() (time.Time, bool) { return r.scanTime, r.stamped }

// stamp sets the scan time exactly once. Later calls are no-ops.
func (r *ResultSet) stamp(t time.Time) {
	if r.stamped {
		return
	}
	r.scanTime = t
	r.stamped = true
}

func (r *ResultSet) Files() []*Entity { return r.files }
func (r *ResultSet) Dirs() []*Entity  { return r.dirs }

func (r *ResultSet) CountFiles() int { return len(r.files) }
func (r *ResultSet) CountDirs() int  { return len(r.dirs) }

// All merges dirs and files into one sequence, dirs first, de-duplicated by
// path in first-seen order.
func (r *ResultSet) All() []*Entity {
	seen := make(map[string]struct{}, len(r.dirs)+len(r.files))
	merged := make([]*Entity, 0, len(r.dirs)+len(r.files))

	for _, group := range [][]*Entity{r.dirs, r.files} {
		for _, ent := range group {
			if _, ok := seen[ent.Path()]; ok {
				continue
			}
			seen[ent.Path()] = struct{}{}
			merged = append(merged, ent)
		}
	}
	return merged
}
