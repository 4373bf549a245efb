// Package analyze builds post-scan summaries over a ResultSet for
// inspection. It sits outside the scan contract: nothing here feeds back
// into scanning or persistence.
package analyze

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	"github.com/redjax/fileops/convert"
	"github.com/redjax/fileops/scan"
)

// DefaultLargestCount bounds the largest-files list in a Summary.
const DefaultLargestCount = 5

// Summary aggregates one ResultSet into headline numbers.
type Summary struct {
	Target         string
	Files          int
	Dirs           int
	TotalFileBytes int64
	TotalFileHuman string
	Largest        []LargeFile
}

// LargeFile is one entry of the largest-files list.
type LargeFile struct {
	Path      string
	SizeBytes int64
	SizeHuman string
}

// Summarize totals the file sizes in rs and picks out the largest entries.
// Entities whose size has become unavailable since the scan are skipped.
func Summarize(rs *scan.ResultSet) (*Summary, error) {
	if rs == nil {
		return nil, fmt.Errorf("summarize: result set is nil")
	}

	s := &Summary{
		Target: rs.ScanTarget(),
		Files:  rs.CountFiles(),
		Dirs:   rs.CountDirs(),
	}

	var sized []LargeFile
	for _, e := range rs.Files() {
		n, err := e.SizeBytes()
		if err != nil {
			if errors.Is(err, scan.ErrSizeUnavailable) {
				continue
			}
			return nil, err
		}
		s.TotalFileBytes += n
		sized = append(sized, LargeFile{
			Path:      e.Path(),
			SizeBytes: n,
			SizeHuman: convert.BytesToHuman(n),
		})
	}

	sort.Slice(sized, func(i, j int) bool { return sized[i].SizeBytes > sized[j].SizeBytes })
	if len(sized) > DefaultLargestCount {
		sized = sized[:DefaultLargestCount]
	}
	s.Largest = sized
	s.TotalFileHuman = convert.BytesToHuman(s.TotalFileBytes)

	return s, nil
}

// DeepSize walks the whole tree under path and sums the sizes of every
// regular file, however deep. This is deliberately a different number from
// Entity.SizeBytes, which only counts a directory's direct file children.
func DeepSize(path string) (int64, error) {
	var total atomic.Int64

	walk := func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total.Add(info.Size())
		return nil
	}

	if err := fastwalk.Walk(&fastwalk.Config{Follow: false}, path, walk); err != nil {
		return 0, err
	}
	return total.Load(), nil
}
