package scan

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/redjax/fileops/history"
	"github.com/redjax/fileops/sysinfo"
)

// Platform answers which OS family a scan is running under. The answer is
// logged for information only and never changes scan behavior.
type Platform interface {
	IsLinux() bool
	IsMac() bool
	IsWindows() bool
	String() string
}

// Scanner ties a root path to timestamped, persistable scan runs. It owns its
// Target and ResultSet exclusively and is not safe for concurrent use.
type Scanner struct {
	scanPath string
	platform Platform
	history  *history.Store

	target   *Target
	results  *ResultSet
	scanTime time.Time

	// Set while ScanAndSave is in flight so Scan leaves the history
	// recording to it: the entry must not name an output file until the
	// save has actually succeeded.
	deferRecord bool
}

type Option func(*Scanner)

// WithPlatform replaces the default platform probe, mainly for tests.
func WithPlatform(p Platform) Option {
	return func(s *Scanner) { s.platform = p }
}

// WithHistory attaches a store that records completed scans. Recording is
// advisory: a failed write is logged, never surfaced as a scan failure.
func WithHistory(h *history.Store) Option {
	return func(s *Scanner) { s.history = h }
}

// NewScanner builds a Scanner for path. The target is created lazily on the
// first Scan call.
func NewScanner(path string, opts ...Option) (*Scanner, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: scan path cannot be empty", ErrInvalidArgument)
	}

	s := &Scanner{
		scanPath: filepath.Clean(path),
		platform: sysinfo.Host(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Scanner) ScanPath() string { return s.scanPath }

// Results is nil until a scan succeeds.
func (s *Scanner) Results() *ResultSet { return s.results }

// ScanTime reports the timestamp of the first successful timestamping and
// whether one has been set.
func (s *Scanner) ScanTime() (time.Time, bool) {
	return s.scanTime, !s.scanTime.IsZero()
}

// The timestamp is set once per Scanner; repeat scans reuse it.
func (s *Scanner) setScanTime() {
	if s.scanTime.IsZero() {
		s.scanTime = time.Now()
	}
}

func (s *Scanner) logPlatform() {
	switch {
	case s.platform.IsLinux():
		log.Printf("Linux detected, scanning %s", s.scanPath)
	case s.platform.IsMac():
		log.Printf("Mac detected, scanning %s", s.scanPath)
	case s.platform.IsWindows():
		log.Printf("Windows detected, scanning %s", s.scanPath)
	default:
		log.Printf("Unrecognized OS family %q, scanning %s", s.platform, s.scanPath)
	}
}

// Scan rebuilds the target, enumerates it and stores a fresh ResultSet. A
// missing root reports ErrNotFound and leaves any prior results untouched;
// the Scanner may be retried once the path appears. Each successful call
// overwrites the previous results but reuses the same scan timestamp.
func (s *Scanner) Scan() (*ResultSet, error) {
	target, err := NewTarget(s.scanPath)
	if err != nil {
		return nil, err
	}
	s.target = target

	s.logPlatform()

	if !s.target.Exists() {
		return nil, fmt.Errorf("%w: scan path %s", ErrNotFound, s.scanPath)
	}

	s.setScanTime()

	results, err := s.target.RunScan()
	if err != nil {
		return nil, err
	}
	results.stamp(s.scanTime)
	s.results = results

	if !s.deferRecord {
		s.recordHistory("")
	}

	return s.results, nil
}

func (s *Scanner) recordHistory(outputFile string) {
	if s.history == nil {
		return
	}
	entry := &history.Entry{
		Target:     s.scanPath,
		ScanTime:   s.scanTime,
		Files:      s.results.CountFiles(),
		Dirs:       s.results.CountDirs(),
		OutputFile: outputFile,
	}
	if err := s.history.Record(entry); err != nil {
		log.Printf("Recording scan history for %s: %v", s.scanPath, err)
	}
}

// ScanAndSave scans and persists the results to outputPath in one step. The
// run is recorded in history only once the save succeeds, so a failed write
// never leaves an entry naming a file that was not written.
func (s *Scanner) ScanAndSave(outputPath string) (*ResultSet, error) {
	if outputPath == "" {
		return nil, fmt.Errorf("%w: output path cannot be empty", ErrInvalidArgument)
	}
	s.deferRecord = true
	defer func() { s.deferRecord = false }()

	if _, err := s.Scan(); err != nil {
		return nil, err
	}
	if err := s.SaveToJSON(outputPath); err != nil {
		return nil, err
	}
	s.recordHistory(outputPath)
	return s.results, nil
}

// SaveToJSON serializes the current results to outputPath, creating parent
// directories as needed. Derived entity fields are evaluated at write time;
// any per-entity failure aborts the whole write so no partial snapshot is
// left behind. Calling this before a successful scan reports ErrInvalidState.
func (s *Scanner) SaveToJSON(outputPath string) error {
	if outputPath == "" {
		return fmt.Errorf("%w: output path cannot be empty", ErrInvalidArgument)
	}
	if s.results == nil {
		return fmt.Errorf("%w: no scan results to save, run Scan first", ErrInvalidState)
	}
	return writeSnapshot(s.results, outputPath)
}
