package scan

import "errors"

// Sentinel errors returned by the scan pipeline. Callers match them with
// errors.Is; wrapped causes stay reachable through errors.Unwrap.
var (
	// ErrInvalidArgument means a constructor or operation was given input
	// that violates its contract, like an empty path.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound means the scan target or an entity's backing path does
	// not exist at the time of the query.
	ErrNotFound = errors.New("path not found")

	// ErrScanFailed means enumeration hit a non-NotFound I/O error, such
	// as permission denied. The original cause is attached.
	ErrScanFailed = errors.New("scan failed")

	// ErrInvalidState means an operation was invoked before its
	// precondition held, like saving results before any successful scan.
	ErrInvalidState = errors.New("invalid state")

	// ErrWriteFailed means persisting a snapshot failed. The original
	// cause is attached.
	ErrWriteFailed = errors.New("write failed")

	// ErrSizeUnavailable means a size could not be determined because the
	// path is missing or is neither a regular file nor a directory.
	ErrSizeUnavailable = errors.New("size unavailable")
)
