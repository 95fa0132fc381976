// Package errs defines the sentinel errors returned by verticat packages.
//
// Errors are wrapped with context via fmt.Errorf and the %w verb, so callers
// should compare with errors.Is rather than equality.
package errs

import "errors"

// Format errors raised while walking a native file.
var (
	// ErrBadSignature is returned when the file preamble is missing, short or
	// does not match the native file magic.
	ErrBadSignature = errors.New("bad native file signature")
	// ErrTruncated is returned when a fixed-size field or a column payload
	// cannot be read in full.
	ErrTruncated = errors.New("truncated native file")
	// ErrIO wraps an underlying read or write failure that is not an
	// end-of-input condition.
	ErrIO = errors.New("i/o error")
)

// Input and option errors.
var (
	ErrNotFound               = errors.New("input file does not exist")
	ErrInvalidColumnOrder     = errors.New("invalid column order")
	ErrSchemaMismatch         = errors.New("column definitions differ between inputs")
	ErrUnsupportedCompression = errors.New("unsupported compression type")
	ErrInvalidRowCount        = errors.New("invalid row count")
	ErrOutputExists           = errors.New("output file already exists")
)
