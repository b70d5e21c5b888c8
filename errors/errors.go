// Package errors defines all exported error sentinels for the mpsm library.
//
// This is the single source of truth for error values. Both the top-level
// mpsm package and internal packages import from here, ensuring errors.Is
// checks work across package boundaries and through wrapping.
package errors

import "github.com/cockroachdb/errors"

// Precondition errors
var (
	ErrInvalidThreadCount    = errors.New("mpsm: thread count must be at least 1")
	ErrInvalidChunkCount     = errors.New("mpsm: chunk count must be at least 1")
	ErrInvalidPartitionCount = errors.New("mpsm: partition count must be a power of two >= 2")
	ErrEmptyInput            = errors.New("mpsm: radix partitioning requires a non-empty table")
	ErrInvalidHistogram      = errors.New("mpsm: histograms must be non-empty with equal, non-zero widths")
	ErrInvalidPrefixSums     = errors.New("mpsm: prefix sums do not describe the input table")
)

// Execution errors
var (
	ErrScatterRegion = errors.New("mpsm: chunk does not fit its scatter region")
	ErrWorkerPanic   = errors.New("mpsm: worker panicked")
)

// Generator errors
var (
	ErrInvalidReuse = errors.New("mpsm: reuse probability must be in [0, 1)")
)

// Table file errors
var (
	ErrInvalidMagic   = errors.New("mpsm: invalid table file magic number")
	ErrInvalidVersion = errors.New("mpsm: unsupported table file version")
	ErrTruncatedFile  = errors.New("mpsm: table file is truncated")
	ErrChecksumFailed = errors.New("mpsm: table file checksum verification failed")
	ErrFileClosed     = errors.New("mpsm: table file is closed")
)
