package storage

import "errors"

// Common storage errors
var (
	// ErrNothingToCompact indicates that no mergeable records are covered by the compaction
	ErrNothingToCompact = errors.New("nothing to compact")

	// ErrNotMergeable indicates that a record of this kind cannot replace log records
	ErrNotMergeable = errors.New("record kind is not mergeable")
)
