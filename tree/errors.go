package tree

import "errors"

// Configuration errors
var (
	// ErrInvalidConfig indicates a Config that failed validation.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrZeroWeight indicates that no type has a positive sampling weight.
	ErrZeroWeight = errors.New("total type weight is zero")
)

// Navigation errors
var (
	// ErrSlotOutOfRange indicates a child offset outside [0, GroupSize).
	ErrSlotOutOfRange = errors.New("slot offset out of range")

	// ErrUngeneratable indicates that no child group resolving to the required
	// type was found within Config.MaxAttempts regenerations.
	ErrUngeneratable = errors.New("ungeneratable child group")
)

// Store errors
var (
	// ErrIndexOutOfRange indicates a store index beyond the current length.
	ErrIndexOutOfRange = errors.New("store index out of range")

	// ErrCorrupt indicates a broken structural invariant.
	ErrCorrupt = errors.New("tree invariant violated")
)
