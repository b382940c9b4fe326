package entities

import "errors"

// Sentinel errors returned by constructors and domain services. Callers
// match them with errors.Is; the wrapped message carries the detail.
var (
	// ErrInvalidConstraint marks a pattern constraint that cannot be solved
	// (multiple below 1 or above MaxMultiple, negative remainder).
	ErrInvalidConstraint = errors.New("invalid pattern constraint")

	// ErrInvalidInput marks solver or estimator arguments outside their domain.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCycleTooLong is returned when the LCM of the multiples exceeds
	// MaxCycleLength or overflows.
	ErrCycleTooLong = errors.New("repeat cycle too long")

	// ErrRangeTooWide is returned when the requested width range spans more
	// than MaxSearchSpan stitches.
	ErrRangeTooWide = errors.New("search range too wide")

	// ErrUnknownYarnWeight is returned when a yarn weight name cannot be parsed.
	ErrUnknownYarnWeight = errors.New("unknown yarn weight")

	// ErrUnknownShape is returned when a project shape name cannot be parsed.
	ErrUnknownShape = errors.New("unknown project shape")

	// ErrNotFound is returned by repositories for missing keys.
	ErrNotFound = errors.New("not found")
)
