package query

import "errors"

// Sentinel errors for invalid input. All of them are rejected up front;
// values are never silently clamped.
var (
	ErrEmptyQuery       = errors.New("query is empty")
	ErrQueryTooLong     = errors.New("query exceeds maximum length")
	ErrInvalidLimit     = errors.New("limit must be between 0 and the configured maximum")
	ErrInvalidThreshold = errors.New("threshold must be a number in [0,1]")
	ErrInvalidMode      = errors.New("unknown search mode")
)

// IsInvalidInput reports whether err is one of the input-validation
// errors, as opposed to a not-ready index or an internal failure.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrEmptyQuery) ||
		errors.Is(err, ErrQueryTooLong) ||
		errors.Is(err, ErrInvalidLimit) ||
		errors.Is(err, ErrInvalidThreshold) ||
		errors.Is(err, ErrInvalidMode)
}
