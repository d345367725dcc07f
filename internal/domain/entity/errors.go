package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidSource is matched by every SourceError.
var ErrInvalidSource = errors.New("invalid feed source")

// SourceError reports a configured source identifier that cannot be read.
type SourceError struct {
	Source string
	Reason string
	Err    error
}

// Error returns the reason along with the offending identifier.
func (e *SourceError) Error() string {
	msg := fmt.Sprintf("invalid feed source %q: %s", e.Source, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes ErrInvalidSource and the underlying cause, if any.
func (e *SourceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidSource}
	}
	return []error{ErrInvalidSource, e.Err}
}
