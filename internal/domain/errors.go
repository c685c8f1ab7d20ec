package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that a file does not exist at the requested commit.
// Callers translate it to an empty line sequence rather than surfacing it;
// a file missing on one side is how added and deleted files diff.
var ErrNotFound = errors.New("file not found at commit")

// ValidationError reports a malformed thread selection range. It is never
// retried; the single selection-narrowed diff request that produced it is
// aborted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError constructs a ValidationError for the named field.
func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
