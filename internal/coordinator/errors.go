package coordinator

import (
	"errors"
	"fmt"
)

var (
	// ErrForbidden is returned when the caller lacks the role an operation needs.
	ErrForbidden = errors.New("operation not permitted")

	// ErrNotMember is returned when the caller does not belong to the group.
	ErrNotMember = errors.New("not a member of the group")
)

// ValidationError reports bad caller input. Nothing was written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// PersistError reports a storage failure after writing began.
//
// Compensated is true when every row the operation had already written was
// removed again, leaving storage as it was before the call.
type PersistError struct {
	Op          string
	Err         error
	Compensated bool
}

func (e *PersistError) Error() string {
	msg := fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
	if !e.Compensated {
		msg += " (not rolled back)"
	}
	return msg
}

func (e *PersistError) Unwrap() error { return e.Err }
