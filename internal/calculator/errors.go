package calculator

import "errors"

// Allocation and rebalancing errors. None of them imply side effects; callers
// fix their input and try again.
var (
	ErrNoParticipants       = errors.New("at least one participant is required")
	ErrDuplicateParticipant = errors.New("participant listed more than once")
	ErrUnknownParticipant   = errors.New("unknown participant")
	ErrInvalidWeight        = errors.New("weights must be positive")
	ErrInvalidShareTotal    = errors.New("shares must add up to 100%")
	ErrSplitMismatch        = errors.New("split amounts must add up to the total")
	ErrInvalidTotal         = errors.New("total must be positive")
)
