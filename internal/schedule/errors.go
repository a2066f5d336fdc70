package schedule

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidationError means the candidate slot itself is malformed. The caller
// fixes the input; nothing was checked against the snapshot.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid time slot: " + e.Reason
}

// ConflictError means the candidate overlaps an active visit for the same
// technician and day. It carries the conflicting visit so the UI can point
// at it.
type ConflictError struct {
	ConflictingID uuid.UUID
	Start         TimeOfDay
	End           TimeOfDay
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("technician already booked %s-%s (visit %s)", e.Start, e.End, e.ConflictingID)
}

// InvalidTransitionError means a status change was attempted over an edge
// the lifecycle does not have, including any edge out of a terminal state.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition visit from %s to %s", e.From, e.To)
}

// PreconditionError means the transition edge exists but its guard failed.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return e.Reason
}
