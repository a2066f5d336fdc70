// Package schedule holds the pure scheduling rules for maintenance visits:
// the technician time-slot conflict check and the visit status lifecycle.
// It performs no I/O; callers fetch the snapshot of existing visits and
// persist the result themselves. Two callers validating against
// independently fetched snapshots can still race each other, so the
// database carries an exclusion constraint as the real guarantee and this
// check stays fast user feedback.
package schedule

import (
	"time"

	"github.com/google/uuid"
)

// Slot is the scheduling view of a maintenance visit: who, which day,
// which time range, and whether the visit still occupies the calendar.
type Slot struct {
	// ID is uuid.Nil for a visit not yet persisted. An edited visit
	// carries its own id so it does not conflict with itself.
	ID           uuid.UUID
	TechnicianID uuid.UUID
	Date         time.Time
	Start        TimeOfDay
	End          TimeOfDay
	Status       Status
}

// Validate decides whether candidate may be committed given a snapshot of
// existing visits. Ranges are half-open [start, end): back-to-back visits
// do not conflict. Only visits for the same technician on the exact same
// calendar day in a non-terminal status are considered, and the first
// overlap found is reported.
func Validate(candidate Slot, existing []Slot) error {
	if !candidate.Start.Valid() || !candidate.End.Valid() {
		return &ValidationError{Reason: "time out of range"}
	}
	if candidate.Start >= candidate.End {
		return &ValidationError{Reason: "start time must be before end time"}
	}

	for _, ex := range existing {
		if ex.TechnicianID != candidate.TechnicianID {
			continue
		}
		if !SameDate(ex.Date, candidate.Date) {
			continue
		}
		if ex.Status.Terminal() {
			continue
		}
		if candidate.ID != uuid.Nil && ex.ID == candidate.ID {
			continue
		}
		if candidate.Start < ex.End && candidate.End > ex.Start {
			return &ConflictError{ConflictingID: ex.ID, Start: ex.Start, End: ex.End}
		}
	}

	return nil
}
