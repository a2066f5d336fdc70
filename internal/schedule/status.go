package schedule

// Status is the lifecycle state of a maintenance visit.
type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are permitted.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Transition validates a status change against the lifecycle:
//
//	SCHEDULED   -> IN_PROGRESS | CANCELLED
//	IN_PROGRESS -> COMPLETED   | CANCELLED
//
// COMPLETED and CANCELLED have no outbound edges. Completing requires a
// filed report; without one the transition is refused with a
// PreconditionError and the current status stands.
func Transition(from, to Status, reportFiled bool) error {
	if from.Terminal() {
		return &InvalidTransitionError{From: from, To: to}
	}

	switch {
	case from == StatusScheduled && to == StatusInProgress:
		return nil
	case from == StatusScheduled && to == StatusCancelled:
		return nil
	case from == StatusInProgress && to == StatusCancelled:
		return nil
	case from == StatusInProgress && to == StatusCompleted:
		if !reportFiled {
			return &PreconditionError{Reason: "a maintenance report must be filed before completing the visit"}
		}
		return nil
	}

	return &InvalidTransitionError{From: from, To: to}
}
