package entity

// Status is the shared lifecycle vocabulary for orders and order items.
// Orders never take READY; items use the full set.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusPreparing Status = "PREPARING"
	StatusReady     Status = "READY"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// statusRank orders the lifecycle. CANCELLED is reachable from any
// non-terminal state, so it carries no rank of its own.
var statusRank = map[Status]int{
	StatusPending:   0,
	StatusConfirmed: 1,
	StatusPreparing: 2,
	StatusReady:     3,
	StatusDelivered: 4,
}

func (s Status) Valid() bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

func (s Status) Rank() int {
	return statusRank[s]
}

// Terminal states admit no further transition.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether moving from one status to another respects
// lifecycle order. Re-applying the current status is allowed (idempotent
// no-op); CANCELLED is reachable from any non-terminal state.
func CanTransition(from, to Status) bool {
	if !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	if from.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return to.Rank() > from.Rank()
}
