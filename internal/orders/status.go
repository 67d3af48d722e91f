package orders

import "fmt"

type Status string

const (
	StatusPending   Status = "Pending"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusDelivered || s == StatusCancelled
}

// Terminal statuses have no outgoing transitions unless the reopen policy
// allows it.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// StatusPolicy decides whether an order may leave a terminal status.
// Reopening is off unless ALLOW_STATUS_REOPEN enables it.
type StatusPolicy struct {
	AllowReopen bool
}

func (p StatusPolicy) CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	if from.Terminal() && !p.AllowReopen {
		return false
	}
	return true
}

// InvalidStatusError reports a status value outside the enum.
type InvalidStatusError struct {
	Status string
}

func (e InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status: %q", e.Status)
}

// InvalidTransitionError reports a transition the policy rejects.
type InvalidTransitionError struct {
	From, To Status
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}
