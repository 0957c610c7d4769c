package order

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so that orders
// only move forward through the delivery workflow.
//
// State transitions:
//
//	Pending ──> Assigned ──> Delivered
//	   │           │
//	   └───────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. Cancelled is a tombstone, orders are never deleted.
type Status string

const (
	// Pending is the initial status. The customer may still edit or cancel the order.
	Pending Status = "pending"

	// Assigned means an agent holds the order and is on the way.
	Assigned Status = "assigned"

	// Delivered means the agent presented the correct delivery code. Final state.
	Delivered Status = "delivered"

	// Cancelled means the order was withdrawn by its customer or an admin. Final state.
	Cancelled Status = "cancelled"
)

// getValidStatuses returns every status the state machine knows about.
func getValidStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		Pending:   {},
		Assigned:  {},
		Delivered: {},
		Cancelled: {},
	}
}

// ParseStatus converts a stored value into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks that the Status is one of the known states.
// Statuses read from the database or the API must pass it before use.
func (s Status) Validate() error {
	if _, ok := getValidStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ValidateCanHaveAgent checks the consistency between the status and the agent reference.
//
// Business Rules:
//   - Pending orders have no agent
//   - Assigned and Delivered orders have an agent
//   - Cancelled orders may or may not have one, depending on when they were cancelled
func (s Status) ValidateCanHaveAgent(hasAgent bool) error {
	if hasAgent && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have an agent", s),
		)
	}
	if !hasAgent && (s == Assigned || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no agent", s),
		)
	}
	return nil
}

// Edit validates that the order lines may still be replaced.
//
// Valid only in Pending; the status itself does not change.
func (s Status) Edit() (Status, error) {
	if s != Pending {
		return "", errs.NewStateError("update order", s.String())
	}
	return s, nil
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Pending -> Assigned
//
// Reassignment is not supported: an assigned order keeps its agent until it is
// delivered or cancelled.
func (s Status) Assign() (Status, error) {
	if s != Pending {
		return "", errs.NewStateError("assign agent", s.String())
	}
	return Assigned, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - Assigned -> Delivered
func (s Status) Deliver() (Status, error) {
	if s != Assigned {
		return "", errs.NewStateError("confirm delivery", s.String())
	}
	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled
//   - Assigned -> Cancelled
//
// Cancelling an already cancelled order fails like any other invalid transition,
// so a repeated request is reported instead of silently accepted.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Assigned {
		return "", errs.NewStateError("cancel order", s.String())
	}
	return Cancelled, nil
}
