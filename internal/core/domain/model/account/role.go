package account

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Role is the opaque capability an account carries into every request.
type Role string

const (
	// Customer places, edits and cancels their own orders.
	Customer Role = "CUSTOMER"
	// Agent delivers orders and confirms them with the delivery code.
	Agent Role = "AGENT"
	// Admin assigns agents and cancels any non-terminal order.
	Admin Role = "ADMIN"
)

// ParseRole converts a stored value into a Role.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case Customer, Agent, Admin:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
	}
}

func (r Role) String() string {
	return string(r)
}

// Status is the account standing. Only active accounts may act.
type Status string

const (
	Active  Status = "ACTIVE"
	Blocked Status = "BLOCKED"
	Deleted Status = "DELETED"
)

// ParseStatus converts a stored value into a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case Active, Blocked, Deleted:
		return st, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid account status", s))
	}
}

func (s Status) String() string {
	return string(s)
}

// Availability tells whether an agent can take a new order.
// An agent is Unavailable exactly while it holds one non-terminal order.
type Availability string

const (
	Available   Availability = "AVAILABLE"
	Unavailable Availability = "UNAVAILABLE"
)

// ParseAvailability converts a stored value into an Availability.
func ParseAvailability(s string) (Availability, error) {
	switch a := Availability(s); a {
	case Available, Unavailable:
		return a, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("agent_status", fmt.Errorf("%q is not a valid availability", s))
	}
}

func (a Availability) String() string {
	return string(a)
}
