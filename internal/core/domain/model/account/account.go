package account

import (
	"errors"
	"net/mail"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// ErrAccountIsNotConstructed is returned when using an improperly initialized Account.
var ErrAccountIsNotConstructed = errors.New("Account must be created via RestoreAccount constructor")

// Account is a registered user as seen by the order lifecycle: identity, role, standing
// and, for agents, availability. Accounts are created and edited by the identity service;
// this service only reads them and flips agent availability.
//
// Business rules:
//   - Account must have a valid id and a parseable email
//   - Only agents are ever claimed or released
//   - Availability changes only through Claim and Release
//
// Example usage:
//
//	acc, err := RestoreAccount(id, "rider@example.com", "Sam", Agent, Active, Available)
//	if err != nil {
//	    // Handle restoration error
//	}
//	if err := acc.CanBeAssigned(); err != nil {
//	    // Agent is missing, inactive or busy
//	}
type Account struct {
	// id is the identity-store identifier, also the JWT subject
	id kernel.ID
	// email is where notifications are sent
	email string
	// firstName is used to address notifications
	firstName    string
	role         Role
	status       Status
	availability Availability
	// guard ensures the account was properly constructed
	guard guard.ConstructorGuard
}

// RestoreAccount reconstructs an Account from the identity store.
//
// Parameters:
//   - id: store identifier (must be positive)
//   - email: notification address (must parse as an RFC 5322 address)
//   - firstName: greeting name, may be empty
//   - role, status, availability: stored enumerations
//
// Returns:
//   - *Account: restored account
//   - error: aggregated validation errors
func RestoreAccount(
	id kernel.ID,
	email string,
	firstName string,
	role Role,
	status Status,
	availability Availability,
) (*Account, error) {
	a := &Account{
		firstName:    strings.TrimSpace(firstName),
		role:         role,
		status:       status,
		availability: availability,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setEmail(email),
		validateEnums(role, status, availability),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate checks if the Account was properly constructed.
func (a *Account) Validate() error {
	if a == nil {
		return ErrAccountIsNotConstructed
	}
	return a.guard.Validate(ErrAccountIsNotConstructed)
}

// ID returns the account identifier.
func (a *Account) ID() kernel.ID {
	return a.id
}

// Email returns the notification address.
func (a *Account) Email() string {
	return a.email
}

// FirstName returns the greeting name.
func (a *Account) FirstName() string {
	return a.firstName
}

// Role returns the account role.
func (a *Account) Role() Role {
	return a.role
}

// Status returns the account standing.
func (a *Account) Status() Status {
	return a.status
}

// Availability returns the agent availability.
func (a *Account) Availability() Availability {
	return a.availability
}

// IsActive reports whether the account may act.
func (a *Account) IsActive() bool {
	return a.status == Active
}

// CanBeAssigned checks that the account is an active, available agent.
//
// Returns:
//   - *errs.ObjectNotFoundError: the account is not an agent
//   - *errs.PreconditionError: the agent is blocked or deleted
//   - *errs.ConflictError: the agent already holds an order
func (a *Account) CanBeAssigned() error {
	if a.role != Agent {
		return errs.NewObjectNotFoundError("agent", a.id)
	}
	if a.status != Active {
		return errs.NewPreconditionError("agent", a.id, "is not active")
	}
	if a.availability != Available {
		return errs.NewConflictError("agent", a.id, "is already assigned to an order")
	}
	return nil
}

// Claim marks the agent as holding an order.
//
// Business rules:
//   - All CanBeAssigned rules apply
//
// The store applies the same transition with a compare-and-set update; Claim keeps the
// in-memory account consistent with it.
func (a *Account) Claim() error {
	if err := a.CanBeAssigned(); err != nil {
		return err
	}
	a.availability = Unavailable
	return nil
}

// Release marks the agent as free again. Releasing an available agent is a no-op.
func (a *Account) Release() {
	if a.role == Agent {
		a.availability = Available
	}
}

func (a *Account) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Account) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	a.email = email
	return nil
}

func validateEnums(role Role, status Status, availability Availability) error {
	_, roleErr := ParseRole(string(role))
	_, statusErr := ParseStatus(string(status))
	_, availabilityErr := ParseAvailability(string(availability))
	return errors.Join(roleErr, statusErr, availabilityErr)
}
