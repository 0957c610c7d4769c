package access

import (
	"fooddelivery/internal/core/domain/model/account"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// Caller is the authenticated account performing a request, reduced to what
// capability checks need.
type Caller struct {
	ID     kernel.ID
	Role   account.Role
	Status account.Status
}

// NewCaller builds a Caller from an account loaded from the identity store.
func NewCaller(a *account.Account) Caller {
	return Caller{
		ID:     a.ID(),
		Role:   a.Role(),
		Status: a.Status(),
	}
}

// IsActive reports whether the caller may act at all.
func (c Caller) IsActive() bool {
	return c.Status == account.Active && !c.ID.IsZero()
}

// Is reports whether the caller is active and holds the role.
func (c Caller) Is(role account.Role) bool {
	return c.IsActive() && c.Role == role
}

// Require returns a ForbiddenError unless the caller is active and holds the role.
func (c Caller) Require(action string, role account.Role) error {
	if !c.IsActive() {
		return errs.NewForbiddenError(action, "account is not active")
	}
	if c.Role != role {
		return errs.NewForbiddenError(action, "requires role "+role.String())
	}
	return nil
}
