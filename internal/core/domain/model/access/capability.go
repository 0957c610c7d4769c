package access

import (
	"fooddelivery/internal/core/domain/model/account"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

// Actor is the role a caller plays towards a specific order.
type Actor string

const (
	// OwningCustomer is the active customer who placed the order.
	OwningCustomer Actor = "owning_customer"
	// Admin is any active administrator.
	Admin Actor = "admin"
)

// CanCreateOrder allows active customers.
func CanCreateOrder(c Caller) error {
	return c.Require("create order", account.Customer)
}

// CanEditOrder allows the active customer who owns the order.
func CanEditOrder(c Caller, o *order.Order) error {
	if err := c.Require("update order", account.Customer); err != nil {
		return err
	}
	if !o.IsOwnedBy(c.ID) {
		return errs.NewForbiddenError("update order", "order belongs to another customer")
	}
	return nil
}

// CanAssignAgent allows active admins.
func CanAssignAgent(c Caller) error {
	return c.Require("assign agent", account.Admin)
}

// CanVerifyDelivery allows the active agent the order is assigned to.
func CanVerifyDelivery(c Caller, o *order.Order) error {
	if err := c.Require("verify delivery", account.Agent); err != nil {
		return err
	}
	if !o.IsAssignedTo(c.ID) {
		return errs.NewForbiddenError("verify delivery", "caller is not the assigned agent")
	}
	return nil
}

// CanViewOrder allows admins, the owning customer and the assigned agent.
func CanViewOrder(c Caller, o *order.Order) error {
	return CanViewOrderOf(c, o.CustomerID(), o.AgentID())
}

// CanViewOrderOf applies the CanViewOrder rule to an order known only by its owner and agent,
// as read models are.
func CanViewOrderOf(c Caller, customerID kernel.ID, agentID *kernel.ID) error {
	switch {
	case c.Is(account.Admin):
		return nil
	case c.Is(account.Customer) && customerID == c.ID:
		return nil
	case c.Is(account.Agent) && agentID != nil && *agentID == c.ID:
		return nil
	default:
		return errs.NewForbiddenError("view order", "order is not visible to the caller")
	}
}

// ResolveCanceller decides in which capacity the caller cancels the order.
// Admins always act as Admin, even on their own orders.
func ResolveCanceller(c Caller, o *order.Order) (Actor, error) {
	switch {
	case c.Is(account.Admin):
		return Admin, nil
	case c.Is(account.Customer) && o.IsOwnedBy(c.ID):
		return OwningCustomer, nil
	case !c.IsActive():
		return "", errs.NewForbiddenError("cancel order", "account is not active")
	default:
		return "", errs.NewForbiddenError("cancel order", "only the owning customer or an admin may cancel")
	}
}
