package services

import (
	"time"

	"fooddelivery/internal/core/domain/model/access"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

// DefaultCancellationWindow is how long after creation a customer may still cancel.
const DefaultCancellationWindow = 30 * time.Minute

// CancellationPolicy is a domain service deciding whether an actor may cancel an order now.
//
// Business rules:
//   - The owning customer may cancel only a pending order, and only while
//     now - created_at <= window (the boundary itself is still inside the window)
//   - An admin may cancel any order that is not delivered or cancelled
//   - Cancelling a cancelled order is rejected for every actor
//
// Example usage:
//
//	policy := NewCancellationPolicy(DefaultCancellationWindow)
//	actor, err := access.ResolveCanceller(caller, o)
//	if err != nil {
//	    return err
//	}
//	if err := policy.Check(actor, o, clock.Now()); err != nil {
//	    return err // StateError or WindowExpiredError
//	}
type CancellationPolicy struct {
	window time.Duration
}

// NewCancellationPolicy creates a policy with the given customer window.
// A non-positive window selects DefaultCancellationWindow.
func NewCancellationPolicy(window time.Duration) CancellationPolicy {
	if window <= 0 {
		window = DefaultCancellationWindow
	}
	return CancellationPolicy{window: window}
}

// Window returns the customer cancellation window.
func (p CancellationPolicy) Window() time.Duration {
	if p.window <= 0 {
		return DefaultCancellationWindow
	}
	return p.window
}

// Check returns nil if the actor may cancel the order at now.
//
// Returns:
//   - *errs.StateError: the order status does not allow cancellation by this actor
//   - *errs.WindowExpiredError: the customer window has closed
//   - *errs.ForbiddenError: the actor is unknown
func (p CancellationPolicy) Check(actor access.Actor, o *order.Order, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	switch actor {
	case access.OwningCustomer:
		if o.Status() != order.Pending {
			return errs.NewStateError("cancel order", o.Status().String())
		}
		if elapsed := now.Sub(o.CreatedAt()); elapsed > p.Window() {
			return errs.NewWindowExpiredError("cancel order", p.Window(), elapsed)
		}
		return nil
	case access.Admin:
		if o.Status().IsTerminal() {
			return errs.NewStateError("cancel order", o.Status().String())
		}
		return nil
	default:
		return errs.NewForbiddenError("cancel order", "unknown actor")
	}
}
