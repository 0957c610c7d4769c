package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/access"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand withdraws an order, by its customer or by an admin.
//
// Example:
//
//	cmd, err := NewCancelOrderCommand(caller, orderID, "out of stock")
//	if err != nil {
//	    return err
//	}
//	cancelled, err := handler.Handle(ctx, cmd)
type CancelOrderCommand struct {
	caller  access.Caller
	orderID kernel.ID
	reason  string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a cancel command. An empty reason is replaced
// by the default reason when the order is cancelled.
func NewCancelOrderCommand(caller access.Caller, orderID kernel.ID, reason string) (CancelOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		caller:  caller,
		orderID: orderID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// Caller returns who is cancelling.
func (c CancelOrderCommand) Caller() access.Caller {
	return c.caller
}

// OrderID returns the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.ID {
	return c.orderID
}

// Reason returns the cancellation reason as supplied.
func (c CancelOrderCommand) Reason() string {
	return c.reason
}
