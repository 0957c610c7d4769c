package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/access"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand replaces the lines of a pending order.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	caller        access.Caller
	orderID       kernel.ID
	lines         []LineInput
	paymentMode   *order.PaymentMode
	expectedTotal *kernel.Money

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to replace an order's lines.
// A nil paymentMode keeps the current one; expectedTotal is optional.
func NewUpdateOrderCommand(
	caller access.Caller,
	orderID kernel.ID,
	lines []LineInput,
	paymentMode *order.PaymentMode,
	expectedTotal *kernel.Money,
) (UpdateOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), validateLineInputs(lines)); err != nil {
		return UpdateOrderCommand{}, err
	}

	return UpdateOrderCommand{
		caller:        caller,
		orderID:       orderID,
		lines:         append([]LineInput(nil), lines...),
		paymentMode:   paymentMode,
		expectedTotal: expectedTotal,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// Caller returns the customer editing the order.
func (c UpdateOrderCommand) Caller() access.Caller {
	return c.caller
}

// OrderID returns the order to edit.
func (c UpdateOrderCommand) OrderID() kernel.ID {
	return c.orderID
}

// Lines returns the new line set.
func (c UpdateOrderCommand) Lines() []LineInput {
	return append([]LineInput(nil), c.lines...)
}

// PaymentMode returns the new payment mode, or nil to keep the current one.
func (c UpdateOrderCommand) PaymentMode() *order.PaymentMode {
	return c.paymentMode
}

// ExpectedTotal returns the total the client computed, or nil.
func (c UpdateOrderCommand) ExpectedTotal() *kernel.Money {
	return c.expectedTotal
}
