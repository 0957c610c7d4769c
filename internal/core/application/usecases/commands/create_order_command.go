package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/access"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a customer placing a new order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(caller, []LineInput{
//	    {ProductID: 1, Quantity: 2},
//	    {ProductID: 2, Quantity: 1},
//	}, order.CashOnDelivery, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	caller        access.Caller
	lines         []LineInput
	paymentMode   order.PaymentMode
	expectedTotal *kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place an order.
// Validates that there is at least one line, that every line references a product and
// has a positive quantity. expectedTotal is optional.
func NewCreateOrderCommand(
	caller access.Caller,
	lines []LineInput,
	paymentMode order.PaymentMode,
	expectedTotal *kernel.Money,
) (CreateOrderCommand, error) {
	if err := validateLineInputs(lines); err != nil {
		return CreateOrderCommand{}, err
	}
	if paymentMode == "" {
		paymentMode = order.CashOnDelivery
	}

	return CreateOrderCommand{
		caller:        caller,
		lines:         append([]LineInput(nil), lines...),
		paymentMode:   paymentMode,
		expectedTotal: expectedTotal,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Caller returns the customer placing the order.
func (c CreateOrderCommand) Caller() access.Caller {
	return c.caller
}

// Lines returns the requested lines.
func (c CreateOrderCommand) Lines() []LineInput {
	return append([]LineInput(nil), c.lines...)
}

// PaymentMode returns the requested payment mode.
func (c CreateOrderCommand) PaymentMode() order.PaymentMode {
	return c.paymentMode
}

// ExpectedTotal returns the total the client computed, or nil.
func (c CreateOrderCommand) ExpectedTotal() *kernel.Money {
	return c.expectedTotal
}
