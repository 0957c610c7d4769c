package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/access"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrVerifyDeliveryCommandIsNotConstructed = errors.New(
	"VerifyDeliveryCommand must be created via NewVerifyDeliveryCommand constructor",
)

// VerifyDeliveryCommand is the assigned agent presenting the delivery code.
// The code is kept exactly as supplied; it is never trimmed or normalised.
type VerifyDeliveryCommand struct {
	caller  access.Caller
	orderID kernel.ID
	code    string

	guard guard.ConstructorGuard
}

// NewVerifyDeliveryCommand creates a verification command.
func NewVerifyDeliveryCommand(caller access.Caller, orderID kernel.ID, code string) (VerifyDeliveryCommand, error) {
	if err := orderID.Validate(); err != nil {
		return VerifyDeliveryCommand{}, err
	}

	return VerifyDeliveryCommand{
		caller:  caller,
		orderID: orderID,
		code:    code,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrVerifyDeliveryCommandIsNotConstructed)
}

// Caller returns the agent presenting the code.
func (c VerifyDeliveryCommand) Caller() access.Caller {
	return c.caller
}

// OrderID returns the order being delivered.
func (c VerifyDeliveryCommand) OrderID() kernel.ID {
	return c.orderID
}

// Code returns the presented delivery code.
func (c VerifyDeliveryCommand) Code() string {
	return c.code
}
