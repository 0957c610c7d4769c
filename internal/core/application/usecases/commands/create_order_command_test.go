package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	price := kernel.MustMoney("10.00")
	lines := []commands.LineInput{{ProductID: 1, Quantity: 2, UnitPrice: &price}}

	cmd, err := commands.NewCreateOrderCommand(customerCaller, lines, "", nil)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, customerCaller, cmd.Caller())
	assert.Equal(t, lines, cmd.Lines())
	assert.Equal(t, order.CashOnDelivery, cmd.PaymentMode())
	assert.Nil(t, cmd.ExpectedTotal())
}

func TestNewCreateOrderCommand_EmptyLines(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(customerCaller, nil, order.CashOnDelivery, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreateOrderCommand_InvalidLines(t *testing.T) {
	lines := []commands.LineInput{
		{ProductID: 0, Quantity: 1},
		{ProductID: 2, Quantity: 0},
		{ProductID: 3, Quantity: -1},
	}

	_, err := commands.NewCreateOrderCommand(customerCaller, lines, order.CashOnDelivery, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Contains(t, err.Error(), "lines[0].product_id")
	assert.Contains(t, err.Error(), "lines[1].quantity")
	assert.Contains(t, err.Error(), "lines[2].quantity")
}

func TestCreateOrderCommand_ZeroValue(t *testing.T) {
	var cmd commands.CreateOrderCommand

	assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
