package order_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Run("should parse every known status", func(t *testing.T) {
		for _, s := range []order.Status{order.Pending, order.Assigned, order.Delivered, order.Cancelled} {
			parsed, err := order.ParseStatus(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := order.ParseStatus("in_transit")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), `"in_transit" is not a valid status`)
	})

	t.Run("should reject empty status", func(t *testing.T) {
		_, err := order.ParseStatus("")

		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.Assigned.IsTerminal())
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
}

func TestStatus_Transitions(t *testing.T) {
	tests := []struct {
		name     string
		from     order.Status
		apply    func(order.Status) (order.Status, error)
		expected order.Status
		wantErr  bool
	}{
		{"edit pending", order.Pending, order.Status.Edit, order.Pending, false},
		{"edit assigned", order.Assigned, order.Status.Edit, "", true},
		{"edit delivered", order.Delivered, order.Status.Edit, "", true},
		{"edit cancelled", order.Cancelled, order.Status.Edit, "", true},

		{"assign pending", order.Pending, order.Status.Assign, order.Assigned, false},
		{"assign assigned", order.Assigned, order.Status.Assign, "", true},
		{"assign delivered", order.Delivered, order.Status.Assign, "", true},
		{"assign cancelled", order.Cancelled, order.Status.Assign, "", true},

		{"deliver pending", order.Pending, order.Status.Deliver, "", true},
		{"deliver assigned", order.Assigned, order.Status.Deliver, order.Delivered, false},
		{"deliver delivered", order.Delivered, order.Status.Deliver, "", true},
		{"deliver cancelled", order.Cancelled, order.Status.Deliver, "", true},

		{"cancel pending", order.Pending, order.Status.Cancel, order.Cancelled, false},
		{"cancel assigned", order.Assigned, order.Status.Cancel, order.Cancelled, false},
		{"cancel delivered", order.Delivered, order.Status.Cancel, "", true},
		{"cancel cancelled", order.Cancelled, order.Status.Cancel, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.apply(tt.from)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrInvalidState)
				assert.Contains(t, err.Error(), "in status "+tt.from.String())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestStatus_ValidateCanHaveAgent(t *testing.T) {
	t.Run("pending must not have an agent", func(t *testing.T) {
		assert.NoError(t, order.Pending.ValidateCanHaveAgent(false))
		assert.ErrorIs(t, order.Pending.ValidateCanHaveAgent(true), errs.ErrValueIsInvalid)
	})

	t.Run("assigned and delivered must have an agent", func(t *testing.T) {
		assert.NoError(t, order.Assigned.ValidateCanHaveAgent(true))
		assert.NoError(t, order.Delivered.ValidateCanHaveAgent(true))
		assert.Error(t, order.Assigned.ValidateCanHaveAgent(false))
		assert.Error(t, order.Delivered.ValidateCanHaveAgent(false))
	})

	t.Run("cancelled accepts both", func(t *testing.T) {
		assert.NoError(t, order.Cancelled.ValidateCanHaveAgent(true))
		assert.NoError(t, order.Cancelled.ValidateCanHaveAgent(false))
	})
}
