package services_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/access"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func createOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	line, err := order.NewLine(kernel.ID(1), 2, kernel.MustMoney("10.00"))
	require.NoError(t, err)
	otp, err := kernel.RestoreOTP("123456")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.ID(1), []order.Line{line}, order.CashOnDelivery, otp, createdAt)
	require.NoError(t, err)

	switch status {
	case order.Assigned:
		require.NoError(t, o.AssignAgent(kernel.ID(2), createdAt))
	case order.Delivered:
		require.NoError(t, o.AssignAgent(kernel.ID(2), createdAt))
		require.NoError(t, o.ConfirmDelivery(kernel.ID(2), "123456", createdAt))
	case order.Cancelled:
		_, err := o.Cancel("", createdAt)
		require.NoError(t, err)
	}
	return o
}

func TestCancellationPolicy_OwningCustomer(t *testing.T) {
	policy := services.NewCancellationPolicy(services.DefaultCancellationWindow)

	t.Run("should allow pending order inside the window", func(t *testing.T) {
		o := createOrder(t, order.Pending)

		assert.NoError(t, policy.Check(access.OwningCustomer, o, createdAt.Add(29*time.Minute)))
	})

	t.Run("should allow cancellation exactly at the boundary", func(t *testing.T) {
		o := createOrder(t, order.Pending)

		assert.NoError(t, policy.Check(access.OwningCustomer, o, createdAt.Add(30*time.Minute)))
	})

	t.Run("should reject after the window", func(t *testing.T) {
		o := createOrder(t, order.Pending)

		err := policy.Check(access.OwningCustomer, o, createdAt.Add(31*time.Minute))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrWindowExpired)
		assert.Contains(t, err.Error(), "31m0s elapsed")
	})

	t.Run("should reject non pending orders with state error", func(t *testing.T) {
		for _, status := range []order.Status{order.Assigned, order.Delivered, order.Cancelled} {
			o := createOrder(t, status)

			err := policy.Check(access.OwningCustomer, o, createdAt.Add(time.Minute))

			assert.ErrorIs(t, err, errs.ErrInvalidState, status.String())
		}
	})
}

func TestCancellationPolicy_Admin(t *testing.T) {
	policy := services.NewCancellationPolicy(0)
	long := createdAt.Add(48 * time.Hour)

	assert.Equal(t, services.DefaultCancellationWindow, policy.Window())
	assert.NoError(t, policy.Check(access.Admin, createOrder(t, order.Pending), long))
	assert.NoError(t, policy.Check(access.Admin, createOrder(t, order.Assigned), long))
	assert.ErrorIs(t, policy.Check(access.Admin, createOrder(t, order.Delivered), long), errs.ErrInvalidState)
	assert.ErrorIs(t, policy.Check(access.Admin, createOrder(t, order.Cancelled), long), errs.ErrInvalidState)
}

func TestCancellationPolicy_UnknownActor(t *testing.T) {
	policy := services.NewCancellationPolicy(time.Minute)

	err := policy.Check("courier", createOrder(t, order.Pending), createdAt)

	assert.ErrorIs(t, err, errs.ErrForbidden)
}
