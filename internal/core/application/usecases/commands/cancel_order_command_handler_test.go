package commands_test

import (
	"strings"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/account"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newCancelHandler(t *testing.T, factory commands.UoWFactory, notifier ports.Notifier) commands.CancelOrderCommandHandler {
	t.Helper()
	return commands.NewCancelOrderCommandHandler(
		factory,
		services.NewCancellationPolicy(services.DefaultCancellationWindow),
		notifier,
		fixedClock,
		zaptest.NewLogger(t),
	)
}

func TestCancelOrderCommandHandler_Handle_CustomerWithinWindow(t *testing.T) {
	ctx := t.Context()
	existing := persistedOrder(t, now.Add(-29*time.Minute), order.Pending)
	cmd, err := commands.NewCancelOrderCommand(customerCaller, existing.ID(), "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	accountRepo := new(MockAccountRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once(),
		orderRepo.On("Update", ctx, existing).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	notifier := new(MockNotifier)

	cancelled, err := newCancelHandler(t, factory, notifier).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, cancelled.Status())
	assert.Equal(t, order.DefaultCancelReason, *cancelled.CancelReason())
	accountRepo.AssertNotCalled(t, "ReleaseAgent", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_CustomerRejections(t *testing.T) {
	tests := []struct {
		name      string
		createdAt time.Time
		status    order.Status
		wantErr   error
	}{
		{"window expired", now.Add(-31 * time.Minute), order.Pending, errs.ErrWindowExpired},
		{"assigned order", now.Add(-time.Minute), order.Assigned, errs.ErrInvalidState},
		{"delivered order", now.Add(-time.Minute), order.Delivered, errs.ErrInvalidState},
		{"already cancelled", now.Add(-time.Minute), order.Cancelled, errs.ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			existing := persistedOrder(t, tt.createdAt, tt.status)
			cmd, err := commands.NewCancelOrderCommand(customerCaller, existing.ID(), "changed my mind")
			require.NoError(t, err)

			orderRepo := new(MockOrderRepository)
			orderRepo.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once()
			accountRepo := new(MockAccountRepository)
			uow := new(MockUoW)
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("OrderRepository").Return(orderRepo).Once()
			uow.On("AccountRepository").Return(accountRepo).Once()
			uow.On("Rollback", ctx).Return(nil).Once()
			factory := new(MockUoWFactory)
			factory.On("Create").Return(uow).Once()

			_, err = newCancelHandler(t, factory, new(MockNotifier)).Handle(ctx, cmd)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.status, existing.Status())
			orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			uow.AssertNotCalled(t, "Commit", ctx)
		})
	}
}

func TestCancelOrderCommandHandler_Handle_ForbiddenForStranger(t *testing.T) {
	ctx := t.Context()
	existing := persistedOrder(t, now, order.Pending)
	cmd, err := commands.NewCancelOrderCommand(otherCustomer, existing.ID(), "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("AccountRepository").Return(new(MockAccountRepository)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = newCancelHandler(t, factory, new(MockNotifier)).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, order.Pending, existing.Status())
}

func TestCancelOrderCommandHandler_Handle_AdminCancelsAssignedOrder(t *testing.T) {
	ctx := t.Context()
	existing := persistedOrder(t, now.Add(-2*time.Hour), order.Assigned)
	cmd, err := commands.NewCancelOrderCommand(adminCaller, existing.ID(), "out of stock")
	require.NoError(t, err)

	customer := mustAccount(t, customerCaller.ID, account.Customer, account.Available)
	agent := mustAccount(t, agentCaller.ID, account.Agent, account.Unavailable)

	orderRepo := new(MockOrderRepository)
	accountRepo := new(MockAccountRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	var sent []ports.Message
	collect := func(args mock.Arguments) { sent = append(sent, args.Get(1).(ports.Message)) }

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once(),
		accountRepo.On("ReleaseAgent", ctx, agentCaller.ID).Return(nil).Once(),
		orderRepo.On("Update", ctx, existing).Return(nil).Once(),
		accountRepo.On("Get", ctx, customerCaller.ID).Return(customer, nil).Once(),
		accountRepo.On("Get", ctx, agentCaller.ID).Return(agent, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		notifier.On("Notify", ctx, mock.Anything).Run(collect).Return(nil).Twice(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	cancelled, err := newCancelHandler(t, factory, notifier).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, cancelled.Status())
	assert.Equal(t, "out of stock", *cancelled.CancelReason())

	require.Len(t, sent, 2)
	assert.Equal(t, customer.Email(), sent[0].Recipient)
	assert.Equal(t, agent.Email(), sent[1].Recipient)
	for _, m := range sent {
		assert.Contains(t, m.Body, "out of stock")
	}
	assert.NotEqual(t, sent[0].Key, sent[1].Key)

	accountRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_AdminCannotCancelTwice(t *testing.T) {
	ctx := t.Context()
	existing := persistedOrder(t, now, order.Cancelled)
	cmd, err := commands.NewCancelOrderCommand(adminCaller, existing.ID(), "again")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("AccountRepository").Return(new(MockAccountRepository)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = newCancelHandler(t, factory, new(MockNotifier)).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, order.DefaultCancelReason, *existing.CancelReason())
}

func TestCancelOrderCommandHandler_Handle_ReasonTooLong(t *testing.T) {
	ctx := t.Context()
	existing := persistedOrder(t, now, order.Pending)
	cmd, err := commands.NewCancelOrderCommand(customerCaller, existing.ID(), strings.Repeat("a", 101))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetForUpdate", ctx, existing.ID()).Return(existing, nil).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("AccountRepository").Return(new(MockAccountRepository)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = newCancelHandler(t, factory, new(MockNotifier)).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValidation)
	assert.Equal(t, order.Pending, existing.Status())
}

func TestNewCancelOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewCancelOrderCommand(customerCaller, kernel.ID(-1), "")

	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
