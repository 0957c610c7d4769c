package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/access"
	"fooddelivery/internal/core/domain/model/account"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"

	"go.uber.org/zap"
)

// CancelOrderCommandHandler cancels orders according to the CancellationPolicy.
//
// The owning customer may cancel a pending order inside the cancellation window.
// An admin may cancel any non-terminal order; the assigned agent, if any, is released
// in the same transaction, and after commit the customer and the agent are notified.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     services.CancellationPolicy
	notifier   ports.Notifier
	clock      kernel.Clock
	logger     *zap.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	policy services.CancellationPolicy,
	notifier ports.Notifier,
	clock kernel.Clock,
	logger *zap.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		notifier:   notifier,
		clock:      clock,
		logger:     logger.Named("cancel_order"),
	}
}

type cancellation struct {
	order      *order.Order
	actor      access.Actor
	recipients []*account.Account
}

// Handle processes the cancel command and returns the cancelled order.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var result cancellation
	err := inTransaction(ctx, h.uowFactory, func() error {
		var txErr error
		result, txErr = h.cancel(ctx, cmd)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("Order cancelled",
		zap.Int64("order_id", result.order.ID().Int64()),
		zap.String("actor", string(result.actor)),
		zap.Stringp("reason", result.order.CancelReason()),
	)

	msgs := make([]ports.Message, 0, len(result.recipients))
	for _, r := range result.recipients {
		msgs = append(msgs, orderCancelledMessage(result.order, r))
	}
	notifyAll(ctx, h.notifier, h.logger, msgs...)

	return result.order, nil
}

func (h CancelOrderCommandHandler) cancel(ctx context.Context, cmd CancelOrderCommand) (cancellation, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return cancellation{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	accountRepo := uow.AccountRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return cancellation{}, err
	}

	actor, err := access.ResolveCanceller(cmd.Caller(), o)
	if err != nil {
		return cancellation{}, err
	}

	now := h.clock.Now()
	if err = h.policy.Check(actor, o, now); err != nil {
		return cancellation{}, err
	}

	releasedAgent, err := o.Cancel(cmd.Reason(), now)
	if err != nil {
		return cancellation{}, err
	}

	if releasedAgent != nil {
		if err = accountRepo.ReleaseAgent(ctx, *releasedAgent); err != nil {
			return cancellation{}, err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return cancellation{}, err
	}

	var recipients []*account.Account
	if actor == access.Admin {
		recipients, err = h.loadRecipients(ctx, accountRepo, o.CustomerID(), releasedAgent)
		if err != nil {
			return cancellation{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return cancellation{}, err
	}

	return cancellation{order: o, actor: actor, recipients: recipients}, nil
}

func (h CancelOrderCommandHandler) loadRecipients(
	ctx context.Context,
	accounts ports.AccountRepository,
	customerID kernel.ID,
	agentID *kernel.ID,
) ([]*account.Account, error) {
	customer, err := accounts.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	recipients := []*account.Account{customer}

	if agentID != nil {
		agent, agentErr := accounts.Get(ctx, *agentID)
		if agentErr != nil {
			return nil, agentErr
		}
		recipients = append(recipients, agent)
	}
	return recipients, nil
}
