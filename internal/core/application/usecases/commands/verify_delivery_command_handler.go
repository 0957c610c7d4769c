package commands

import (
	"context"
	"fmt"

	"fooddelivery/internal/core/domain/model/access"
	"fooddelivery/internal/core/domain/model/account"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"go.uber.org/zap"
)

// VerifyDeliveryCommandHandler confirms a delivery with the order's delivery code.
//
// Checks run in this order: the caller must be the assigned agent, the attempt limiter
// must allow another try, the code must not be consumed, the order must be assigned and
// the code must match. On success the order is delivered, the code consumed and the agent
// released, all in one transaction.
//
// The limiter fails open: if its backend is unreachable the attempt is allowed and a
// warning is logged.
type VerifyDeliveryCommandHandler struct {
	uowFactory UoWFactory
	limiter    ports.AttemptLimiter
	notifier   ports.Notifier
	clock      kernel.Clock
	logger     *zap.Logger
}

// NewVerifyDeliveryCommandHandler creates a handler for delivery confirmation.
func NewVerifyDeliveryCommandHandler(
	uowFactory UoWFactory,
	limiter ports.AttemptLimiter,
	notifier ports.Notifier,
	clock kernel.Clock,
	logger *zap.Logger,
) VerifyDeliveryCommandHandler {
	return VerifyDeliveryCommandHandler{
		uowFactory: uowFactory,
		limiter:    limiter,
		notifier:   notifier,
		clock:      clock,
		logger:     logger.Named("verify_delivery"),
	}
}

// Handle processes the verification command and returns the delivered order.
func (h VerifyDeliveryCommandHandler) Handle(ctx context.Context, cmd VerifyDeliveryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Caller().Require("verify delivery", account.Agent); err != nil {
		return nil, err
	}

	var (
		delivered    *order.Order
		customer     *account.Account
		limitChecked bool
	)
	err := inTransaction(ctx, h.uowFactory, func() error {
		var txErr error
		delivered, customer, txErr = h.verify(ctx, cmd, &limitChecked)
		return txErr
	})
	if err != nil {
		h.logger.Info("Delivery verification rejected",
			zap.Int64("order_id", cmd.OrderID().Int64()),
			zap.Int64("agent_id", cmd.Caller().ID.Int64()),
			zap.Error(err),
		)
		return nil, err
	}

	h.logger.Info("Order delivered",
		zap.Int64("order_id", delivered.ID().Int64()),
		zap.Int64("agent_id", cmd.Caller().ID.Int64()),
	)
	notifyAll(ctx, h.notifier, h.logger, orderDeliveredMessage(delivered, customer))

	return delivered, nil
}

// verify runs one transaction attempt. checkedLimit makes sure a retried attempt does
// not count against the limiter twice.
func (h VerifyDeliveryCommandHandler) verify(
	ctx context.Context,
	cmd VerifyDeliveryCommand,
	checkedLimit *bool,
) (*order.Order, *account.Account, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	accountRepo := uow.AccountRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, nil, err
	}
	if err = access.CanVerifyDelivery(cmd.Caller(), o); err != nil {
		return nil, nil, err
	}

	if !*checkedLimit {
		*checkedLimit = true
		if err = h.checkLimit(ctx, cmd); err != nil {
			return nil, nil, err
		}
	}

	if err = o.ConfirmDelivery(cmd.Caller().ID, cmd.Code(), h.clock.Now()); err != nil {
		return nil, nil, err
	}

	if err = accountRepo.ReleaseAgent(ctx, cmd.Caller().ID); err != nil {
		return nil, nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, nil, err
	}

	customer, err := accountRepo.Get(ctx, o.CustomerID())
	if err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return o, customer, nil
}

func (h VerifyDeliveryCommandHandler) checkLimit(ctx context.Context, cmd VerifyDeliveryCommand) error {
	key := fmt.Sprintf("otp:%d:%d", cmd.OrderID().Int64(), cmd.Caller().ID.Int64())

	allowed, err := h.limiter.Allow(ctx, key)
	if err != nil {
		h.logger.Warn("Attempt limiter unavailable, allowing attempt",
			zap.Int64("order_id", cmd.OrderID().Int64()),
			zap.Error(err),
		)
		return nil
	}
	if !allowed {
		return errs.NewRateLimitedError("delivery verification", h.limiter.Limit())
	}
	return nil
}
