package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/access"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"go.uber.org/zap"
)

// UpdateOrderCommandHandler replaces the lines of a pending order owned by the caller.
// The old lines are deleted and the new ones inserted in the same transaction; the total
// is recomputed from catalog prices and the delivery code is kept.
type UpdateOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
	logger     *zap.Logger
}

// NewUpdateOrderCommandHandler creates a handler for order edits.
func NewUpdateOrderCommandHandler(uowFactory UoWFactory, clock kernel.Clock, logger *zap.Logger) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.Named("update_order"),
	}
}

// Handle processes the update command and returns the updated order.
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var updated *order.Order
	err := inTransaction(ctx, h.uowFactory, func() error {
		var txErr error
		updated, txErr = h.update(ctx, cmd)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("Order updated",
		zap.Int64("order_id", updated.ID().Int64()),
		zap.Int("lines", len(updated.Lines())),
		zap.Stringer("total", updated.TotalAmount()),
	)
	return updated, nil
}

func (h UpdateOrderCommandHandler) update(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = access.CanEditOrder(cmd.Caller(), o); err != nil {
		return nil, err
	}
	if _, err = o.Status().Edit(); err != nil {
		return nil, err
	}

	lines, err := priceLines(ctx, uow.ProductRepository(), cmd.Lines())
	if err != nil {
		return nil, err
	}
	if err = o.ReplaceLines(lines, cmd.PaymentMode(), h.clock.Now()); err != nil {
		return nil, err
	}
	if err = checkExpectedTotal(cmd.ExpectedTotal(), o); err != nil {
		return nil, err
	}

	if err = orderRepo.ReplaceLines(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
