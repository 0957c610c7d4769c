package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/access"
	"fooddelivery/internal/core/domain/model/account"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"

	"go.uber.org/zap"
)

// OTPGenerator produces delivery codes.
type OTPGenerator func() (kernel.OTP, error)

// CreateOrderCommandHandler handles the business logic for order creation.
// Prices every line from the catalog, generates the delivery code and stores the order
// with all of its lines in one transaction. The customer is notified with the code
// after commit.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, notifier, kernel.SystemClock{}, kernel.NewRandomOTP, logger)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// created.Status() == order.Pending
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	clock      kernel.Clock
	newOTP     OTPGenerator
	logger     *zap.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	clock kernel.Clock,
	newOTP OTPGenerator,
	logger *zap.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
		newOTP:     newOTP,
		logger:     logger.Named("create_order"),
	}
}

// Handle processes the order creation command and returns the created order.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.CanCreateOrder(cmd.Caller()); err != nil {
		return nil, err
	}

	otp, err := h.newOTP()
	if err != nil {
		return nil, err
	}

	var (
		created  *order.Order
		customer *account.Account
	)
	err = inTransaction(ctx, h.uowFactory, func() error {
		var txErr error
		created, customer, txErr = h.create(ctx, cmd, otp)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("Order created",
		zap.Int64("order_id", created.ID().Int64()),
		zap.Int64("customer_id", created.CustomerID().Int64()),
		zap.Stringer("total", created.TotalAmount()),
	)
	notifyAll(ctx, h.notifier, h.logger, orderPlacedMessage(created, customer))

	return created, nil
}

func (h CreateOrderCommandHandler) create(
	ctx context.Context,
	cmd CreateOrderCommand,
	otp kernel.OTP,
) (*order.Order, *account.Account, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customer, err := uow.AccountRepository().Get(ctx, cmd.Caller().ID)
	if err != nil {
		return nil, nil, err
	}

	lines, err := priceLines(ctx, uow.ProductRepository(), cmd.Lines())
	if err != nil {
		return nil, nil, err
	}

	o, err := order.NewOrder(customer.ID(), lines, cmd.PaymentMode(), otp, h.clock.Now())
	if err != nil {
		return nil, nil, err
	}
	if err = checkExpectedTotal(cmd.ExpectedTotal(), o); err != nil {
		return nil, nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return o, customer, nil
}
