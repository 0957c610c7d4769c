package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"

	"go.uber.org/zap"
)

// DispatchResult summarises one dispatch run.
type DispatchResult struct {
	Sent   int
	Failed int
}

// DispatchNotificationsCommandHandler sends pending outbox notifications through the
// mail sender. A failed send is recorded on the notification and retried by a later run,
// until it has failed MaxAttempts times.
type DispatchNotificationsCommandHandler struct {
	outbox ports.NotificationOutbox
	sender ports.MailSender
	clock  kernel.Clock
	logger *zap.Logger
}

// NewDispatchNotificationsCommandHandler creates a dispatch handler.
func NewDispatchNotificationsCommandHandler(
	outbox ports.NotificationOutbox,
	sender ports.MailSender,
	clock kernel.Clock,
	logger *zap.Logger,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		outbox: outbox,
		sender: sender,
		clock:  clock,
		logger: logger.Named("dispatch_notifications"),
	}
}

// Handle delivers one batch. It stops early only when the outbox itself fails.
func (h DispatchNotificationsCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchNotificationsCommand,
) (DispatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchResult{}, err
	}

	pending, err := h.outbox.ListPending(ctx, cmd.BatchSize())
	if err != nil {
		return DispatchResult{}, err
	}

	var result DispatchResult
	for _, n := range pending {
		if sendErr := h.sender.Send(ctx, n.Message); sendErr != nil {
			result.Failed++
			h.logger.Warn("Notification delivery failed",
				zap.Int64("notification_id", n.ID),
				zap.Int64("order_id", n.Message.OrderID.Int64()),
				zap.Int("attempt", n.Attempts+1),
				zap.Error(sendErr),
			)
			if err = h.outbox.MarkAttemptFailed(ctx, n.ID, sendErr, cmd.MaxAttempts()); err != nil {
				return result, err
			}
			continue
		}

		result.Sent++
		if err = h.outbox.MarkSent(ctx, n.ID, h.clock.Now()); err != nil {
			return result, err
		}
	}

	return result, nil
}
