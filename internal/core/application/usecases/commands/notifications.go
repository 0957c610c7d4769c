package commands

import (
	"context"
	"fmt"
	"strings"

	"fooddelivery/internal/core/domain/model/account"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var notificationNamespace = uuid.MustParse("6f0b2a8e-4a57-4d1c-9a3e-0c2f5b7d9e11")

// notificationKey is stable for a given event, order and recipient, so a retried
// transition never enqueues the same message twice.
func notificationKey(event string, o *order.Order, recipient *account.Account) string {
	name := fmt.Sprintf("%s:%d:%d", event, o.ID().Int64(), recipient.ID().Int64())
	return uuid.NewSHA1(notificationNamespace, []byte(name)).String()
}

func greeting(a *account.Account) string {
	if a.FirstName() == "" {
		return "Hello,"
	}
	return fmt.Sprintf("Hello %s,", a.FirstName())
}

func orderPlacedMessage(o *order.Order, customer *account.Account) ports.Message {
	var b strings.Builder
	fmt.Fprintln(&b, greeting(customer))
	fmt.Fprintf(&b, "your order #%d has been placed. Total: %s.\n", o.ID().Int64(), o.TotalAmount())
	fmt.Fprintf(&b, "Give this code to the delivery agent on arrival: %s\n", o.OTP().Code())

	return ports.Message{
		Key:       notificationKey("order_placed", o, customer),
		OrderID:   o.ID(),
		Recipient: customer.Email(),
		Subject:   fmt.Sprintf("Order #%d placed", o.ID().Int64()),
		Body:      b.String(),
	}
}

func agentAssignedMessage(o *order.Order, agent *account.Account) ports.Message {
	var b strings.Builder
	fmt.Fprintln(&b, greeting(agent))
	fmt.Fprintf(&b, "order #%d has been assigned to you. Amount to collect: %s (%s).\n",
		o.ID().Int64(), o.TotalAmount(), o.PaymentMode())

	return ports.Message{
		Key:       notificationKey("agent_assigned", o, agent),
		OrderID:   o.ID(),
		Recipient: agent.Email(),
		Subject:   fmt.Sprintf("Order #%d assigned", o.ID().Int64()),
		Body:      b.String(),
	}
}

func orderCancelledMessage(o *order.Order, recipient *account.Account) ports.Message {
	reason := order.DefaultCancelReason
	if r := o.CancelReason(); r != nil {
		reason = *r
	}

	var b strings.Builder
	fmt.Fprintln(&b, greeting(recipient))
	fmt.Fprintf(&b, "order #%d has been cancelled. Reason: %s\n", o.ID().Int64(), reason)

	return ports.Message{
		Key:       notificationKey("order_cancelled", o, recipient),
		OrderID:   o.ID(),
		Recipient: recipient.Email(),
		Subject:   fmt.Sprintf("Order #%d cancelled", o.ID().Int64()),
		Body:      b.String(),
	}
}

func orderDeliveredMessage(o *order.Order, customer *account.Account) ports.Message {
	var b strings.Builder
	fmt.Fprintln(&b, greeting(customer))
	fmt.Fprintf(&b, "order #%d has been delivered. Enjoy your meal!\n", o.ID().Int64())

	return ports.Message{
		Key:       notificationKey("order_delivered", o, customer),
		OrderID:   o.ID(),
		Recipient: customer.Email(),
		Subject:   fmt.Sprintf("Order #%d delivered", o.ID().Int64()),
		Body:      b.String(),
	}
}

// notifyAll hands messages to the notifier. Failures are logged and swallowed:
// the transition has already committed.
func notifyAll(ctx context.Context, notifier ports.Notifier, logger *zap.Logger, msgs ...ports.Message) {
	for _, msg := range msgs {
		if err := notifier.Notify(ctx, msg); err != nil {
			logger.Warn("Failed to enqueue notification",
				zap.Int64("order_id", msg.OrderID.Int64()),
				zap.String("subject", msg.Subject),
				zap.Error(err),
			)
		}
	}
}
