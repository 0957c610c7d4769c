package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

// Message is an email-style notification about an order.
type Message struct {
	// Key deduplicates the message in the outbox.
	Key       string
	OrderID   kernel.ID
	Recipient string
	Subject   string
	Body      string
}

// Notifier accepts notifications after a transition has committed.
// Delivery is best-effort: callers log failures and never roll back because of them.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// PendingNotification is an outbox entry waiting for delivery.
type PendingNotification struct {
	ID       int64
	Message  Message
	Attempts int
}

// NotificationOutbox stores notifications until the dispatch job delivers them.
type NotificationOutbox interface {
	// ListPending returns up to limit undelivered notifications, oldest first.
	ListPending(ctx context.Context, limit int) ([]PendingNotification, error)

	// MarkSent records a successful delivery.
	MarkSent(ctx context.Context, id int64, at time.Time) error

	// MarkAttemptFailed records a failed delivery. After maxAttempts failures the
	// notification is marked failed and no longer listed as pending.
	MarkAttemptFailed(ctx context.Context, id int64, cause error, maxAttempts int) error
}

// MailSender delivers a message to its recipient.
type MailSender interface {
	Send(ctx context.Context, msg Message) error
}
