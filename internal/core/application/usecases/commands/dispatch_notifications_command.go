package commands

import (
	"errors"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	// DefaultNotificationBatchSize is how many pending notifications one dispatch run handles.
	DefaultNotificationBatchSize = 50
	// DefaultNotificationMaxAttempts is how many failed deliveries mark a notification failed.
	DefaultNotificationMaxAttempts = 5
)

var ErrDispatchNotificationsCommandIsNotConstructed = errors.New(
	"DispatchNotificationsCommand must be created via NewDispatchNotificationsCommand constructor",
)

// DispatchNotificationsCommand delivers a batch of pending outbox notifications.
type DispatchNotificationsCommand struct {
	batchSize   int
	maxAttempts int

	guard guard.ConstructorGuard
}

// NewDispatchNotificationsCommand creates a dispatch command.
func NewDispatchNotificationsCommand(batchSize, maxAttempts int) (DispatchNotificationsCommand, error) {
	var sizeErr, attemptsErr error
	if batchSize <= 0 {
		sizeErr = errs.NewValueIsOutOfRangeError("batch_size", batchSize, 1, "unbounded")
	}
	if maxAttempts <= 0 {
		attemptsErr = errs.NewValueIsOutOfRangeError("max_attempts", maxAttempts, 1, "unbounded")
	}
	if err := errors.Join(sizeErr, attemptsErr); err != nil {
		return DispatchNotificationsCommand{}, err
	}

	return DispatchNotificationsCommand{
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchNotificationsCommandIsNotConstructed)
}

// BatchSize returns the maximum number of notifications handled by one run.
func (c DispatchNotificationsCommand) BatchSize() int {
	return c.batchSize
}

// MaxAttempts returns the failure count after which a notification is given up.
func (c DispatchNotificationsCommand) MaxAttempts() int {
	return c.maxAttempts
}
