// Package ports defines the contracts between the order lifecycle and its infrastructure:
// repositories bound to a unit of work, the notifier, the mail sender and the attempt limiter.
// These interfaces enable dependency inversion and testability.
package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and their lines.
type OrderRepository interface {
	// Add persists a new order together with all of its lines.
	// The store assigns the identifier and records it on the aggregate via MarkPersisted.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order row: status, agent, total, payment mode, delivery code
	// consumption, cancel reason and updated_at. Lines are not touched.
	Update(ctx context.Context, aggregate *order.Order) error

	// ReplaceLines deletes every stored line of the order and inserts the current ones,
	// then persists the order row like Update.
	ReplaceLines(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its lines.
	// Returns *errs.ObjectNotFoundError if the order does not exist.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// GetForUpdate retrieves an order with its lines and locks the order row
	// until the surrounding transaction ends (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error)

	// ListByCustomer returns the customer's orders, newest first.
	ListByCustomer(ctx context.Context, customerID kernel.ID, limit, offset int) ([]*order.Order, error)
}
