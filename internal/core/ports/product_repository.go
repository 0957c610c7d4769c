package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"
)

// ProductRepository is the read-only catalog lookup used to price order lines.
type ProductRepository interface {
	// Get retrieves a product with its current price.
	// Returns *errs.ObjectNotFoundError if the product does not exist.
	Get(ctx context.Context, id kernel.ID) (catalog.Product, error)
}
