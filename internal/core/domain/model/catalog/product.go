// Package catalog holds the read-only view of catalog products the order lifecycle
// prices lines from. Products are managed elsewhere; the lifecycle only reads the
// current price when a line is created.
package catalog

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// Product is a catalog entry with its current unit price.
type Product struct {
	id    kernel.ID
	name  string
	price kernel.Money
}

// RestoreProduct rebuilds a product read from the catalog.
func RestoreProduct(id kernel.ID, name string, price kernel.Money) (Product, error) {
	name = strings.TrimSpace(name)

	var nameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if err := errors.Join(id.Validate(), nameErr); err != nil {
		return Product{}, err
	}

	return Product{id: id, name: name, price: price}, nil
}

// ID returns the product identifier.
func (p Product) ID() kernel.ID {
	return p.id
}

// Name returns the display name.
func (p Product) Name() string {
	return p.name
}

// Price returns the current unit price.
func (p Product) Price() kernel.Money {
	return p.price
}
