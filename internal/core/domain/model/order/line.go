package order

import (
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// Line is one priced, quantified product entry of an order.
//
// The unit price is captured from the catalog when the line is created and is never
// re-read afterwards, so later catalog price changes do not alter historical orders.
type Line struct {
	productID kernel.ID
	quantity  int
	unitPrice kernel.Money
}

// NewLine creates an order line.
//
// Returns a validation error if the product id is not set or the quantity is not positive.
func NewLine(productID kernel.ID, quantity int, unitPrice kernel.Money) (Line, error) {
	if err := productID.Validate(); err != nil {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("product_id", err)
	}
	if quantity <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return Line{
		productID: productID,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

// ProductID returns the catalog product the line refers to.
func (l Line) ProductID() kernel.ID {
	return l.productID
}

// Quantity returns the number of units ordered.
func (l Line) Quantity() int {
	return l.quantity
}

// UnitPrice returns the price per unit captured at line creation.
func (l Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

// Total returns quantity x unit price.
func (l Line) Total() kernel.Money {
	return l.unitPrice.MulQuantity(l.quantity)
}

// SumLines returns the sum of all line totals.
func SumLines(lines []Line) kernel.Money {
	total := kernel.Zero()
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	return total
}
