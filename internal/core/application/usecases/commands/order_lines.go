package commands

import (
	"context"
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// LineInput is a requested order line. UnitPrice is optional: when the client sends the
// price it saw, it must match the catalog price.
type LineInput struct {
	ProductID kernel.ID
	Quantity  int
	UnitPrice *kernel.Money
}

func validateLineInputs(lines []LineInput) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	var lineErrs []error
	for i, l := range lines {
		if err := l.ProductID.Validate(); err != nil {
			lineErrs = append(lineErrs, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("lines[%d].product_id", i), err))
		}
		if l.Quantity <= 0 {
			lineErrs = append(lineErrs, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("lines[%d].quantity", i),
				fmt.Errorf("%d is not greater than 0", l.Quantity),
			))
		}
	}
	return errors.Join(lineErrs...)
}

// priceLines builds order lines with unit prices read from the catalog.
func priceLines(ctx context.Context, products ports.ProductRepository, inputs []LineInput) ([]order.Line, error) {
	lines := make([]order.Line, 0, len(inputs))
	for i, in := range inputs {
		product, err := products.Get(ctx, in.ProductID)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("lines[%d].product_id", i), err)
		}
		if err != nil {
			return nil, err
		}

		if in.UnitPrice != nil && !in.UnitPrice.Equal(product.Price()) {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("lines[%d].unit_price", i),
				fmt.Errorf("%s does not match the current price %s", in.UnitPrice, product.Price()),
			)
		}

		line, err := order.NewLine(product.ID(), in.Quantity, product.Price())
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// checkExpectedTotal rejects a client-computed total that differs from the server total.
func checkExpectedTotal(expected *kernel.Money, o *order.Order) error {
	if expected == nil || expected.Equal(o.TotalAmount()) {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"total_amount",
		fmt.Errorf("%s does not match the computed total %s", expected, o.TotalAmount()),
	)
}
