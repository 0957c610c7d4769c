package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/access"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	// DefaultPageSize is used when a list query does not set a limit.
	DefaultPageSize = 20
	// MaxPageSize caps the limit of list queries.
	MaxPageSize = 100
)

var ErrListCustomerOrdersQueryIsNotConstructed = errors.New(
	"ListCustomerOrdersQuery must be created via NewListCustomerOrdersQuery constructor",
)

// ListCustomerOrdersQuery retrieves the caller's own orders, newest first.
type ListCustomerOrdersQuery struct {
	caller access.Caller
	limit  int
	offset int

	guard guard.ConstructorGuard
}

// NewListCustomerOrdersQuery creates a paged list query. A zero limit selects DefaultPageSize.
func NewListCustomerOrdersQuery(caller access.Caller, limit, offset int) (ListCustomerOrdersQuery, error) {
	if limit == 0 {
		limit = DefaultPageSize
	}

	var limitErr, offsetErr error
	if limit < 1 || limit > MaxPageSize {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageSize)
	}
	if offset < 0 {
		offsetErr = errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}
	if err := errors.Join(limitErr, offsetErr); err != nil {
		return ListCustomerOrdersQuery{}, err
	}

	return ListCustomerOrdersQuery{
		caller: caller,
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListCustomerOrdersQueryIsNotConstructed)
}

// Caller returns the customer whose orders are listed.
func (q ListCustomerOrdersQuery) Caller() access.Caller {
	return q.caller
}

// Limit returns the page size.
func (q ListCustomerOrdersQuery) Limit() int {
	return q.limit
}

// Offset returns the number of orders skipped.
func (q ListCustomerOrdersQuery) Offset() int {
	return q.offset
}

// OrderSummary is one entry of a customer's order list.
type OrderSummary struct {
	ID           kernel.ID
	AgentID      *kernel.ID
	Status       order.Status
	PaymentMode  order.PaymentMode
	TotalAmount  kernel.Money
	CancelReason *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
