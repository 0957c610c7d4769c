// Package queries contains read operations over orders and agents.
// Queries read straight from the database into read models shaped for the API;
// they never load aggregates and never take row locks.
package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/access"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its lines.
//
// Example:
//
//	query, err := NewGetOrderQuery(caller, orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrForbidden) {
//	    // not the owner, not the assigned agent and not an admin
//	}
type GetOrderQuery struct {
	caller  access.Caller
	orderID kernel.ID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order.
func NewGetOrderQuery(caller access.Caller, orderID kernel.ID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{caller: caller, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// Caller returns the account asking for the order.
func (q GetOrderQuery) Caller() access.Caller {
	return q.caller
}

// OrderID returns the requested order.
func (q GetOrderQuery) OrderID() kernel.ID {
	return q.orderID
}

// OrderLineView is one line of an order read model.
type OrderLineView struct {
	ProductID kernel.ID
	Quantity  int
	UnitPrice kernel.Money
	Total     kernel.Money
}

// GetOrderQueryResponse is the order read model.
//
// DeliveryCode is only filled for the owning customer while the code is still usable;
// agents and admins never see it.
type GetOrderQueryResponse struct {
	ID           kernel.ID
	CustomerID   kernel.ID
	AgentID      *kernel.ID
	Status       order.Status
	PaymentMode  order.PaymentMode
	TotalAmount  kernel.Money
	Lines        []OrderLineView
	DeliveryCode *string
	CancelReason *string
	DeliveredAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
