package queries

import (
	"context"
	"database/sql"

	"fooddelivery/internal/core/domain/model/account"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListCustomerOrdersQueryHandler lists the orders placed by the calling customer.
type ListCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListCustomerOrdersQueryHandler creates a handler for customer order lists.
func NewListCustomerOrdersQueryHandler(db *gorm.DB) ListCustomerOrdersQueryHandler {
	return ListCustomerOrdersQueryHandler{db: db}
}

// Handle executes the query. Only active customers may list orders.
// Orders are sorted by creation time, newest first; ties keep the higher id first.
func (h ListCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListCustomerOrdersQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.Caller().Require("list orders", account.Customer); err != nil {
		return nil, err
	}

	orders := make([]OrderSummary, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			agent_id,
			status,
			payment_mode,
			total_amount,
			cancel_reason,
			created_at,
			updated_at
		FROM orders
		WHERE customer_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, query.Caller().ID.Int64(), query.Limit(), query.Offset()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			summary      OrderSummary
			id           int64
			agentID      sql.NullInt64
			status       string
			paymentMode  string
			total        decimal.Decimal
			cancelReason sql.NullString
		)

		err = rows.Scan(
			&id,
			&agentID,
			&status,
			&paymentMode,
			&total,
			&cancelReason,
			&summary.CreatedAt,
			&summary.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		summary.ID = kernel.ID(id)
		if agentID.Valid {
			agent := kernel.ID(agentID.Int64)
			summary.AgentID = &agent
		}
		summary.Status = order.Status(status)
		summary.PaymentMode = order.PaymentMode(paymentMode)
		if cancelReason.Valid {
			reason := cancelReason.String
			summary.CancelReason = &reason
		}

		amount, amountErr := kernel.NewMoney(total)
		if amountErr != nil {
			return nil, amountErr
		}
		summary.TotalAmount = amount

		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
