package queries

import (
	"context"
	"database/sql"
	"errors"

	"fooddelivery/internal/core/domain/model/access"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order and its lines.
// Visibility follows access.CanViewOrder: admins, the owning customer and the assigned agent.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query.
// Returns *errs.ObjectNotFoundError for an unknown order and *errs.ForbiddenError when the
// caller may not see it.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var resp GetOrderQueryResponse
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var readErr error
		resp, readErr = h.read(tx, query)
		return readErr
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

// read loads the order row and its lines. Both statements must run on the same
// repeatable read transaction so the total and the lines come from one snapshot.
func (h GetOrderQueryHandler) read(db *gorm.DB, query GetOrderQuery) (GetOrderQueryResponse, error) {
	var (
		resp          GetOrderQueryResponse
		id            int64
		customerID    int64
		agentID       sql.NullInt64
		total         decimal.Decimal
		status        string
		paymentMode   string
		otpCode       string
		otpConsumedAt sql.NullTime
		cancelReason  sql.NullString
	)
	err := db.Raw(`
		SELECT
			id,
			customer_id,
			agent_id,
			total_amount,
			status,
			payment_mode,
			otp_code,
			otp_consumed_at,
			cancel_reason,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Int64()).Row().Scan(
		&id,
		&customerID,
		&agentID,
		&total,
		&status,
		&paymentMode,
		&otpCode,
		&otpConsumedAt,
		&cancelReason,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.ID = kernel.ID(id)
	resp.CustomerID = kernel.ID(customerID)
	if agentID.Valid {
		agent := kernel.ID(agentID.Int64)
		resp.AgentID = &agent
	}

	if err = access.CanViewOrderOf(query.Caller(), resp.CustomerID, resp.AgentID); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Status = order.Status(status)
	resp.PaymentMode = order.PaymentMode(paymentMode)
	if resp.TotalAmount, err = kernel.NewMoney(total); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if cancelReason.Valid {
		resp.CancelReason = &cancelReason.String
	}
	if otpConsumedAt.Valid {
		deliveredAt := otpConsumedAt.Time
		resp.DeliveredAt = &deliveredAt
	} else if query.Caller().ID == resp.CustomerID && !resp.Status.IsTerminal() {
		resp.DeliveryCode = &otpCode
	}

	if resp.Lines, err = h.lines(db, resp.ID); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) lines(db *gorm.DB, orderID kernel.ID) ([]OrderLineView, error) {
	rows, err := db.Raw(`
		SELECT
			product_id,
			quantity,
			unit_price
		FROM order_lines
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Int64()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]OrderLineView, 0)
	for rows.Next() {
		var (
			productID int64
			quantity  int
			unitPrice decimal.Decimal
		)
		if err = rows.Scan(&productID, &quantity, &unitPrice); err != nil {
			return nil, err
		}

		price, priceErr := kernel.NewMoney(unitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		lines = append(lines, OrderLineView{
			ProductID: kernel.ID(productID),
			Quantity:  quantity,
			UnitPrice: price,
			Total:     price.MulQuantity(quantity),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
