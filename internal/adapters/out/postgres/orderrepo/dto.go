// Package orderrepo persists order aggregates and their lines with GORM.
// An order is one row in "orders" plus one row per line in "order_lines"; both are
// written in the caller's transaction.
package orderrepo

import (
	"time"

	"fooddelivery/internal/adapters/out/postgres/accountrepo"
	"fooddelivery/internal/adapters/out/postgres/productrepo"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The (customer_id, created_at) index serves the customer order list.
// Customer and Agent only declare the foreign keys; they are never loaded or saved.
type OrderDTO struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	CustomerID    int64           `gorm:"not null;index:idx_orders_customer_created,priority:1"`
	AgentID       *int64          `gorm:"index"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Status        string          `gorm:"type:varchar(16);not null;index"`
	PaymentMode   string          `gorm:"type:varchar(8);not null;default:cod"`
	OTPCode       string          `gorm:"column:otp_code;type:varchar(6);not null"`
	OTPConsumedAt *time.Time      `gorm:"column:otp_consumed_at"`
	CancelReason  *string         `gorm:"type:varchar(100)"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime:false;index:idx_orders_customer_created,priority:2,sort:desc"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime:false"`
	Lines         []OrderLineDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	Customer *accountrepo.AccountDTO `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	Agent    *accountrepo.AccountDTO `gorm:"foreignKey:AgentID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is one line of an order. The unit price is the catalog price captured
// when the line was written. A product referenced by any line cannot be deleted.
type OrderLineDTO struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"not null;index"`
	ProductID int64           `gorm:"not null;index"`
	Quantity  int             `gorm:"not null;check:chk_order_lines_quantity,quantity > 0"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"`

	Product *productrepo.ProductDTO `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the database table name for order lines.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(o *order.Order) OrderDTO {
	var agentID *int64
	if id := o.AgentID(); id != nil {
		raw := id.Int64()
		agentID = &raw
	}

	return OrderDTO{
		ID:            o.ID().Int64(),
		CustomerID:    o.CustomerID().Int64(),
		AgentID:       agentID,
		TotalAmount:   o.TotalAmount().Decimal(),
		Status:        o.Status().String(),
		PaymentMode:   o.PaymentMode().String(),
		OTPCode:       o.OTP().Code(),
		OTPConsumedAt: o.OTPConsumedAt(),
		CancelReason:  o.CancelReason(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		Lines:         linesFromDomain(o),
	}
}

func linesFromDomain(o *order.Order) []OrderLineDTO {
	lines := o.Lines()
	dtos := make([]OrderLineDTO, 0, len(lines))
	for _, l := range lines {
		dtos = append(dtos, OrderLineDTO{
			OrderID:   o.ID().Int64(),
			ProductID: l.ProductID().Int64(),
			Quantity:  l.Quantity(),
			UnitPrice: l.UnitPrice().Decimal(),
		})
	}
	return dtos
}

// rowValues lists the order columns an update writes. A map is used so that
// nil pointers are written as NULL instead of being skipped.
func rowValues(dto OrderDTO) map[string]any {
	return map[string]any{
		"agent_id":        dto.AgentID,
		"total_amount":    dto.TotalAmount,
		"status":          dto.Status,
		"payment_mode":    dto.PaymentMode,
		"otp_consumed_at": dto.OTPConsumedAt,
		"cancel_reason":   dto.CancelReason,
		"updated_at":      dto.UpdatedAt,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	lines := make([]order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		price, err := kernel.NewMoney(l.UnitPrice)
		if err != nil {
			return nil, err
		}
		line, err := order.NewLine(kernel.ID(l.ProductID), l.Quantity, price)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	total, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}
	otp, err := kernel.RestoreOTP(dto.OTPCode)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	mode, err := order.ParsePaymentMode(dto.PaymentMode)
	if err != nil {
		return nil, err
	}

	var agentID *kernel.ID
	if dto.AgentID != nil {
		id := kernel.ID(*dto.AgentID)
		agentID = &id
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:            kernel.ID(dto.ID),
		CustomerID:    kernel.ID(dto.CustomerID),
		AgentID:       agentID,
		Lines:         lines,
		TotalAmount:   total,
		Status:        status,
		PaymentMode:   mode,
		OTP:           otp,
		OTPConsumedAt: dto.OTPConsumedAt,
		CancelReason:  dto.CancelReason,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	})
}
