package http

import (
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

type lineRequest struct {
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice *string `json:"unit_price,omitempty" validate:"omitempty,numeric"`
}

type createOrderRequest struct {
	Lines         []lineRequest `json:"lines" validate:"required,min=1,dive"`
	PaymentMode   string        `json:"payment_mode"`
	ExpectedTotal *string       `json:"expected_total,omitempty" validate:"omitempty,numeric"`
}

type updateOrderRequest struct {
	Lines         []lineRequest `json:"lines" validate:"required,min=1,dive"`
	PaymentMode   *string       `json:"payment_mode,omitempty"`
	ExpectedTotal *string       `json:"expected_total,omitempty" validate:"omitempty,numeric"`
}

type cancelOrderRequest struct {
	Reason string `json:"reason" validate:"max=100"`
}

type assignAgentRequest struct {
	AgentID int64 `json:"agent_id" validate:"required,gt=0"`
}

type verifyDeliveryRequest struct {
	Code string `json:"code" validate:"required"`
}

// LineResponse is one order line.
type LineResponse struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Total     string `json:"total"`
}

// OrderResponse is the JSON representation of an order.
type OrderResponse struct {
	ID           int64          `json:"id"`
	CustomerID   int64          `json:"customer_id"`
	AgentID      *int64         `json:"agent_id"`
	Status       string         `json:"status"`
	PaymentMode  string         `json:"payment_mode"`
	TotalAmount  string         `json:"total_amount"`
	Lines        []LineResponse `json:"lines,omitempty"`
	DeliveryCode *string        `json:"delivery_code,omitempty"`
	CancelReason *string        `json:"cancel_reason,omitempty"`
	DeliveredAt  *time.Time     `json:"delivered_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// AgentResponse is an agent that can take an order.
type AgentResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
}

func (r lineRequest) toInput() (commands.LineInput, error) {
	input := commands.LineInput{
		ProductID: kernel.ID(r.ProductID),
		Quantity:  r.Quantity,
	}
	price, err := parseOptionalMoney(r.UnitPrice)
	if err != nil {
		return commands.LineInput{}, err
	}
	input.UnitPrice = price
	return input, nil
}

func toLineInputs(lines []lineRequest) ([]commands.LineInput, error) {
	inputs := make([]commands.LineInput, 0, len(lines))
	for _, l := range lines {
		input, err := l.toInput()
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

func parseOptionalMoney(s *string) (*kernel.Money, error) {
	if s == nil {
		return nil, nil
	}
	m, err := kernel.NewMoneyFromString(*s)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func optionalID(id *kernel.ID) *int64 {
	if id == nil {
		return nil
	}
	raw := id.Int64()
	return &raw
}

// newOrderResponse renders an order returned by a command. The delivery code is only
// included when withCode is set.
func newOrderResponse(o *order.Order, withCode bool) OrderResponse {
	resp := OrderResponse{
		ID:           o.ID().Int64(),
		CustomerID:   o.CustomerID().Int64(),
		AgentID:      optionalID(o.AgentID()),
		Status:       o.Status().String(),
		PaymentMode:  o.PaymentMode().String(),
		TotalAmount:  o.TotalAmount().String(),
		CancelReason: o.CancelReason(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
	if o.Status() == order.Delivered {
		resp.DeliveredAt = o.OTPConsumedAt()
	}
	for _, l := range o.Lines() {
		resp.Lines = append(resp.Lines, LineResponse{
			ProductID: l.ProductID().Int64(),
			Quantity:  l.Quantity(),
			UnitPrice: l.UnitPrice().String(),
			Total:     l.Total().String(),
		})
	}
	if withCode {
		code := o.OTP().Code()
		resp.DeliveryCode = &code
	}
	return resp
}

func newOrderViewResponse(v queries.GetOrderQueryResponse) OrderResponse {
	resp := OrderResponse{
		ID:           v.ID.Int64(),
		CustomerID:   v.CustomerID.Int64(),
		AgentID:      optionalID(v.AgentID),
		Status:       v.Status.String(),
		PaymentMode:  v.PaymentMode.String(),
		TotalAmount:  v.TotalAmount.String(),
		DeliveryCode: v.DeliveryCode,
		CancelReason: v.CancelReason,
		DeliveredAt:  v.DeliveredAt,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
	for _, l := range v.Lines {
		resp.Lines = append(resp.Lines, LineResponse{
			ProductID: l.ProductID.Int64(),
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.String(),
			Total:     l.Total.String(),
		})
	}
	return resp
}

func newOrderSummaryResponse(s queries.OrderSummary, customerID kernel.ID) OrderResponse {
	return OrderResponse{
		ID:           s.ID.Int64(),
		CustomerID:   customerID.Int64(),
		AgentID:      optionalID(s.AgentID),
		Status:       s.Status.String(),
		PaymentMode:  s.PaymentMode.String(),
		TotalAmount:  s.TotalAmount.String(),
		CancelReason: s.CancelReason,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
