package order

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

const (
	// DefaultCancelReason is stored when a cancellation carries no reason.
	DefaultCancelReason = "No reason provided"

	// MaxCancelReasonLength is the maximum number of characters kept for a cancel reason.
	MaxCancelReasonLength = 100
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrOrderAlreadyPersisted is returned by MarkPersisted when the order already has an identifier.
	ErrOrderAlreadyPersisted = errors.New("order already has an identifier")
)

// Order is the aggregate root of the delivery workflow. It owns its lines, its delivery
// code and its status, and every transition goes through one of its methods.
//
// Order follows these invariants:
//   - Always has at least one line
//   - Total amount equals the sum of quantity x unit price over all lines
//   - Status moves forward only: pending -> assigned -> delivered, or pending/assigned -> cancelled
//   - The delivery code is generated once at creation and stops authorising after a successful verification
//   - The customer never changes; the agent is set once, by assignment
//   - updated_at never moves backwards
type Order struct {
	// id is assigned by the store on first insert (zero until then)
	id kernel.ID

	// customerID is the owning customer
	customerID kernel.ID

	// agentID is the assigned agent (nil until assignment)
	agentID *kernel.ID

	lines       []Line
	totalAmount kernel.Money
	status      Status
	paymentMode PaymentMode

	// otp is the delivery code; otpConsumedAt is set once it authorised a delivery
	otp           kernel.OTP
	otpConsumedAt *time.Time

	// cancelReason is only set on cancellation
	cancelReason *string

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates a pending order for a customer.
//
// Parameters:
//   - customerID: the owning customer (must be a valid identifier)
//   - lines: at least one line, with catalog prices already captured
//   - paymentMode: how the order will be paid
//   - otp: the delivery code generated for this order
//   - now: server time, used for created_at and updated_at
//
// Example:
//
//	line, _ := order.NewLine(productID, 2, kernel.MustMoney("10.00"))
//	otp, _ := kernel.NewRandomOTP()
//	o, err := order.NewOrder(customerID, []order.Line{line}, order.CashOnDelivery, otp, clock.Now())
//	if err != nil {
//	    // Handle validation error
//	}
//
// The order starts Pending, with no agent and a total computed from its lines.
func NewOrder(customerID kernel.ID, lines []Line, paymentMode PaymentMode, otp kernel.OTP, now time.Time) (*Order, error) {
	o := &Order{
		status:        Pending,
		paymentMode:   paymentMode,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setCustomerID(customerID),
		o.setLines(lines),
		o.setOTP(otp),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreParams carries the persisted state of an order.
type RestoreParams struct {
	ID            kernel.ID
	CustomerID    kernel.ID
	AgentID       *kernel.ID
	Lines         []Line
	TotalAmount   kernel.Money
	Status        Status
	PaymentMode   PaymentMode
	OTP           kernel.OTP
	OTPConsumedAt *time.Time
	CancelReason  *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RestoreOrder rebuilds an order from persistence.
//
// The stored total is kept as is (it was computed when the lines were written);
// status and agent consistency is validated.
func RestoreOrder(p RestoreParams) (*Order, error) {
	if err := p.ID.Validate(); err != nil {
		return nil, err
	}
	if err := p.Status.Validate(); err != nil {
		return nil, err
	}
	if err := p.Status.ValidateCanHaveAgent(p.AgentID != nil); err != nil {
		return nil, err
	}

	o := &Order{
		id:            p.ID,
		agentID:       p.AgentID,
		totalAmount:   p.TotalAmount,
		status:        p.Status,
		paymentMode:   p.PaymentMode,
		otpConsumedAt: p.OTPConsumedAt,
		cancelReason:  p.CancelReason,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
		isConstructed: true,
	}
	if err := o.setCustomerID(p.CustomerID); err != nil {
		return nil, err
	}
	if len(p.Lines) == 0 {
		return nil, errs.NewValueIsRequiredError("lines")
	}
	o.lines = append([]Line(nil), p.Lines...)
	o.otp = p.OTP

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// MarkPersisted records the identifier the store assigned on insert.
func (o *Order) MarkPersisted(id kernel.ID) error {
	if !o.id.IsZero() {
		return ErrOrderAlreadyPersisted
	}
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// ID returns the order identifier (zero before the first insert).
func (o *Order) ID() kernel.ID {
	return o.id
}

// CustomerID returns the owning customer.
func (o *Order) CustomerID() kernel.ID {
	return o.customerID
}

// AgentID returns the assigned agent, or nil if none was assigned.
func (o *Order) AgentID() *kernel.ID {
	return o.agentID
}

// Lines returns a copy of the order lines.
func (o *Order) Lines() []Line {
	return append([]Line(nil), o.lines...)
}

// TotalAmount returns the order total.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentMode returns how the order is paid.
func (o *Order) PaymentMode() PaymentMode {
	return o.paymentMode
}

// OTP returns the stored delivery code.
func (o *Order) OTP() kernel.OTP {
	return o.otp
}

// OTPConsumedAt returns when the delivery code was used, or nil.
func (o *Order) OTPConsumedAt() *time.Time {
	return o.otpConsumedAt
}

// CancelReason returns the cancellation reason, or nil if the order was not cancelled.
func (o *Order) CancelReason() *string {
	return o.cancelReason
}

// CreatedAt returns the creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last change.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsOwnedBy reports whether the customer owns the order.
func (o *Order) IsOwnedBy(customerID kernel.ID) bool {
	return o.customerID == customerID
}

// IsAssignedTo reports whether the agent holds the order.
func (o *Order) IsAssignedTo(agentID kernel.ID) bool {
	return o.agentID != nil && *o.agentID == agentID
}

// ReplaceLines swaps the whole line set of a pending order and recomputes the total.
//
// This method enforces the following business rules:
//   - The order must be Pending
//   - The new line set must not be empty
//   - The delivery code is kept
//
// A nil paymentMode keeps the current one.
func (o *Order) ReplaceLines(lines []Line, paymentMode *PaymentMode, now time.Time) error {
	if _, err := o.status.Edit(); err != nil {
		return err
	}
	if err := o.setLines(lines); err != nil {
		return err
	}
	if paymentMode != nil {
		o.paymentMode = *paymentMode
	}
	o.touch(now)
	return nil
}

// CanAssignAgent checks that the order can take an agent, without changing it.
//
// Returns:
//   - *errs.ConflictError: an agent is already assigned
//   - *errs.StateError: the order is not Pending
func (o *Order) CanAssignAgent() error {
	if o.agentID != nil {
		return errs.NewConflictError("order", o.id, "already has an agent assigned")
	}
	if _, err := o.status.Assign(); err != nil {
		return err
	}
	return nil
}

// AssignAgent hands the order to an agent and moves it to Assigned.
//
// This method enforces the following business rules:
//   - The order must not have an agent yet (ConflictError otherwise)
//   - The order must be Pending (StateError otherwise)
//
// Locking the agent itself is the caller's job; the order only records the holder.
//
// Example:
//
//	if err := o.AssignAgent(agent.ID(), clock.Now()); err != nil {
//	    return err
//	}
func (o *Order) AssignAgent(agentID kernel.ID, now time.Time) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if err := o.CanAssignAgent(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.agentID = &agentID
	o.touch(now)
	return nil
}

// Cancel moves the order to Cancelled and stores the reason.
//
// Who may cancel and when is decided by services.CancellationPolicy before calling this;
// Cancel itself only enforces the status transition (Pending or Assigned only).
// An empty reason is stored as DefaultCancelReason.
//
// Returns the agent that held the order, so the caller can release it in the same transaction.
func (o *Order) Cancel(reason string, now time.Time) (*kernel.ID, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultCancelReason
	}
	if n := utf8.RuneCountInString(reason); n > MaxCancelReasonLength {
		return nil, errs.NewValueIsOutOfRangeError("reason", fmt.Sprintf("%d characters", n), 1, MaxCancelReasonLength)
	}

	previous := o.status
	newStatus, err := o.status.Cancel()
	if err != nil {
		return nil, err
	}

	o.status = newStatus
	o.cancelReason = &reason
	o.touch(now)

	if previous == Assigned {
		return o.agentID, nil
	}
	return nil, nil
}

// ConfirmDelivery checks the delivery code presented by the agent and completes the order.
//
// This method enforces the following business rules:
//   - Only the assigned agent may confirm (ForbiddenError)
//   - A consumed or missing code never authorises again (InvalidOTPError)
//   - The order must be Assigned (StateError)
//   - The code must match exactly (InvalidOTPError)
//
// On success the order is Delivered and the code is consumed. The caller releases the agent.
func (o *Order) ConfirmDelivery(agentID kernel.ID, code string, now time.Time) error {
	if !o.IsAssignedTo(agentID) {
		return errs.NewForbiddenError("confirm delivery", "caller is not the assigned agent")
	}
	if o.otpConsumedAt != nil || o.otp.IsEmpty() {
		return errs.NewInvalidOTPError(o.id)
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}
	if !o.otp.Matches(code) {
		return errs.NewInvalidOTPError(o.id)
	}

	consumedAt := now
	o.status = newStatus
	o.otpConsumedAt = &consumedAt
	o.touch(now)
	return nil
}

// touch advances updated_at, never backwards.
func (o *Order) touch(now time.Time) {
	if now.After(o.updatedAt) {
		o.updatedAt = now
	}
}

func (o *Order) setCustomerID(customerID kernel.ID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customer_id", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	total := SumLines(lines)
	if err := total.ValidateStorable("total_amount"); err != nil {
		return err
	}
	o.lines = append([]Line(nil), lines...)
	o.totalAmount = total
	return nil
}

func (o *Order) setOTP(otp kernel.OTP) error {
	if otp.IsEmpty() {
		return errs.NewValueIsRequiredError("otp")
	}
	o.otp = otp
	return nil
}
