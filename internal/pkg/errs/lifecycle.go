package errs

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for rejected order lifecycle transitions.
var (
	ErrForbidden          = errors.New("operation is forbidden")
	ErrInvalidState       = errors.New("state is invalid")
	ErrWindowExpired      = errors.New("window has expired")
	ErrConflict           = errors.New("conflict")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrRateLimited        = errors.New("rate limit exceeded")
)

// ForbiddenError is returned when the caller lacks the role or ownership an operation requires.
type ForbiddenError struct {
	Action string
	Reason string
}

// NewForbiddenError creates a ForbiddenError for the given action.
func NewForbiddenError(action, reason string) *ForbiddenError {
	return &ForbiddenError{Action: action, Reason: reason}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrForbidden, sanitize(e.Action), sanitize(e.Reason))
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// StateError is returned when an operation is not valid for the current status of an entity.
type StateError struct {
	Operation string
	Status    string
}

// NewStateError creates a StateError describing the rejected operation and the status it was attempted in.
func NewStateError(operation, status string) *StateError {
	return &StateError{Operation: operation, Status: status}
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: cannot %s in status %s", ErrInvalidState, sanitize(e.Operation), sanitize(e.Status))
}

func (e *StateError) Unwrap() error {
	return ErrInvalidState
}

// WindowExpiredError is returned when a time-boxed operation is attempted after its window closed.
type WindowExpiredError struct {
	Operation string
	Window    time.Duration
	Elapsed   time.Duration
}

// NewWindowExpiredError creates a WindowExpiredError.
func NewWindowExpiredError(operation string, window, elapsed time.Duration) *WindowExpiredError {
	return &WindowExpiredError{Operation: operation, Window: window, Elapsed: elapsed}
}

func (e *WindowExpiredError) Error() string {
	return fmt.Sprintf("%s: %s is only allowed within %s, %s elapsed",
		ErrWindowExpired, sanitize(e.Operation), e.Window, e.Elapsed.Truncate(time.Second))
}

func (e *WindowExpiredError) Unwrap() error {
	return ErrWindowExpired
}

// ConflictError is returned when a resource is already claimed by someone else.
type ConflictError struct {
	ParamName string
	ID        any
	Reason    string
}

// NewConflictError creates a ConflictError.
func NewConflictError(paramName string, id any, reason string) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id, Reason: reason}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %v %s", ErrConflict, sanitize(e.ParamName), e.ID, sanitize(e.Reason))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// PreconditionError is returned when a referenced entity exists but is not in a usable condition.
type PreconditionError struct {
	ParamName string
	ID        any
	Reason    string
}

// NewPreconditionError creates a PreconditionError.
func NewPreconditionError(paramName string, id any, reason string) *PreconditionError {
	return &PreconditionError{ParamName: paramName, ID: id, Reason: reason}
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s %v %s", ErrPreconditionFailed, sanitize(e.ParamName), e.ID, sanitize(e.Reason))
}

func (e *PreconditionError) Unwrap() error {
	return ErrPreconditionFailed
}

// InvalidOTPError is returned when a delivery code does not authorise the transition.
// The message never contains the expected or supplied code.
type InvalidOTPError struct {
	OrderID any
}

// NewInvalidOTPError creates an InvalidOTPError for the given order.
func NewInvalidOTPError(orderID any) *InvalidOTPError {
	return &InvalidOTPError{OrderID: orderID}
}

func (e *InvalidOTPError) Error() string {
	return fmt.Sprintf("%s: order %v", ErrInvalidOTP, e.OrderID)
}

func (e *InvalidOTPError) Unwrap() error {
	return ErrInvalidOTP
}

// RateLimitedError is returned when too many attempts were made in the current window.
type RateLimitedError struct {
	Scope string
	Limit int64
}

// NewRateLimitedError creates a RateLimitedError.
func NewRateLimitedError(scope string, limit int64) *RateLimitedError {
	return &RateLimitedError{Scope: scope, Limit: limit}
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("%s: %s allows %d attempts", ErrRateLimited, sanitize(e.Scope), e.Limit)
}

func (e *RateLimitedError) Unwrap() error {
	return ErrRateLimited
}
