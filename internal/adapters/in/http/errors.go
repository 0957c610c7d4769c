package http

import (
	"errors"
	"fmt"
	"net/http"

	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Classify maps an error to its HTTP status and stable error code.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrInvalidOTP):
		return http.StatusBadRequest, "invalid_otp"
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest, "validation_failed"
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, errs.ErrInvalidState):
		return http.StatusUnprocessableEntity, "invalid_state"
	case errors.Is(err, errs.ErrWindowExpired):
		return http.StatusUnprocessableEntity, "window_expired"
	case errors.Is(err, errs.ErrPreconditionFailed):
		return http.StatusUnprocessableEntity, "precondition_failed"
	case errors.Is(err, errs.ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// NewErrorHandler renders handler errors as ErrorResponse. Internal failures are logged
// and answered with a generic message.
func NewErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			status int
			body   ErrorResponse
			he     *echo.HTTPError
		)
		if errors.As(err, &he) {
			status = he.Code
			body = ErrorResponse{Code: codeForStatus(he.Code), Message: fmt.Sprint(he.Message)}
		} else {
			status, body.Code = Classify(err)
			body.Message = err.Error()
		}

		if status >= http.StatusInternalServerError {
			logger.Error("Request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			body.Message = http.StatusText(status)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Warn("Writing error response failed", zap.Error(writeErr))
		}
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusRequestEntityTooLarge:
		return "request_too_large"
	default:
		if status >= http.StatusInternalServerError {
			return "internal"
		}
		return "error"
	}
}
