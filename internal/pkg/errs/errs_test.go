package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputErrors_Classification(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		sentinel   error
		validation bool
		message    string
	}{
		{
			name:     "unknown order",
			err:      errs.NewObjectNotFoundError("order", kernel.ID(42)),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: 42",
		},
		{
			name:     "unknown order with driver cause",
			err:      errs.NewObjectNotFoundErrorWithCause("order", kernel.ID(42), errors.New("connection reset")),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: param is: order, ID is: 42 (cause: connection reset)",
		},
		{
			name:       "unsupported payment mode",
			err:        errs.NewValueIsInvalidError("payment_mode"),
			sentinel:   errs.ErrValueIsInvalid,
			validation: true,
			message:    "value is invalid: payment_mode",
		},
		{
			name:       "non positive quantity",
			err:        errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", 0)),
			sentinel:   errs.ErrValueIsInvalid,
			validation: true,
			message:    "value is invalid: quantity (cause: 0 is not greater than 0)",
		},
		{
			name:       "total above the storable amount",
			err:        errs.NewValueIsOutOfRangeError("total_amount", "100000000.00", "0.00", "99999999.99"),
			sentinel:   errs.ErrValueIsOutOfRange,
			validation: true,
			message:    "value is invalid: 100000000.00 is total_amount, min value is 0.00, max value is 99999999.99",
		},
		{
			name:       "page size with cause",
			err:        errs.NewValueIsOutOfRangeErrorWithCause("limit", 500, 1, 100, errors.New("page too large")),
			sentinel:   errs.ErrValueIsOutOfRange,
			validation: true,
			message:    "value is invalid: 500 is limit, min value is 1, max value is 100 (cause: page too large)",
		},
		{
			name:       "no lines",
			err:        errs.NewValueIsRequiredError("lines"),
			sentinel:   errs.ErrValueIsRequired,
			validation: true,
			message:    "value is required: lines",
		},
		{
			name:       "empty delivery code",
			err:        errs.NewValueIsRequiredErrorWithCause("otp", errors.New("code is blank")),
			sentinel:   errs.ErrValueIsRequired,
			validation: true,
			message:    "value is required: otp (cause: code is blank)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.message, tc.err.Error())
			require.ErrorIs(t, tc.err, tc.sentinel)
			assert.Equal(t, tc.validation, errors.Is(tc.err, errs.ErrValidation))

			wrapped := fmt.Errorf("create order: %w", tc.err)
			assert.ErrorIs(t, wrapped, tc.sentinel)
			assert.Equal(t, tc.validation, errors.Is(wrapped, errs.ErrValidation))
		})
	}
}

func TestInputErrors_Fields(t *testing.T) {
	err := fmt.Errorf("update order: %w",
		errs.NewValueIsOutOfRangeError("total_amount", "100000000.00", "0.00", "99999999.99"))

	var rangeErr *errs.ValueIsOutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "total_amount", rangeErr.ParamName)
	assert.Equal(t, "100000000.00", rangeErr.Value)
	assert.Equal(t, "0.00", rangeErr.Min)
	assert.Equal(t, "99999999.99", rangeErr.Max)
	assert.NoError(t, rangeErr.Cause)

	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, errs.NewObjectNotFoundError("product", kernel.ID(7)), &notFound)
	assert.Equal(t, "product", notFound.ParamName)
	assert.Equal(t, kernel.ID(7), notFound.ID)
}

func TestInputErrors_CauseStaysOutOfTheChain(t *testing.T) {
	missing := errs.NewObjectNotFoundError("product", kernel.ID(7))
	err := errs.NewValueIsInvalidErrorWithCause("lines[0].product_id", missing)

	require.ErrorIs(t, err, errs.ErrValidation)
	assert.NotErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Same(t, missing, err.Cause)
	assert.Equal(t, "value is invalid: lines[0].product_id (cause: object not found: 7)", err.Error())
}

func TestInputErrors_MessagesStayOnOneLine(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("cancel_reason", "out of\nstock\t today", 1, 100)

	assert.Equal(t, "value is invalid: out of stock today is cancel_reason, min value is 1, max value is 100", err.Error())
	assert.NotContains(t, errs.NewValueIsRequiredError("lines\n").Error(), "\n")
}

func TestSentinelMessages(t *testing.T) {
	for sentinel, message := range map[error]string{
		errs.ErrObjectNotFound:    "object not found",
		errs.ErrValueIsInvalid:    "value is invalid",
		errs.ErrValueIsOutOfRange: "value is out of range",
		errs.ErrValueIsRequired:   "value is required",
		errs.ErrValidation:        "validation failed",
	} {
		assert.Equal(t, message, sentinel.Error())
	}
}
