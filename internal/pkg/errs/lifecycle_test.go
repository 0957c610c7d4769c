package errs_test

import (
	"fmt"
	"testing"
	"time"

	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycleErrors_Classification(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "forbidden",
			err:      errs.NewForbiddenError("cancel order", "caller does not own the order"),
			sentinel: errs.ErrForbidden,
			message:  "operation is forbidden: cancel order (caller does not own the order)",
		},
		{
			name:     "state",
			err:      errs.NewStateError("cancel order", "delivered"),
			sentinel: errs.ErrInvalidState,
			message:  "state is invalid: cannot cancel order in status delivered",
		},
		{
			name:     "window expired",
			err:      errs.NewWindowExpiredError("cancel order", 30*time.Minute, 31*time.Minute+500*time.Millisecond),
			sentinel: errs.ErrWindowExpired,
			message:  "window has expired: cancel order is only allowed within 30m0s, 31m0s elapsed",
		},
		{
			name:     "conflict",
			err:      errs.NewConflictError("order", int64(4), "already has an agent"),
			sentinel: errs.ErrConflict,
			message:  "conflict: order 4 already has an agent",
		},
		{
			name:     "precondition",
			err:      errs.NewPreconditionError("agent", int64(9), "is not active"),
			sentinel: errs.ErrPreconditionFailed,
			message:  "precondition failed: agent 9 is not active",
		},
		{
			name:     "invalid otp",
			err:      errs.NewInvalidOTPError(int64(12)),
			sentinel: errs.ErrInvalidOTP,
			message:  "invalid otp: order 12",
		},
		{
			name:     "rate limited",
			err:      errs.NewRateLimitedError("verify delivery", 5),
			sentinel: errs.ErrRateLimited,
			message:  "rate limit exceeded: verify delivery allows 5 attempts",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.err, tc.sentinel)
			require.ErrorIs(t, fmt.Errorf("wrapped: %w", tc.err), tc.sentinel)
			require.NotErrorIs(t, tc.err, errs.ErrValidation)
			assert.Equal(t, tc.message, tc.err.Error())
		})
	}
}
