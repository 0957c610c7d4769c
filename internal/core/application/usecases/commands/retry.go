package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/ports"

	"github.com/cenkalti/backoff/v4"
)

const (
	maxTxAttempts       = 3
	txRetryInitialDelay = 20 * time.Millisecond
	txRetryMaxDelay     = 200 * time.Millisecond
)

// inTransaction runs op, retrying it when the factory classifies the failure as transient.
// Business errors are returned on the first occurrence.
func inTransaction(ctx context.Context, factory UoWFactory, op func() error) error {
	classifier, ok := factory.(ports.TransientErrorClassifier)
	if !ok {
		return op()
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = txRetryInitialDelay
	policy.MaxInterval = txRetryMaxDelay

	return backoff.Retry(func() error {
		err := op()
		if err != nil && !classifier.IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(policy, maxTxAttempts-1), ctx))
}
