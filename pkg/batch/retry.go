package batch

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Retry defaults for the single mutating call per item.
const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 500 * time.Millisecond
)

// RetryPolicy controls how the mutating remote call is retried. Every
// failure is retried up to the limit; no retryable/non-retryable
// classification happens at this layer.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// DefaultRetryPolicy returns the standard policy: 3 retries with
// exponential backoff starting at 500ms.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: DefaultMaxRetries, BaseDelay: DefaultBaseDelay}
}

func (p RetryPolicy) newBackoff() backoff.BackOff {
	// BackOff implementations are stateful; always return a fresh instance.
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.BaseDelay
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0
	return backoff.WithMaxRetries(bo, uint64(p.MaxRetries))
}

// withRetry runs op, retrying on any error per the policy. After
// MaxRetries+1 total attempts the final error is returned.
func withRetry(p RetryPolicy, op func() error) error {
	return backoff.Retry(op, p.newBackoff())
}
