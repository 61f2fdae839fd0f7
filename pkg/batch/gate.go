// Package batch executes multi-item create/update requests against the
// tracker: validation, reference resolution, gated remote calls with
// retry, and index-ordered result aggregation.
package batch

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// DefaultConcurrency bounds simultaneous in-flight remote calls.
const DefaultConcurrency = 5

// Gate limits the number of concurrently outstanding remote calls.
// Waiters are served in FIFO order.
type Gate struct {
	sem *semaphore.Weighted
}

// NewGate builds a gate admitting at most limit concurrent tasks.
// A limit below 1 falls back to DefaultConcurrency.
func NewGate(limit int) *Gate {
	if limit < 1 {
		limit = DefaultConcurrency
	}
	return &Gate{sem: semaphore.NewWeighted(int64(limit))}
}

// Do runs fn once a permit is available, releasing the permit when fn
// returns. Blocks until admitted or ctx is cancelled.
func (g *Gate) Do(ctx context.Context, fn func() error) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer g.sem.Release(1)
	return fn()
}
