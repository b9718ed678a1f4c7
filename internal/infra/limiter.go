package infra

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// DefaultMaxEnumerations bounds concurrent full-domain walks.
const DefaultMaxEnumerations = 2

// Limiter bounds how many memory-heavy operations run at once. A full
// enumeration holds tens of millions of identifiers, so only a few may be
// materialized concurrently.
type Limiter struct {
	sem      *semaphore.Weighted
	capacity int64
	active   atomic.Int64
}

// NewLimiter creates a limiter admitting n concurrent holders. Non-positive
// n selects DefaultMaxEnumerations.
func NewLimiter(n int) *Limiter {
	if n <= 0 {
		n = DefaultMaxEnumerations
	}
	return &Limiter{
		sem:      semaphore.NewWeighted(int64(n)),
		capacity: int64(n),
	}
}

// Acquire blocks until a slot is available or ctx is canceled
func (l *Limiter) Acquire(ctx context.Context) error {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("context canceled while waiting for enumeration slot: %w", err)
	}
	l.active.Add(1)
	return nil
}

// TryAcquire takes a slot without blocking and reports whether it succeeded.
func (l *Limiter) TryAcquire() bool {
	if !l.sem.TryAcquire(1) {
		return false
	}
	l.active.Add(1)
	return true
}

// Release returns a slot taken by Acquire or TryAcquire.
func (l *Limiter) Release() {
	l.active.Add(-1)
	l.sem.Release(1)
}

// Active returns the number of slots currently held.
func (l *Limiter) Active() int64 {
	return l.active.Load()
}

// Capacity returns the maximum number of concurrent holders.
func (l *Limiter) Capacity() int64 {
	return l.capacity
}
