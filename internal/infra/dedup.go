// Package infra provides shared infrastructure for the identifier server:
// a result cache, coalescing of identical in-flight work, and a limiter
// for memory-heavy enumerations.
package infra

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// RequestDeduplicator coalesces identical in-flight computations. While one
// caller computes the value for a key, later callers with the same key wait
// for and share its result instead of walking the same domain again.
type RequestDeduplicator[V any] struct {
	group    singleflight.Group
	inflight atomic.Int64
}

// NewRequestDeduplicator creates a new request deduplicator
func NewRequestDeduplicator[V any]() *RequestDeduplicator[V] {
	return &RequestDeduplicator[V]{}
}

// Do executes fn unless a computation for key is already running, in which
// case it waits for that one. shared reports whether the result was handed
// to more than one caller. A canceled ctx stops the wait but not fn.
func (d *RequestDeduplicator[V]) Do(ctx context.Context, key string, fn func() (V, error)) (value V, shared bool, err error) {
	if err := ctx.Err(); err != nil {
		return value, false, err
	}

	ch := d.group.DoChan(key, func() (any, error) {
		d.inflight.Add(1)
		defer d.inflight.Add(-1)
		return fn()
	})

	select {
	case res := <-ch:
		if v, ok := res.Val.(V); ok {
			value = v
		}
		return value, res.Shared, res.Err
	case <-ctx.Done():
		return value, false, ctx.Err()
	}
}

// Stats returns the number of keys currently being computed
func (d *RequestDeduplicator[V]) Stats() int {
	return int(d.inflight.Load())
}
