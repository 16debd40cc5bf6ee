package cryptoengine

import (
	"context"
	"sync"
)

// Future is a single-assignment, multi-waiter result slot (spec §4.5, §9
// "Design Notes": a future that resolves once when the corresponding batch
// drains). Grounded on the channel-of-one idiom the teacher uses for
// request/response correlation in the now-removed node/p2p_runtime.go.
type Future[T any] struct {
	done   chan struct{}
	once   sync.Once
	result T
	err    error
}

// NewFuture creates an unresolved Future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolve sets the future's result, or is a no-op if already resolved
// (spec §4.5 "resolves exactly once").
func (f *Future[T]) Resolve(result T, err error) {
	f.once.Do(func() {
		f.result = result
		f.err = err
		close(f.done)
	})
}

// Wait blocks until the future resolves or ctx is cancelled.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero T
		return zero, wrapErr(KindCancellation, "future wait", ctx.Err())
	}
}

// Done reports whether the future has resolved, without blocking.
func (f *Future[T]) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
