// Package async provides the completion contract every service operation
// returns, with an optional simulated latency in front of the work.
package async

import (
	"context"
	"time"
)

// Future is the eventual result of an operation.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go starts fn after delay on a new goroutine and returns its Future.
// Cancelling ctx before the delay elapses abandons the operation; once fn
// has started it runs to completion.
func Go[T any](ctx context.Context, delay time.Duration, fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				f.err = ctx.Err()
				return
			}
		} else if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.value, f.err = fn()
	}()
	return f
}

// Resolved returns a Future that is already complete.
func Resolved[T any](value T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), value: value, err: err}
	close(f.done)
	return f
}

// Await blocks until the Future completes or ctx is done.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done is closed when the Future completes.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}
