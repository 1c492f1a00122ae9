package store

import "context"

// Future is the pending result of one store operation.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any](wait func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		f.val, f.err = wait()
		close(f.done)
	}()
	return f
}

// Done is closed once the operation has resolved.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the operation resolves or ctx ends. Giving up on the
// wait does not cancel the operation itself.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
