package dispatch

import "context"

// Deferred carries the single notification of a deferred-shape invocation:
// exactly one value, completion signal, or error. There is no progress
// stream and no second notification.
type Deferred struct {
	done  chan struct{}
	value any
	err   error
}

func newDeferred() *Deferred {
	return &Deferred{done: make(chan struct{})}
}

// complete publishes the outcome. Called exactly once.
func (d *Deferred) complete(v any, err error) {
	d.value = v
	d.err = err
	close(d.done)
}

// Await blocks until the notification arrives or ctx ends. Calling it again
// after delivery returns the same outcome.
func (d *Deferred) Await(ctx context.Context) (any, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-d.done:
		return d.value, d.err
	}
}

// Done exposes the delivery signal for select-based callers.
func (d *Deferred) Done() <-chan struct{} { return d.done }
