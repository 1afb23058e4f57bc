package pool

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/time/rate"
)

// Func is the unit of work a pool executes: it receives the context the
// task was submitted with and returns a value or an error.
type Func[V any] func(ctx context.Context) (V, error)

// Handle tracks one submitted task from submission to completion. A handle
// completes exactly once, with either a value or an error, and is delivered
// on its pool's Completions channel after completing.
type Handle[V any] struct {
	fn    Func[V]
	ctx   context.Context
	value V
	err   error
	done  chan struct{}
}

func newHandle[V any](ctx context.Context, fn Func[V]) *Handle[V] {
	return &Handle[V]{
		fn:   fn,
		ctx:  ctx,
		done: make(chan struct{}),
	}
}

// Done returns a channel that is closed once the task has completed.
func (h *Handle[V]) Done() <-chan struct{} {
	return h.done
}

// IsDone reports whether the task has completed, without blocking.
func (h *Handle[V]) IsDone() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Get blocks until the task completes, then returns its outcome. Calling
// Get on a handle received from Completions returns immediately.
func (h *Handle[V]) Get() (V, error) {
	<-h.done
	return h.value, h.err
}

// execute runs the task on a worker goroutine and marks the handle done.
// The outcome fields are written before done closes, so any reader past
// Done sees them safely.
func (h *Handle[V]) execute(limiter *rate.Limiter) {
	defer close(h.done)

	if limiter != nil {
		if err := limiter.Wait(h.ctx); err != nil {
			// the limiter's error doesn't wrap context errors, so check
			// the context explicitly
			if ctxErr := h.ctx.Err(); ctxErr != nil {
				h.err = ctxErr
				return
			}
			h.err = err
			return
		}
	}

	h.value, h.err = protect(h.ctx, h.fn)
}

// protect invokes fn, converting a panic into an error so one crashing
// task never takes its worker down with it.
func protect[V any](ctx context.Context, fn Func[V]) (value V, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("task panic: %v\nstack trace:\n%s", r, buf[:n])
		}
	}()
	return fn(ctx)
}
