// Package pool provides a small, generic, fixed-size worker pool with
// non-blocking submission and a single completion fan-in channel.
//
// The primary type is Pool[V], a set of worker goroutines executing
// submitted functions that produce a value of type V. Submit returns a
// Handle[V] which completes exactly once, with a value or an error;
// completed handles are additionally delivered on the Completions channel
// in completion order, so one consumer can react to finished work from all
// workers without polling individual handles.
//
// # Basic Usage
//
//	p := pool.New[int]()
//	defer p.Release()
//
//	h, err := p.Submit(ctx, func(ctx context.Context) (int, error) {
//	    return compute(ctx)
//	})
//	if err != nil {
//	    return err
//	}
//	v, err := h.Get()
//
// # Completion Fan-In
//
// Instead of waiting on individual handles, receive them as they finish:
//
//	for range submitted {
//	    h := <-p.Completions()
//	    v, err := h.Get() // already completed, returns immediately
//	    // ...
//	}
//
// # Sizing
//
// By default the pool runs one worker per usable CPU, never fewer than one.
// The intake queue is unbounded: Submit never blocks and never rejects work
// for lack of space. The only submission error is ErrReleased, returned
// once the pool has been released.
//
// # Failure Isolation
//
// A task that panics does not take its worker down: the panic is recovered
// and surfaces as the handle's error, annotated with a stack trace. Tasks
// only ever fail individually.
//
// # Release
//
// Release stops intake, lets workers finish everything already queued, then
// stops the workers and waits for them. It is idempotent and safe from any
// goroutine. Completions that cannot be delivered once release has begun
// are dropped; every handle still completes and stays observable through
// Done and Get.
//
// # Configuration Options
//
//   - WithWorkers(n): number of worker goroutines (default: usable CPUs)
//   - WithQueueCapacity(n): sizing hint for the intake queue and completion buffer
//   - WithRateLimit(perSecond, burst): throttle task starts
package pool
