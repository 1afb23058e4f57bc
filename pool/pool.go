package pool

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/utkarsh5026/bearpool/internal/cpu"
)

// ErrReleased is returned by Submit once Release has been called.
var ErrReleased = errors.New("pool already released")

// DefaultWorkerCount returns the number of workers a pool starts with when
// WithWorkers is not given: one per usable CPU, never less than 1. It
// never fails, falling back to 1 when the platform cannot report a count.
func DefaultWorkerCount() int {
	return cpu.Available()
}

// Pool is a fixed-size worker pool with non-blocking submission and a
// completion fan-in channel.
//
// Type parameters:
//   - V: the value type produced by submitted tasks
//
// Workers start when the pool is created and run until Release. Every
// submitted handle is executed exactly once and then delivered exactly once
// on the Completions channel, in completion order.
type Pool[V any] struct {
	conf        *config
	queue       *taskQueue[V]
	wake        *wake
	quit        chan struct{}
	completions chan *Handle[V]
	releaseOnce sync.Once
	workers     errgroup.Group
}

// New creates a pool and starts its workers immediately.
//
// Example:
//
//	p := pool.New[Report](pool.WithWorkers(4))
//	defer p.Release()
func New[V any](opts ...Option) *Pool[V] {
	conf := newConfig(opts...)
	p := &Pool[V]{
		conf:        conf,
		queue:       newTaskQueue[V](conf.queueCap),
		wake:        newWake(),
		quit:        make(chan struct{}),
		completions: make(chan *Handle[V], conf.queueCap),
	}
	for range conf.workers {
		p.workers.Go(p.worker)
	}
	return p
}

// Workers returns the number of worker goroutines the pool runs.
func (p *Pool[V]) Workers() int {
	return p.conf.workers
}

// Pending returns the number of submitted handles no worker has picked up
// yet. It is a point-in-time reading; by the time the caller acts on it,
// workers may already have drained more of the queue.
func (p *Pool[V]) Pending() int {
	return p.queue.Len()
}

// Submit queues fn for execution and returns its handle. Submission never
// blocks: the intake queue grows as needed. The context is handed to fn
// and to the rate limiter, if one is configured; the pool itself never
// cancels queued work. The only failure mode is submitting to a pool that
// has already been released.
func (p *Pool[V]) Submit(ctx context.Context, fn Func[V]) (*Handle[V], error) {
	h := newHandle(ctx, fn)
	if !p.queue.Push(h) {
		return nil, ErrReleased
	}
	p.wake.Signal()
	return h, nil
}

// Completions returns the channel on which every submitted handle is
// delivered exactly once, after it completes. Delivery order is completion
// order, not submission order. Once Release has begun, undeliverable
// completions are dropped; each handle itself still completes and can be
// observed through Done and Get.
func (p *Pool[V]) Completions() <-chan *Handle[V] {
	return p.completions
}

// Release stops the pool: no new submissions are accepted, tasks already
// queued still run to completion, and all workers are stopped and waited
// for. Release is idempotent and safe to call from any goroutine;
// concurrent callers all return only after the workers have exited.
func (p *Pool[V]) Release() {
	p.releaseOnce.Do(func() {
		p.queue.Close()
		close(p.quit)
		_ = p.workers.Wait()
	})
}

// worker runs until the pool quits and the queue has drained.
func (p *Pool[V]) worker() error {
	for {
		h, ok := p.next()
		if !ok {
			return nil
		}
		h.execute(p.conf.limiter)
		p.deliver(h)
	}
}

// next blocks until a pending handle is available or the pool is quitting.
// After quit, remaining queued handles are still handed out so accepted
// work always executes; next reports false only once the queue is empty.
func (p *Pool[V]) next() (*Handle[V], bool) {
	for {
		if h, left, ok := p.queue.Pop(); ok {
			if left > 0 {
				p.wake.Signal()
			}
			return h, true
		}
		select {
		case <-p.wake.Wait():
		case <-p.quit:
			h, _, ok := p.queue.Pop()
			return h, ok
		}
	}
}

// deliver hands a completed handle to the completions channel. Once the
// pool is quitting the receiver may be gone, so the delivery is dropped
// rather than wedging the worker; the handle is already done either way.
func (p *Pool[V]) deliver(h *Handle[V]) {
	select {
	case p.completions <- h:
	case <-p.quit:
	}
}
