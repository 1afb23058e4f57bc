package pool

import "sync"

// taskQueue is the unbounded FIFO of pending handles. Submissions must
// never block the caller, so the queue grows as needed; capacity is only a
// starting hint. Pop compacts the backing slice once the consumed prefix
// outgrows the live tail, keeping amortized cost O(1) per operation.
type taskQueue[V any] struct {
	mu     sync.Mutex
	buf    []*Handle[V]
	head   int
	closed bool
}

func newTaskQueue[V any](capacity int) *taskQueue[V] {
	return &taskQueue[V]{
		buf: make([]*Handle[V], 0, capacity),
	}
}

// Push appends a handle. It reports false once the queue is closed, in
// which case the handle was not accepted.
func (q *taskQueue[V]) Push(h *Handle[V]) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.buf = append(q.buf, h)
	return true
}

// Pop removes the oldest pending handle. The second return is the number
// of handles still queued, so the caller can wake another worker when work
// remains.
func (q *taskQueue[V]) Pop() (h *Handle[V], left int, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.head == len(q.buf) {
		return nil, 0, false
	}
	h = q.buf[q.head]
	q.buf[q.head] = nil
	q.head++
	if q.head > 64 && q.head*2 >= len(q.buf) {
		n := copy(q.buf, q.buf[q.head:])
		q.buf = q.buf[:n]
		q.head = 0
	}
	return h, len(q.buf) - q.head, true
}

// Close stops the queue from accepting further handles. Already queued
// handles remain poppable.
func (q *taskQueue[V]) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
}

// Len returns the number of handles currently queued.
func (q *taskQueue[V]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf) - q.head
}

// wake is a one-slot wakeup latch for parked workers. Signal never blocks;
// a signal raised while one is already pending is dropped, which is safe
// because workers always re-check the queue after waking and re-signal
// when they leave work behind.
type wake struct {
	ch chan struct{}
}

func newWake() *wake {
	return &wake{ch: make(chan struct{}, 1)}
}

// Signal wakes one parked worker, if any. Non-blocking.
func (w *wake) Signal() {
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

// Wait returns the channel a parking worker selects on.
func (w *wake) Wait() <-chan struct{} {
	return w.ch
}
