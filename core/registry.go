package core

import "github.com/utkarsh5026/bearpool/pool"

// registry tracks the outstanding task handles of every scheduled bear,
// together with the reverse handle-to-bear binding the completion path
// dispatches on. It belongs to a single run and is only ever touched from
// that run's control goroutine, so it needs no locking.
//
// A bear stays a key while it has outstanding handles, or transiently
// between losing its last handle and cleanup. The run is over exactly when
// the registry is empty.
type registry[R any] struct {
	tasks  map[Bear[R]]map[*pool.Handle[[]R]]struct{}
	owners map[*pool.Handle[[]R]]Bear[R]
}

func newRegistry[R any]() *registry[R] {
	return &registry[R]{
		tasks:  make(map[Bear[R]]map[*pool.Handle[[]R]]struct{}),
		owners: make(map[*pool.Handle[[]R]]Bear[R]),
	}
}

// add records a bear's handles. Listing the same bear instance again merges
// into one entry holding the union of its handles.
func (r *registry[R]) add(b Bear[R], handles []*pool.Handle[[]R]) {
	set, ok := r.tasks[b]
	if !ok {
		set = make(map[*pool.Handle[[]R]]struct{}, len(handles))
		r.tasks[b] = set
	}
	for _, h := range handles {
		set[h] = struct{}{}
		r.owners[h] = b
	}
}

// owner returns the bear a handle was submitted for.
func (r *registry[R]) owner(h *pool.Handle[[]R]) (Bear[R], bool) {
	b, ok := r.owners[h]
	return b, ok
}

// remove drops one completed handle from its bear's entry.
func (r *registry[R]) remove(b Bear[R], h *pool.Handle[[]R]) {
	if set, ok := r.tasks[b]; ok {
		delete(set, h)
	}
	delete(r.owners, h)
}

// cleanup retires the bear's entry once it has no outstanding handles
// left; with handles still pending it does nothing. Reports whether the
// entry was removed.
func (r *registry[R]) cleanup(b Bear[R]) bool {
	set, ok := r.tasks[b]
	if !ok || len(set) > 0 {
		return false
	}
	delete(r.tasks, b)
	return true
}

// empty reports whether no bear has outstanding work. Emptiness is the
// run's sole termination condition.
func (r *registry[R]) empty() bool {
	return len(r.tasks) == 0
}

// pending returns how many bears are still tracked.
func (r *registry[R]) pending() int {
	return len(r.tasks)
}
