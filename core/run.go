package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/utkarsh5026/bearpool/pool"
)

// Run schedules every bear's tasks onto one worker pool and blocks until
// all of them have completed and their results have been dispatched to
// resultCallback. Results are forwarded one at a time on the calling
// goroutine, in the order each task produced them.
//
// Failures stay contained: a task that returns an error or panics is
// logged and contributes no results, and a panicking callback is logged
// per result; neither stops the run. Run returns a non-nil error only
// when submitting a task to the pool fails, which is unrecoverable; the
// pool is released on every return path regardless.
//
// Example:
//
//	var issues []Issue
//	err := core.Run(ctx, bears, func(i Issue) {
//	    issues = append(issues, i)
//	})
func Run[R any](ctx context.Context, bears []Bear[R], resultCallback func(R), opts ...Option) error {
	conf := newConfig(opts...)
	p := pool.New[[]R](conf.poolOptions()...)
	defer p.Release()

	s := &session[R]{
		pool:     p,
		registry: newRegistry[R](),
		callback: resultCallback,
		log:      conf.logger,
	}

	if err := s.scheduleBears(ctx, bears); err != nil {
		return err
	}
	s.loop()
	return nil
}

// session is the state of one run: one pool, one registry, one callback,
// one logger. Nothing is shared between runs, and everything here is
// driven by the single control goroutine inside Run.
type session[R any] struct {
	pool     *pool.Pool[[]R]
	registry *registry[R]
	callback func(R)
	log      zerolog.Logger
}

// scheduleBears asks each bear for its tasks once and submits them all.
// Handles are recorded in the registry before the completion loop starts
// receiving, so a completion can never be observed for an unknown handle.
// A bear that produced no tasks is cleaned up on the spot: it will never
// emit a completion event to trigger cleanup later.
func (s *session[R]) scheduleBears(ctx context.Context, bears []Bear[R]) error {
	for _, b := range bears {
		tasks := b.GenerateTasks()
		handles := make([]*pool.Handle[[]R], 0, len(tasks))
		for _, args := range tasks {
			h, err := s.pool.Submit(ctx, taskFunc(b, args))
			if err != nil {
				return fmt.Errorf("submitting task for %s: %w", label(b), err)
			}
			handles = append(handles, h)
		}
		s.registry.add(b, handles)
		s.log.Debug().Str("bear", label(b)).Int("tasks", len(tasks)).Msg("scheduled bear")

		if len(handles) == 0 {
			s.cleanupBear(b)
		}
	}
	return nil
}

func taskFunc[R any](b Bear[R], args TaskArgs) pool.Func[[]R] {
	return func(ctx context.Context) ([]R, error) {
		return b.ExecuteTask(ctx, args)
	}
}

// loop receives completed handles one at a time and hands each to
// finishTask, until no bear has outstanding work. With an already empty
// registry it never blocks at all.
func (s *session[R]) loop() {
	for !s.registry.empty() {
		s.finishTask(<-s.pool.Completions())
	}
}

// finishTask settles one completed task: record its outcome, shrink the
// registry, then dispatch the task's results. A failed task is logged and
// treated as having produced no results; other tasks and bears are
// unaffected.
func (s *session[R]) finishTask(h *pool.Handle[[]R]) {
	b, ok := s.registry.owner(h)
	if !ok {
		return
	}

	results, err := h.Get()
	if err != nil {
		s.log.Error().Err(err).Str("bear", label(b)).Msg("task execution failed")
		results = nil
	}

	s.registry.remove(b, h)
	s.cleanupBear(b)

	for _, res := range results {
		s.dispatch(b, res)
	}
}

// dispatch forwards one result to the caller's callback. A panicking
// callback is recovered and logged so the remaining results still go out.
func (s *session[R]) dispatch(b Bear[R], res R) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error().Str("bear", label(b)).Interface("panic", rec).Msg("result callback failed")
		}
	}()
	s.callback(res)
}

// cleanupBear retires a bear once its last outstanding handle is gone.
// Registry emptiness is the run's sole termination signal, checked by the
// loop before every receive.
func (s *session[R]) cleanupBear(b Bear[R]) {
	if s.registry.cleanup(b) {
		s.log.Debug().Str("bear", label(b)).Int("remaining", s.registry.pending()).Msg("bear finished")
	}
}
