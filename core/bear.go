package core

import (
	"context"
	"fmt"
)

// TaskArgs is the argument tuple of one task: positional arguments plus
// optional keyword arguments. The scheduler never inspects either; they
// travel verbatim from GenerateTasks back into ExecuteTask.
type TaskArgs struct {
	Args   []any
	Kwargs map[string]any
}

// Bear is an independent unit of work: it knows which tasks it needs and
// how to execute one of them. Implementations are supplied entirely by the
// caller; the scheduler never constructs, copies, or destroys a bear.
//
// GenerateTasks is called exactly once per scheduled bear and must return
// a finite, possibly empty, list of argument tuples. ExecuteTask runs one
// of those tasks; tasks of the same bear and of different bears execute
// concurrently, so implementations must be safe for concurrent use.
//
// Bears are tracked by identity, so implement Bear on a pointer type (or
// another comparable type). A bear may implement fmt.Stringer to control
// how it is named in diagnostics; otherwise its dynamic type is used.
type Bear[R any] interface {
	GenerateTasks() []TaskArgs
	ExecuteTask(ctx context.Context, args TaskArgs) ([]R, error)
}

// label names a bear in diagnostics.
func label[R any](b Bear[R]) string {
	if s, ok := any(b).(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", b)
}
