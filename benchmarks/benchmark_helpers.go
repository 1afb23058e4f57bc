package benchmarks

import (
	"context"
	"fmt"

	"github.com/utkarsh5026/bearpool/core"
)

// benchBear runs a fixed amount of CPU work per task and emits one result
// per task.
type benchBear struct {
	id         int
	taskCount  int
	iterations int
}

func (b *benchBear) String() string { return fmt.Sprintf("benchBear%d", b.id) }

func (b *benchBear) GenerateTasks() []core.TaskArgs {
	tasks := make([]core.TaskArgs, b.taskCount)
	for i := range tasks {
		tasks[i] = core.TaskArgs{Args: []any{i}}
	}
	return tasks
}

func (b *benchBear) ExecuteTask(ctx context.Context, args core.TaskArgs) ([]int, error) {
	n := args.Args[0].(int)
	acc := 0
	for i := range b.iterations {
		acc += i * n
	}
	return []int{acc}, nil
}

// idleBear generates no tasks at all; scheduling it is pure bookkeeping.
type idleBear struct {
	id int
}

func (b *idleBear) String() string { return fmt.Sprintf("idleBear%d", b.id) }

func (b *idleBear) GenerateTasks() []core.TaskArgs { return nil }

func (b *idleBear) ExecuteTask(ctx context.Context, args core.TaskArgs) ([]int, error) {
	return nil, nil
}

func makeBears(bearCount, tasksPer, iterations int) []core.Bear[int] {
	bears := make([]core.Bear[int], 0, bearCount)
	for i := range bearCount {
		bears = append(bears, &benchBear{id: i, taskCount: tasksPer, iterations: iterations})
	}
	return bears
}
