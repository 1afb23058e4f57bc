// Package core schedules independent units of work ("bears") onto a shared
// worker pool and streams their results to a caller-supplied callback.
//
// A bear describes the tasks it needs via GenerateTasks and executes one
// task per ExecuteTask call. Run fans all tasks of all bears out across a
// fixed-size pool, tracks outstanding work per bear, and ends exactly when
// the last task has completed. Bears with no tasks at all are retired
// immediately so they never hold up termination.
//
// # Running Bears
//
//	bears := []core.Bear[Issue]{
//	    &LongLineBear{Files: files},
//	    &TodoBear{Files: files},
//	}
//	err := core.Run(ctx, bears, func(issue Issue) {
//	    report(issue)
//	})
//
// # Failure Isolation
//
// Failures never cascade. A task that returns an error or panics is logged
// and simply yields no results; sibling tasks, other bears, and the run
// itself continue. A callback that panics on one result is logged and the
// remaining results are still delivered. Run only fails when submitting to
// the pool itself fails, and even then the pool is released cleanly.
//
// # Ordering
//
// All scheduling, completion handling, and callback dispatch happen on the
// goroutine that called Run: completions are processed strictly one at a
// time, and the callback never runs concurrently with itself. Task
// execution is the only parallel part.
//
// # Observability
//
// Runs are silent by default. Inject a zerolog.Logger with WithLogger to
// receive scheduled/finished bears at debug level and task or callback
// failures at error level, each tagged with the bear's name.
package core
