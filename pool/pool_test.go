package pool_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/utkarsh5026/bearpool/pool"
)

func TestSubmitAndGet(t *testing.T) {
	p := pool.New[int](pool.WithWorkers(2))
	defer p.Release()

	h, err := p.Submit(context.Background(), func(ctx context.Context) (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("failed to submit task: %v", err)
	}

	v, err := h.Get()
	if err != nil {
		t.Fatalf("unexpected task error: %v", err)
	}
	if v != 42 {
		t.Errorf("expected 42, got %d", v)
	}
}

func TestSubmitErrorOutcome(t *testing.T) {
	p := pool.New[string](pool.WithWorkers(1))
	defer p.Release()

	wantErr := errors.New("task exploded")
	h, err := p.Submit(context.Background(), func(ctx context.Context) (string, error) {
		return "", wantErr
	})
	if err != nil {
		t.Fatalf("failed to submit task: %v", err)
	}

	if _, err := h.Get(); !errors.Is(err, wantErr) {
		t.Errorf("expected task error %v, got %v", wantErr, err)
	}
}

func TestPanicBecomesError(t *testing.T) {
	p := pool.New[int](pool.WithWorkers(1))
	defer p.Release()

	h, err := p.Submit(context.Background(), func(ctx context.Context) (int, error) {
		panic("boom")
	})
	if err != nil {
		t.Fatalf("failed to submit task: %v", err)
	}

	_, err = h.Get()
	if err == nil {
		t.Fatal("expected an error from a panicking task")
	}
	if !strings.Contains(err.Error(), "task panic") || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected panic details in error, got: %v", err)
	}

	// the worker must survive the panic and keep processing
	h2, err := p.Submit(context.Background(), func(ctx context.Context) (int, error) {
		return 7, nil
	})
	if err != nil {
		t.Fatalf("failed to submit follow-up task: %v", err)
	}
	if v, err := h2.Get(); err != nil || v != 7 {
		t.Errorf("expected follow-up task to succeed with 7, got %d, %v", v, err)
	}
}

func TestCompletionsDeliversEveryHandleOnce(t *testing.T) {
	const n = 50
	p := pool.New[int](pool.WithWorkers(4))
	defer p.Release()

	submitted := make(map[*pool.Handle[int]]bool, n)
	for i := range n {
		h, err := p.Submit(context.Background(), func(ctx context.Context) (int, error) {
			return i, nil
		})
		if err != nil {
			t.Fatalf("failed to submit task %d: %v", i, err)
		}
		submitted[h] = false
	}

	for range n {
		select {
		case h := <-p.Completions():
			if !h.IsDone() {
				t.Error("handle arrived on completions before completing")
			}
			seen, known := submitted[h]
			if !known {
				t.Fatal("received a handle that was never submitted")
			}
			if seen {
				t.Fatal("received the same handle twice")
			}
			submitted[h] = true
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for completions")
		}
	}
}

func TestSubmitAfterReleaseFails(t *testing.T) {
	p := pool.New[int](pool.WithWorkers(1))
	p.Release()

	if _, err := p.Submit(context.Background(), func(ctx context.Context) (int, error) {
		return 0, nil
	}); !errors.Is(err, pool.ErrReleased) {
		t.Errorf("expected ErrReleased, got %v", err)
	}
}

func TestReleaseIdempotent(t *testing.T) {
	p := pool.New[int](pool.WithWorkers(2))

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Release()
		}()
	}
	wg.Wait()
	p.Release()
}

func TestReleaseDrainsQueuedTasks(t *testing.T) {
	p := pool.New[int](pool.WithWorkers(1))

	var executed atomic.Int32
	for i := range 5 {
		if _, err := p.Submit(context.Background(), func(ctx context.Context) (int, error) {
			executed.Add(1)
			time.Sleep(10 * time.Millisecond)
			return i, nil
		}); err != nil {
			t.Fatalf("failed to submit task %d: %v", i, err)
		}
	}

	p.Release()

	if got := executed.Load(); got != 5 {
		t.Errorf("expected all 5 queued tasks to execute across release, got %d", got)
	}
	if left := p.Pending(); left != 0 {
		t.Errorf("expected an empty queue after release, got %d pending", left)
	}
}

func TestDefaultWorkerCountAtLeastOne(t *testing.T) {
	if n := pool.DefaultWorkerCount(); n < 1 {
		t.Fatalf("expected at least one worker by default, got %d", n)
	}
}

func TestWorkersReflectsOption(t *testing.T) {
	t.Run("explicit count", func(t *testing.T) {
		p := pool.New[int](pool.WithWorkers(3))
		defer p.Release()
		if p.Workers() != 3 {
			t.Errorf("expected 3 workers, got %d", p.Workers())
		}
	})

	t.Run("invalid count falls back to default", func(t *testing.T) {
		p := pool.New[int](pool.WithWorkers(-1))
		defer p.Release()
		if p.Workers() != pool.DefaultWorkerCount() {
			t.Errorf("expected default worker count %d, got %d", pool.DefaultWorkerCount(), p.Workers())
		}
	})
}

func TestConcurrencyBoundedByWorkers(t *testing.T) {
	const workers = 3
	p := pool.New[int](pool.WithWorkers(workers))
	defer p.Release()

	var current, peak atomic.Int32
	for i := range 20 {
		if _, err := p.Submit(context.Background(), func(ctx context.Context) (int, error) {
			n := current.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			current.Add(-1)
			return 0, nil
		}); err != nil {
			t.Fatalf("failed to submit task %d: %v", i, err)
		}
	}

	for range 20 {
		select {
		case <-p.Completions():
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for completions")
		}
	}

	if got := peak.Load(); got > workers {
		t.Errorf("observed %d concurrent tasks with only %d workers", got, workers)
	}
}

func TestRateLimitThrottlesStarts(t *testing.T) {
	p := pool.New[int](pool.WithWorkers(4), pool.WithRateLimit(50, 1))
	defer p.Release()

	start := time.Now()
	for i := range 3 {
		if _, err := p.Submit(context.Background(), func(ctx context.Context) (int, error) {
			return 0, nil
		}); err != nil {
			t.Fatalf("failed to submit task %d: %v", i, err)
		}
	}
	for range 3 {
		select {
		case <-p.Completions():
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for completions")
		}
	}

	// 50/s with burst 1 means the 3rd start waits at least ~40ms
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("expected rate limiting to slow task starts, finished in %v", elapsed)
	}
}

func TestRateLimitInvalidParametersRunUnthrottled(t *testing.T) {
	cases := []struct {
		name      string
		perSecond float64
		burst     int
	}{
		{"zero burst", 100, 0},
		{"negative burst", 100, -5},
		{"zero rate", 0, 10},
		{"negative rate", -5, 10},
		{"both zero", 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := pool.New[bool](pool.WithWorkers(1), pool.WithRateLimit(tc.perSecond, tc.burst))
			defer p.Release()

			h, err := p.Submit(context.Background(), func(ctx context.Context) (bool, error) {
				return true, nil
			})
			if err != nil {
				t.Fatalf("failed to submit task: %v", err)
			}

			ran, err := h.Get()
			if err != nil {
				t.Fatalf("expected the task to run without limiting, got error: %v", err)
			}
			if !ran {
				t.Error("task function never executed")
			}
		})
	}
}

func TestSubmitContextReachesTask(t *testing.T) {
	type ctxKey struct{}
	p := pool.New[string](pool.WithWorkers(1))
	defer p.Release()

	ctx := context.WithValue(context.Background(), ctxKey{}, "marker")
	h, err := p.Submit(ctx, func(ctx context.Context) (string, error) {
		v, _ := ctx.Value(ctxKey{}).(string)
		return v, nil
	})
	if err != nil {
		t.Fatalf("failed to submit task: %v", err)
	}

	if v, err := h.Get(); err != nil || v != "marker" {
		t.Errorf("expected the submitted context inside the task, got %q, %v", v, err)
	}
}

func TestManySubmittersConcurrently(t *testing.T) {
	p := pool.New[int](pool.WithWorkers(4))
	defer p.Release()

	const producers = 8
	const perProducer = 25

	var wg sync.WaitGroup
	for i := range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range perProducer {
				if _, err := p.Submit(context.Background(), func(ctx context.Context) (int, error) {
					return i*perProducer + j, nil
				}); err != nil {
					t.Errorf("producer %d failed to submit: %v", i, err)
					return
				}
			}
		}()
	}
	wg.Wait()

	for range producers * perProducer {
		select {
		case <-p.Completions():
		case <-time.After(10 * time.Second):
			t.Fatal("timed out waiting for completions")
		}
	}
}

func ExamplePool() {
	p := pool.New[int](pool.WithWorkers(2))
	defer p.Release()

	h, err := p.Submit(context.Background(), func(ctx context.Context) (int, error) {
		return 21 * 2, nil
	})
	if err != nil {
		fmt.Println("submit failed:", err)
		return
	}

	v, err := h.Get()
	fmt.Println(v, err)
	// Output: 42 <nil>
}
