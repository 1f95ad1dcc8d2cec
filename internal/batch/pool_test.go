package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunProcessesAllTasks(t *testing.T) {
	pool := NewPool(WithWorkers(3))

	tasks := make([]Task[int], 10)
	for i := range tasks {
		tasks[i] = Task[int]{ID: fmt.Sprintf("task-%d", i), Input: i}
	}

	outcome := Run(context.Background(), pool, tasks, func(_ context.Context, task Task[int]) (int, error) {
		return task.Input * 2, nil
	})

	if len(outcome.Failures) != 0 {
		t.Fatalf("failures = %v", outcome.Failures)
	}
	if len(outcome.Results) != 10 {
		t.Fatalf("results = %d, want 10", len(outcome.Results))
	}
	// Results keep task order even with concurrent workers.
	for i, r := range outcome.Results {
		if r != i*2 {
			t.Errorf("result[%d] = %d, want %d", i, r, i*2)
		}
	}
}

func TestRunRecordsFailuresAndContinues(t *testing.T) {
	pool := NewPool(WithWorkers(2))
	boom := errors.New("boom")

	tasks := []Task[string]{
		{ID: "a", Input: "ok"},
		{ID: "b", Input: "fail"},
		{ID: "c", Input: "ok"},
	}

	outcome := Run(context.Background(), pool, tasks, func(_ context.Context, task Task[string]) (string, error) {
		if task.Input == "fail" {
			return "", boom
		}
		return strings.ToUpper(task.Input), nil
	})

	if len(outcome.Results) != 2 {
		t.Errorf("results = %d, want 2", len(outcome.Results))
	}
	if len(outcome.Failures) != 1 {
		t.Fatalf("failures = %d, want 1", len(outcome.Failures))
	}
	if outcome.Failures[0].ID != "b" {
		t.Errorf("failure id = %q, want b", outcome.Failures[0].ID)
	}
	if !errors.Is(outcome.Failures[0].Err, boom) {
		t.Errorf("failure err = %v", outcome.Failures[0].Err)
	}
}

func TestRunRespectsWorkerLimit(t *testing.T) {
	pool := NewPool(WithWorkers(2))

	var running, peak atomic.Int32
	tasks := make([]Task[int], 8)
	for i := range tasks {
		tasks[i] = Task[int]{ID: fmt.Sprintf("task-%d", i), Input: i}
	}

	Run(context.Background(), pool, tasks, func(_ context.Context, task Task[int]) (int, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		running.Add(-1)
		return task.Input, nil
	})

	if peak.Load() > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", peak.Load())
	}
}

func TestRunEmptyTasks(t *testing.T) {
	pool := NewPool()

	outcome := Run(context.Background(), pool, nil, func(_ context.Context, task Task[int]) (int, error) {
		return 0, nil
	})
	if len(outcome.Results) != 0 || len(outcome.Failures) != 0 {
		t.Errorf("outcome = %+v, want empty", outcome)
	}
}

func TestRunCancelledContext(t *testing.T) {
	pool := NewPool(WithWorkers(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tasks := []Task[int]{{ID: "a", Input: 1}, {ID: "b", Input: 2}}
	outcome := Run(ctx, pool, tasks, func(taskCtx context.Context, task Task[int]) (int, error) {
		return task.Input, taskCtx.Err()
	})

	if len(outcome.Failures) != len(tasks) {
		t.Errorf("failures = %d, want %d", len(outcome.Failures), len(tasks))
	}
}
