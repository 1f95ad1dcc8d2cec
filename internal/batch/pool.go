// Package batch runs independent jobs concurrently, keeping per-item
// failures out of the way of the items that succeed.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Task is one unit of work with a caller-assigned identifier.
type Task[T any] struct {
	ID    string
	Input T
}

// Failure records one task that did not complete.
type Failure struct {
	ID  string `json:"id"`
	Err error  `json:"error"`
}

// Outcome separates completed results from failures. Results keep the order
// of the submitted tasks.
type Outcome[R any] struct {
	Results  []R       `json:"results"`
	Failures []Failure `json:"failures,omitempty"`
}

// Processor handles one task.
type Processor[T, R any] func(context.Context, Task[T]) (R, error)

// Pool bounds how many tasks run at once and how long each may take.
type Pool struct {
	workers int
	timeout time.Duration
	log     *slog.Logger
}

// Option configures a Pool.
type Option func(*Pool)

// WithWorkers sets the number of concurrent workers.
func WithWorkers(workers int) Option {
	return func(p *Pool) {
		if workers > 0 {
			p.workers = workers
		}
	}
}

// WithTimeout bounds each task's run time.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Pool) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

// WithLogger sets the pool's logger.
func WithLogger(log *slog.Logger) Option {
	return func(p *Pool) { p.log = log }
}

func NewPool(opts ...Option) *Pool {
	p := &Pool{
		workers: 4,
		timeout: 30 * time.Second,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run processes every task, recording failures without stopping the batch.
// Only context cancellation cuts the run short; tasks not started by then
// are reported as failed with the context error.
func Run[T, R any](ctx context.Context, p *Pool, tasks []Task[T], process Processor[T, R]) Outcome[R] {
	if len(tasks) == 0 {
		return Outcome[R]{Results: []R{}}
	}

	p.log.Info("starting batch", "tasks", len(tasks), "workers", p.workers)

	type slot struct {
		result R
		err    error
	}
	slots := make([]slot, len(tasks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	var mu sync.Mutex
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				mu.Lock()
				slots[i].err = err
				mu.Unlock()
				return nil
			}

			taskCtx, cancel := context.WithTimeout(ctx, p.timeout)
			result, err := process(taskCtx, task)
			cancel()

			mu.Lock()
			if err != nil {
				slots[i].err = fmt.Errorf("task %s: %w", task.ID, err)
			} else {
				slots[i].result = result
			}
			mu.Unlock()

			if err != nil {
				p.log.Error("task failed", "id", task.ID, "error", err)
			}
			return nil
		})
	}
	// Workers never return errors; failures live in slots.
	_ = g.Wait()

	var outcome Outcome[R]
	for i, s := range slots {
		if s.err != nil {
			outcome.Failures = append(outcome.Failures, Failure{ID: tasks[i].ID, Err: s.err})
			continue
		}
		outcome.Results = append(outcome.Results, s.result)
	}

	p.log.Info("batch finished", "succeeded", len(outcome.Results), "failed", len(outcome.Failures))
	return outcome
}
