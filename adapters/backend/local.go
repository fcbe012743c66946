// Package backend provides chunk evaluation backends for the statistics
// engine. The engine builds a plan of chunk tasks without running them; a
// backend decides how that plan is materialized.
package backend

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"climstat/ports"
)

// Local evaluates chunk tasks on the local process using a bounded worker
// pool. Per-pixel results are independent, so tasks may complete in any
// order; output placement is fixed by the plan, not by completion order.
type Local struct {
	workers int
}

// NewLocal creates a local backend running at most workers tasks at once.
// workers <= 0 selects GOMAXPROCS.
func NewLocal(workers int) *Local {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Local{workers: workers}
}

// Run executes all tasks, stopping on the first error.
func (l *Local) Run(ctx context.Context, tasks []ports.Task) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			return task(ctx)
		})
	}
	return g.Wait()
}

// Serial evaluates chunk tasks one at a time in plan order. Useful in tests
// and when reproducing a computation step by step.
type Serial struct{}

// Run executes all tasks sequentially, stopping on the first error.
func (Serial) Run(ctx context.Context, tasks []ports.Task) error {
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := task(ctx); err != nil {
			return err
		}
	}
	return nil
}
