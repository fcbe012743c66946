package ports

import "context"

// Task is one unit of chunk-level work inside a computation plan.
type Task func(ctx context.Context) error

// Backend evaluates the chunk tasks of a lazily built computation plan. The
// engine only declares work; scheduling, parallelism and materialization
// strategy belong to the backend implementation.
type Backend interface {
	Run(ctx context.Context, tasks []Task) error
}
