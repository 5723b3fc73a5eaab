// Package parallel provides a generic ordered worker pool.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"time"
)

// PoolConfig configures the worker pool behavior.
type PoolConfig struct {
	// MaxWorkers is the maximum number of concurrent workers.
	// Default: runtime.NumCPU() clamped to [2, 8]
	MaxWorkers int

	// Timeout bounds the whole Execute call. Zero means no timeout.
	Timeout time.Duration
}

// DefaultPoolConfig returns a default pool configuration.
func DefaultPoolConfig() PoolConfig {
	workers := min(max(runtime.NumCPU(), 2), 8)
	return PoolConfig{MaxWorkers: workers}
}

// WithWorkers returns a new config with the specified number of workers.
func (c PoolConfig) WithWorkers(n int) PoolConfig {
	c.MaxWorkers = n
	return c
}

// WithTimeout returns a new config with the specified timeout.
func (c PoolConfig) WithTimeout(d time.Duration) PoolConfig {
	c.Timeout = d
	return c
}

// TaskResult holds the outcome of one input.
type TaskResult[T any, R any] struct {
	Input    T
	Result   R
	Error    error
	Duration time.Duration
}

// WorkerPool runs a function over a slice of inputs on a bounded number of
// goroutines.
type WorkerPool[T any, R any] struct {
	config PoolConfig
}

// NewWorkerPool creates a new worker pool with the given configuration.
func NewWorkerPool[T any, R any](config PoolConfig) *WorkerPool[T, R] {
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = DefaultPoolConfig().MaxWorkers
	}
	return &WorkerPool[T, R]{config: config}
}

// ExecuteFunc applies fn to every input and returns the results in input
// order. Inputs not started before the context ends carry the context error.
func (p *WorkerPool[T, R]) ExecuteFunc(ctx context.Context, inputs []T, fn func(ctx context.Context, input T) (R, error)) []TaskResult[T, R] {
	if len(inputs) == 0 {
		return nil
	}

	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	results := make([]TaskResult[T, R], len(inputs))
	for i, in := range inputs {
		results[i].Input = in
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(p.config.MaxWorkers, len(inputs)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				start := time.Now()
				res, err := fn(ctx, inputs[idx])
				results[idx].Result = res
				results[idx].Error = err
				results[idx].Duration = time.Since(start)
			}
		}()
	}

	next := 0
feed:
	for ; next < len(inputs); next++ {
		select {
		case <-ctx.Done():
			break feed
		case indexes <- next:
		}
	}
	close(indexes)
	wg.Wait()

	for i := next; i < len(inputs); i++ {
		results[i].Error = ctx.Err()
	}
	return results
}
