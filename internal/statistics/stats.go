// Package statistics computes descriptive statistics over resolved series.
package statistics

import (
	"context"

	"github.com/montanaflynn/stats"

	"github.com/mat-analysis/pkg/model"
	"github.com/mat-analysis/pkg/parallel"
)

// Compute returns min, max, mean, population standard deviation and count
// over the full series. The second result is false for a nil or empty
// series.
func Compute(series model.Series) (model.Stats, bool) {
	if len(series) == 0 {
		return model.Stats{}, false
	}
	data := stats.Float64Data(series)

	minV, err := stats.Min(data)
	if err != nil {
		return model.Stats{}, false
	}
	maxV, err := stats.Max(data)
	if err != nil {
		return model.Stats{}, false
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return model.Stats{}, false
	}
	std, err := stats.StandardDeviationPopulation(data)
	if err != nil {
		return model.Stats{}, false
	}

	return model.Stats{
		Min:   minV,
		Max:   maxV,
		Mean:  mean,
		Std:   std,
		Count: len(series),
	}, true
}

// Source supplies series by name.
type Source interface {
	Lookup(name string) (model.Series, bool)
}

// SummaryCalculator computes statistics for many variables at once.
type SummaryCalculator struct {
	pool parallel.PoolConfig
}

// SummaryOption configures the SummaryCalculator.
type SummaryOption func(*SummaryCalculator)

// WithWorkers sets the number of concurrent workers.
func WithWorkers(n int) SummaryOption {
	return func(c *SummaryCalculator) {
		if n > 0 {
			c.pool = c.pool.WithWorkers(n)
		}
	}
}

// NewSummaryCalculator creates a new SummaryCalculator.
func NewSummaryCalculator(opts ...SummaryOption) *SummaryCalculator {
	c := &SummaryCalculator{pool: parallel.DefaultPoolConfig()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate returns one entry per name, in request order. Names the source
// cannot supply, or that map to an empty series, are marked unavailable.
func (c *SummaryCalculator) Calculate(ctx context.Context, src Source, names []string) []model.VariableStats {
	out := make([]model.VariableStats, len(names))
	if len(names) == 0 {
		return out
	}

	pool := parallel.NewWorkerPool[string, model.VariableStats](c.pool)
	results := pool.ExecuteFunc(ctx, names, func(_ context.Context, name string) (model.VariableStats, error) {
		entry := model.VariableStats{Name: name}
		if src == nil {
			return entry, nil
		}
		series, ok := src.Lookup(name)
		if !ok {
			return entry, nil
		}
		entry.Stats, entry.Available = Compute(series)
		return entry, nil
	})

	for i, r := range results {
		out[i] = r.Result
		// Tasks skipped by cancellation carry a zero result.
		out[i].Name = names[i]
	}
	return out
}

// Summarize is a shorthand for NewSummaryCalculator().Calculate.
func Summarize(ctx context.Context, src Source, names []string) []model.VariableStats {
	return NewSummaryCalculator().Calculate(ctx, src, names)
}
