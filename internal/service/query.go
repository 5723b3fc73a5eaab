package service

import (
	"context"

	"github.com/mat-analysis/internal/expression"
	"github.com/mat-analysis/internal/repository"
	"github.com/mat-analysis/internal/search"
	"github.com/mat-analysis/internal/statistics"
	apperrors "github.com/mat-analysis/pkg/errors"
	"github.com/mat-analysis/pkg/model"
)

// Info summarizes the current snapshot. The second result is false before
// the first successful load.
func (s *Service) Info() (Info, bool) {
	snap := s.Snapshot()
	if snap == nil {
		return Info{}, false
	}
	return snap.info(), true
}

// ListCategories returns the visible names grouped by category. Every
// category is present, possibly empty.
func (s *Service) ListCategories() map[model.Category][]string {
	snap := s.Snapshot()
	if snap == nil {
		return s.classifier.Classify(nil)
	}
	out := make(map[model.Category][]string, len(snap.Categories))
	for cat, names := range snap.Categories {
		out[cat] = append(make([]string, 0, len(names)), names...)
	}
	return out
}

// Names returns the visible names in decode order.
func (s *Service) Names() []string {
	snap := s.Snapshot()
	if snap == nil {
		return []string{}
	}
	return append(make([]string, 0, len(snap.Names)), snap.Names...)
}

// SearchVariables returns the names containing pattern, ignoring case.
func (s *Service) SearchVariables(pattern string) []string {
	snap := s.Snapshot()
	if snap == nil {
		return []string{}
	}
	return search.Search(pattern, snap.Names)
}

// FuzzySearchVariables returns the names matching pattern as a fuzzy
// subsequence, best matches first.
func (s *Service) FuzzySearchVariables(pattern string) []string {
	snap := s.Snapshot()
	if snap == nil {
		return []string{}
	}
	return search.FuzzySearch(pattern, snap.Names)
}

// Suggest returns the closest known name to name, or "".
func (s *Service) Suggest(name string) string {
	snap := s.Snapshot()
	if snap == nil {
		return ""
	}
	return search.Closest(name, snap.Names)
}

// ReadVariables returns one series per key, in key order, plus the time
// axis. A key is looked up literally first and evaluated as an expression
// otherwise. Keys that produce nothing yield an empty series.
func (s *Service) ReadVariables(keys []string) ([]model.Series, model.Series) {
	snap := s.Snapshot()
	out := make([]model.Series, len(keys))
	for i, key := range keys {
		out[i] = readKey(snap, key)
	}
	return out, snap.Time().Clone()
}

func readKey(snap *Snapshot, key string) model.Series {
	if snap == nil {
		return model.Series{}
	}
	if series, ok := snap.Lookup(key); ok {
		return series.Clone()
	}
	if expression.IsExpression(key) {
		return expression.Evaluate(key, snap)
	}
	return model.Series{}
}

// VariableStats returns the statistics of a resolved variable. Expressions
// are not evaluated here.
func (s *Service) VariableStats(name string) (model.Stats, bool) {
	series, ok := s.Snapshot().Lookup(name)
	if !ok {
		return model.Stats{}, false
	}
	return statistics.Compute(series)
}

// Summary computes statistics for names, or for every visible name when
// names is empty.
func (s *Service) Summary(ctx context.Context, names []string) []model.VariableStats {
	snap := s.Snapshot()
	if len(names) == 0 && snap != nil {
		names = snap.Names
	}
	if snap == nil {
		return s.summary.Calculate(ctx, nil, names)
	}
	return s.summary.Calculate(ctx, snap, names)
}

// History returns the most recent load records, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]*model.LoadRecord, error) {
	if s.history == nil {
		return nil, apperrors.New(apperrors.CodeConfigError, "load history is disabled")
	}
	if limit <= 0 {
		limit = repository.DefaultListLimit
	}
	return s.history.ListLoads(ctx, limit)
}
