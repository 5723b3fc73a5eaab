package statistics

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mat-analysis/pkg/model"
)

func TestCompute_Basic(t *testing.T) {
	s, ok := Compute(model.Series{2, 4, 4, 4, 5, 5, 7, 9})

	require.True(t, ok)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
	assert.InDelta(t, 5.0, s.Mean, 1e-12)
	assert.InDelta(t, 2.0, s.Std, 1e-12)
	assert.Equal(t, 8, s.Count)
}

func TestCompute_SingleValue(t *testing.T) {
	s, ok := Compute(model.Series{3.5})

	require.True(t, ok)
	assert.Equal(t, 3.5, s.Min)
	assert.Equal(t, 3.5, s.Max)
	assert.Equal(t, 3.5, s.Mean)
	assert.Equal(t, 0.0, s.Std)
	assert.Equal(t, 1, s.Count)
}

func TestCompute_Absent(t *testing.T) {
	_, ok := Compute(nil)
	assert.False(t, ok)

	_, ok = Compute(model.Series{})
	assert.False(t, ok)
}

func TestCompute_Negative(t *testing.T) {
	s, ok := Compute(model.Series{-1, 1})

	require.True(t, ok)
	assert.Equal(t, -1.0, s.Min)
	assert.Equal(t, 1.0, s.Max)
	assert.Equal(t, 0.0, s.Mean)
	assert.InDelta(t, 1.0, s.Std, 1e-12)
}

func TestCompute_Ordering(t *testing.T) {
	series := model.Series{0.3, -7, 12, 1e-3, 4}

	s, ok := Compute(series)

	require.True(t, ok)
	assert.LessOrEqual(t, s.Min, s.Mean)
	assert.LessOrEqual(t, s.Mean, s.Max)
	assert.GreaterOrEqual(t, s.Std, 0.0)
	assert.Equal(t, len(series), s.Count)
}

func TestSummaryCalculator_Calculate(t *testing.T) {
	table := model.NewResolvedTable()
	table.Series["a"] = model.Series{1, 2, 3}
	table.Series["empty"] = model.Series{}

	calc := NewSummaryCalculator(WithWorkers(2))
	got := calc.Calculate(context.Background(), table, []string{"a", "missing", "empty", "a"})

	require.Len(t, got, 4)
	assert.Equal(t, "a", got[0].Name)
	assert.True(t, got[0].Available)
	assert.Equal(t, 2.0, got[0].Stats.Mean)
	assert.Equal(t, "missing", got[1].Name)
	assert.False(t, got[1].Available)
	assert.Equal(t, "empty", got[2].Name)
	assert.False(t, got[2].Available)
	assert.Equal(t, got[0], got[3])
}

func TestSummaryCalculator_PreservesOrder(t *testing.T) {
	table := model.NewResolvedTable()
	names := make([]string, 50)
	for i := range names {
		names[i] = fmt.Sprintf("v%d", i)
		table.Series[names[i]] = model.Series{float64(i)}
	}

	got := Summarize(context.Background(), table, names)

	require.Len(t, got, len(names))
	for i, entry := range got {
		assert.Equal(t, names[i], entry.Name)
		assert.Equal(t, float64(i), entry.Stats.Max)
	}
}

func TestSummarize_Empty(t *testing.T) {
	assert.Empty(t, Summarize(context.Background(), model.NewResolvedTable(), nil))
}

func TestSummarize_NilSource(t *testing.T) {
	got := Summarize(context.Background(), nil, []string{"a"})

	require.Len(t, got, 1)
	assert.False(t, got[0].Available)
}
