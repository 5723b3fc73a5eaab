package expression

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mat-analysis/pkg/model"
)

func newTable() *model.ResolvedTable {
	table := model.NewResolvedTable()
	table.Series["a"] = model.Series{5, 7, 9}
	table.Series["b"] = model.Series{1, 2, 3}
	table.Series["c"] = model.Series{1, 2}
	table.Series["bus.v[1]"] = model.Series{10, 10, 10}
	return table
}

func TestIsExpression(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"a - b", true},
		{"a+b", true},
		{"a*b", true},
		{"a/b", true},
		{"(a)", true},
		{"bus.v[1]", false},
		{"time", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, IsExpression(tt.key))
		})
	}
}

func TestEvaluate_Subtraction(t *testing.T) {
	table := newTable()

	assert.Equal(t, model.Series{4, 5, 6}, Evaluate("a - b", table))
	assert.Equal(t, model.Series{4, 5, 6}, Evaluate("a-b", table))
	assert.Equal(t, model.Series{5, 3, 1}, Evaluate("bus.v[1] - a", table))
}

func TestEvaluate_DoesNotMutateOperands(t *testing.T) {
	table := newTable()

	_ = Evaluate("a - b", table)

	assert.Equal(t, model.Series{5, 7, 9}, table.Series["a"])
	assert.Equal(t, model.Series{1, 2, 3}, table.Series["b"])
}

func TestEvaluate_Unsupported(t *testing.T) {
	table := newTable()

	tests := []struct {
		name string
		key  string
	}{
		{"addition", "a + b"},
		{"multiplication", "a * b"},
		{"division", "a / b"},
		{"parentheses", "(a) - b"},
		{"three operands", "a - b - c"},
		{"missing left", " - b"},
		{"missing right", "a - "},
		{"unknown operand", "a - z"},
		{"length mismatch", "a - c"},
		{"no operator", "a"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.key, table)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestEvaluate_NilTable(t *testing.T) {
	assert.Empty(t, Evaluate("a - b", nil))
}
