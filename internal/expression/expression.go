// Package expression evaluates derived keys such as "a - b" against a
// resolved table. Only two-operand subtraction is computed; other operators
// are recognised but evaluate to an empty series.
package expression

import (
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/mat-analysis/pkg/model"
)

// operatorChars are the characters that mark a key as an expression.
const operatorChars = "+-*/()"

// Table is the read side of a resolved table.
type Table interface {
	Lookup(name string) (model.Series, bool)
}

// IsExpression reports whether key contains an arithmetic operator or a
// parenthesis.
func IsExpression(key string) bool {
	return strings.ContainsAny(key, operatorChars)
}

// Evaluate computes key against table. The result is empty unless key is a
// subtraction of exactly two resolved, equal-length operands.
func Evaluate(key string, table Table) model.Series {
	if table == nil {
		return model.Series{}
	}
	left, right, ok := splitDifference(key)
	if !ok {
		return model.Series{}
	}

	a, ok := table.Lookup(left)
	if !ok {
		return model.Series{}
	}
	b, ok := table.Lookup(right)
	if !ok {
		return model.Series{}
	}
	if len(a) != len(b) {
		return model.Series{}
	}

	dst := make([]float64, len(a))
	floats.SubTo(dst, a, b)
	return model.Series(dst)
}

// splitDifference splits key on '-' into two trimmed, non-empty operands.
func splitDifference(key string) (string, string, bool) {
	parts := strings.Split(key, "-")
	if len(parts) != 2 {
		return "", "", false
	}
	left := strings.TrimSpace(parts[0])
	right := strings.TrimSpace(parts[1])
	if left == "" || right == "" {
		return "", "", false
	}
	return left, right, true
}
