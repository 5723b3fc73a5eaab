package mat4

import (
	"strings"

	"github.com/mat-analysis/pkg/model"
)

// Layout is the storage orientation recorded in row 3 of Aclass.
type Layout int

const (
	// LayoutTrans is the canonical orientation: names down the columns,
	// one variable per row of data_2.
	LayoutTrans Layout = iota
	// LayoutNormal stores every result array transposed.
	LayoutNormal
)

// String returns the Aclass label of the layout.
func (l Layout) String() string {
	if l == LayoutNormal {
		return "binNormal"
	}
	return "binTrans"
}

// transposedFields are the arrays whose orientation depends on the layout.
var transposedFields = []string{
	model.FieldName,
	model.FieldDescription,
	model.FieldDataInfo,
	model.FieldData1,
	model.FieldData2,
}

// DetectLayout reads the layout from Aclass. Files without a readable Aclass
// are treated as binTrans.
func DetectLayout(raw *model.RawResultFile) Layout {
	aclass := raw.Array(model.FieldAclass)
	if aclass == nil {
		return LayoutTrans
	}
	grid := aclass.Grid()
	if len(grid) < 4 {
		return LayoutTrans
	}
	label := strings.TrimSpace(strings.TrimRight(string(grid[3]), "\x00"))
	if label == LayoutNormal.String() {
		return LayoutNormal
	}
	return LayoutTrans
}

// Normalize rewrites a binNormal file into the canonical layout in place
// and returns the layout it found.
func Normalize(raw *model.RawResultFile) Layout {
	layout := DetectLayout(raw)
	if layout != LayoutNormal {
		return layout
	}
	for _, name := range transposedFields {
		if m := raw.Array(name); m != nil {
			raw.Put(m.Transpose())
		}
	}
	return layout
}

// AclassMatrix builds the Aclass header matrix for the given layout.
func AclassMatrix(layout Layout) *model.Matrix {
	rows := []string{"Atrajectory", "1.1", "", layout.String()}
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	padded := make([]string, len(rows))
	for i, r := range rows {
		padded[i] = r + strings.Repeat(" ", width-len(r))
	}
	return model.GridFromStrings(padded...).CharMatrix(model.FieldAclass)
}
