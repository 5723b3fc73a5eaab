package resolver

import (
	"math"

	"github.com/mat-analysis/pkg/model"
)

// Gap explains why an index entry produced no series.
type Gap int

const (
	// GapNone marks a resolved entry.
	GapNone Gap = iota
	// GapMissingIndex means dataInfo has no column for the entry.
	GapMissingIndex
	// GapBadSelector means the block selector is not 1 or 2.
	GapBadSelector
	// GapMissingBlock means the selected block is absent from the file.
	GapMissingBlock
	// GapRowOutOfRange means the 1-based row does not exist in the block.
	GapRowOutOfRange
)

// String returns the string representation of Gap.
func (g Gap) String() string {
	switch g {
	case GapNone:
		return "none"
	case GapMissingIndex:
		return "missing_index"
	case GapBadSelector:
		return "bad_selector"
	case GapMissingBlock:
		return "missing_block"
	case GapRowOutOfRange:
		return "row_out_of_range"
	default:
		return "unknown"
	}
}

// Outcome is the result of resolving one index entry: either a series or
// the gap that prevented it.
type Outcome struct {
	Series model.Series
	Gap    Gap
}

// Ok reports whether the entry resolved.
func (o Outcome) Ok() bool {
	return o.Gap == GapNone
}

// EntryGap records an unresolved name for diagnostics.
type EntryGap struct {
	Index int
	Name  string
	Gap   Gap
}

// Report summarizes one resolve pass.
type Report struct {
	Decoded  int
	Resolved int
	Gaps     []EntryGap
}

// Resolve binds each name to the block row its dataInfo entry points at.
// Duplicate names resolve last-write-wins. Entries that cannot be resolved
// are left out of the table.
func Resolve(names []string, dataInfo, block1, block2 *model.Matrix) *model.ResolvedTable {
	table, _ := ResolveWithReport(names, dataInfo, block1, block2)
	return table
}

// ResolveWithReport is Resolve plus a report of every gap encountered.
func ResolveWithReport(names []string, dataInfo, block1, block2 *model.Matrix) (*model.ResolvedTable, *Report) {
	table := model.NewResolvedTable()
	table.Names = append(table.Names, names...)
	report := &Report{Decoded: len(names)}

	for i, name := range names {
		out := ResolveEntry(i, dataInfo, block1, block2)
		if !out.Ok() {
			report.Gaps = append(report.Gaps, EntryGap{Index: i, Name: name, Gap: out.Gap})
			continue
		}
		table.Series[name] = out.Series
	}

	table.Time = ExtractTime(block2)
	report.Resolved = len(table.Series)
	return table, report
}

// ResolveEntry resolves the index entry at column i of dataInfo.
func ResolveEntry(i int, dataInfo, block1, block2 *model.Matrix) Outcome {
	selector, ok := intAt(dataInfo, 0, i)
	if !ok {
		return Outcome{Gap: GapMissingIndex}
	}
	oneBased, ok := intAt(dataInfo, 1, i)
	if !ok {
		return Outcome{Gap: GapMissingIndex}
	}

	var block *model.Matrix
	switch selector {
	case model.BlockConstant:
		block = block1
	case model.BlockSeries:
		block = block2
	default:
		return Outcome{Gap: GapBadSelector}
	}
	if block == nil {
		return Outcome{Gap: GapMissingBlock}
	}

	row := oneBased - 1
	if row < 0 {
		return Outcome{Gap: GapRowOutOfRange}
	}
	values, ok := block.Row(row)
	if !ok {
		return Outcome{Gap: GapRowOutOfRange}
	}
	return Outcome{Series: model.Series(values)}
}

// ExtractTime returns row 0 of data_2, or an empty series when the block is
// missing or has no rows.
func ExtractTime(block2 *model.Matrix) model.Series {
	row, ok := block2.Row(0)
	if !ok {
		return model.Series{}
	}
	return model.Series(row)
}

// intAt reads an integral element. Non-integral and non-finite values count
// as missing.
func intAt(m *model.Matrix, r, c int) (int, bool) {
	v, ok := m.At(r, c)
	if !ok {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, false
	}
	return int(v), true
}
