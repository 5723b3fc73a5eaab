package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mat-analysis/pkg/model"
)

func sampleBlocks() (dataInfo, block1, block2 *model.Matrix) {
	dataInfo = model.MatrixFromRows(model.FieldDataInfo, [][]float64{
		{2, 2, 1},
		{1, 2, 1},
	})
	block1 = model.MatrixFromRows(model.FieldData1, [][]float64{
		{7, 7},
	})
	block2 = model.MatrixFromRows(model.FieldData2, [][]float64{
		{0, 1, 2},
		{10, 11, 12},
	})
	return
}

func TestResolve_Basic(t *testing.T) {
	dataInfo, block1, block2 := sampleBlocks()

	table := Resolve([]string{"time", "x", "k"}, dataInfo, block1, block2)

	require.NotNil(t, table)
	assert.Equal(t, []string{"time", "x", "k"}, table.Names)
	assert.Equal(t, model.Series{0, 1, 2}, table.Series["time"])
	assert.Equal(t, model.Series{10, 11, 12}, table.Series["x"])
	assert.Equal(t, model.Series{7, 7}, table.Series["k"])
	assert.Equal(t, model.Series{0, 1, 2}, table.Time)
}

func TestResolve_InvalidEntries(t *testing.T) {
	dataInfo := model.MatrixFromRows(model.FieldDataInfo, [][]float64{
		{2, 3, 2, 0, 2},
		{2, 1, 9, 1, 0},
	})
	_, block1, block2 := sampleBlocks()

	table, report := ResolveWithReport(
		[]string{"ok", "badsel", "oob", "zero", "alias"},
		dataInfo, block1, block2,
	)

	assert.Equal(t, 1, table.Len())
	assert.Contains(t, table.Series, "ok")
	assert.Equal(t, 5, report.Decoded)
	assert.Equal(t, 1, report.Resolved)
	require.Len(t, report.Gaps, 4)
	assert.Equal(t, GapBadSelector, report.Gaps[0].Gap)
	assert.Equal(t, GapRowOutOfRange, report.Gaps[1].Gap)
	assert.Equal(t, GapBadSelector, report.Gaps[2].Gap)
	assert.Equal(t, GapRowOutOfRange, report.Gaps[3].Gap)
}

func TestResolve_NegativeIndexIsAbsent(t *testing.T) {
	dataInfo := model.MatrixFromRows(model.FieldDataInfo, [][]float64{
		{2},
		{-2},
	})
	_, block1, block2 := sampleBlocks()

	table := Resolve([]string{"neg"}, dataInfo, block1, block2)

	_, ok := table.Lookup("neg")
	assert.False(t, ok)
}

func TestResolve_MoreNamesThanIndexColumns(t *testing.T) {
	dataInfo, block1, block2 := sampleBlocks()

	table, report := ResolveWithReport([]string{"a", "b", "c", "d"}, dataInfo, block1, block2)

	assert.Equal(t, 3, table.Len())
	require.Len(t, report.Gaps, 1)
	assert.Equal(t, "d", report.Gaps[0].Name)
	assert.Equal(t, GapMissingIndex, report.Gaps[0].Gap)
}

func TestResolve_MissingBlocks(t *testing.T) {
	dataInfo, block1, _ := sampleBlocks()

	table, report := ResolveWithReport([]string{"time", "x", "k"}, dataInfo, block1, nil)

	assert.Equal(t, 1, table.Len())
	assert.Empty(t, table.Time)
	for _, g := range report.Gaps {
		assert.Equal(t, GapMissingBlock, g.Gap)
	}
}

func TestResolve_NilIndex(t *testing.T) {
	_, block1, block2 := sampleBlocks()

	table := Resolve([]string{"a", "b"}, nil, block1, block2)

	assert.Equal(t, 0, table.Len())
	assert.Equal(t, []string{"a", "b"}, table.Names)
	assert.Equal(t, model.Series{0, 1, 2}, table.Time)
}

func TestResolve_DuplicateNamesLastWins(t *testing.T) {
	dataInfo := model.MatrixFromRows(model.FieldDataInfo, [][]float64{
		{2, 2},
		{1, 2},
	})
	_, block1, block2 := sampleBlocks()

	table := Resolve([]string{"dup", "dup"}, dataInfo, block1, block2)

	assert.Equal(t, model.Series{10, 11, 12}, table.Series["dup"])
}

func TestResolve_SeriesAreCopies(t *testing.T) {
	dataInfo, block1, block2 := sampleBlocks()

	table := Resolve([]string{"time", "x", "k"}, dataInfo, block1, block2)
	table.Series["x"][0] = 99

	v, _ := block2.At(1, 0)
	assert.Equal(t, 10.0, v)
	assert.Equal(t, 0.0, table.Time[0])
}

func TestResolve_NonIntegralIndex(t *testing.T) {
	dataInfo := model.MatrixFromRows(model.FieldDataInfo, [][]float64{
		{2.5},
		{1},
	})
	_, block1, block2 := sampleBlocks()

	out := ResolveEntry(0, dataInfo, block1, block2)

	assert.False(t, out.Ok())
	assert.Equal(t, GapMissingIndex, out.Gap)
}

func TestExtractTime(t *testing.T) {
	_, _, block2 := sampleBlocks()

	assert.Equal(t, model.Series{0, 1, 2}, ExtractTime(block2))
	assert.Equal(t, model.Series{}, ExtractTime(nil))
	assert.Equal(t, model.Series{}, ExtractTime(model.NewMatrix(model.FieldData2, 0, 5)))
}

func TestDecodeThenResolve(t *testing.T) {
	dataInfo, block1, block2 := sampleBlocks()
	raw := model.NewRawResultFile()
	raw.Put(model.GridFromNames("time", "x", "k", "").CharMatrix(model.FieldName))
	raw.Put(dataInfo)
	raw.Put(block1)
	raw.Put(block2)

	names := DecodeNames(raw.NameGrid())
	table, report := ResolveWithReport(names, raw.DataInfo(), raw.Block(model.BlockConstant), raw.Block(model.BlockSeries))

	assert.Equal(t, []string{"time", "x", "k"}, table.Names)
	assert.Equal(t, 3, report.Resolved)
	assert.Empty(t, report.Gaps)
	assert.Equal(t, model.Series{7, 7}, table.Series["k"])
}

func TestResolve_Idempotent(t *testing.T) {
	raw := model.NewRawResultFile()
	raw.Put(model.GridFromNames("time", "x", "x", "bad", "").CharMatrix(model.FieldName))
	raw.Put(model.MatrixFromRows(model.FieldDataInfo, [][]float64{
		{2, 2, 1, 5},
		{1, 2, 1, 1},
	}))
	raw.Put(model.MatrixFromRows(model.FieldData1, [][]float64{{7, 7}}))
	raw.Put(model.MatrixFromRows(model.FieldData2, [][]float64{
		{0, 1, 2},
		{10, 11, 12},
	}))

	resolve := func() *model.ResolvedTable {
		return Resolve(DecodeNames(raw.NameGrid()), raw.DataInfo(),
			raw.Block(model.BlockConstant), raw.Block(model.BlockSeries))
	}
	first := resolve()
	second := resolve()

	require.Equal(t, []string{"time", "x", "x", "bad"}, first.Names)
	assert.Equal(t, model.Series{7, 7}, first.Series["x"])
	_, ok := first.Lookup("bad")
	assert.False(t, ok)
	assert.Equal(t, first, second)
}

func TestGap_String(t *testing.T) {
	assert.Equal(t, "none", GapNone.String())
	assert.Equal(t, "bad_selector", GapBadSelector.String())
	assert.Equal(t, "unknown", Gap(42).String())
}
