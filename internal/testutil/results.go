package testutil

import (
	"github.com/mat-analysis/pkg/model"
)

// Variable describes one entry of a synthetic result file.
type Variable struct {
	Name   string
	Block  int // model.BlockConstant or model.BlockSeries
	Values []float64
}

// Series is a block 2 variable. Block 2 is one matrix, so every series
// shares the row length of the longest one: short values are zero padded and
// never produce a length mismatch with time. Use Param for a variable whose
// length differs from time.
func Series(name string, values ...float64) Variable {
	return Variable{Name: name, Block: model.BlockSeries, Values: values}
}

// Param is a block 1 variable. Block 1 rows are zero padded to the longest
// parameter, independently of time.
func Param(name string, values ...float64) Variable {
	return Variable{Name: name, Block: model.BlockConstant, Values: values}
}

// NewResultFile builds the arrays an OpenModelica binTrans result carries:
// "time" followed by vars, plus a trailing sentinel column in the name
// matrix. dataInfo has the four rows the simulator writes.
func NewResultFile(time []float64, vars ...Variable) *model.RawResultFile {
	names := []string{"time"}
	block1 := make([][]float64, 0)
	block2 := [][]float64{time}

	info := [][]float64{{model.BlockSeries}, {1}, {0}, {-1}}
	for _, v := range vars {
		names = append(names, v.Name)
		var row int
		switch v.Block {
		case model.BlockConstant:
			block1 = append(block1, v.Values)
			row = len(block1)
		default:
			block2 = append(block2, v.Values)
			row = len(block2)
		}
		info[0] = append(info[0], float64(v.Block))
		info[1] = append(info[1], float64(row))
		info[2] = append(info[2], 0)
		info[3] = append(info[3], -1)
	}

	raw := model.NewRawResultFile()
	raw.Put(model.GridFromNames(append(names, "")...).CharMatrix(model.FieldName))
	raw.Put(model.MatrixFromRows(model.FieldDataInfo, info))
	raw.Put(model.MatrixFromRows(model.FieldData1, block1))
	raw.Put(model.MatrixFromRows(model.FieldData2, block2))
	return raw
}

// SampleResultFile is a small result with electrical, mechanical and
// parameter entries.
func SampleResultFile() *model.RawResultFile {
	return NewResultFile(
		[]float64{0, 0.5, 1},
		Series("bus.v[1]", 5, 7, 9),
		Series("bus.v[2]", 1, 2, 3),
		Series("motor.speed", 0, 10, 20),
		Param("gain", 2, 2),
		Series("x", 2, 4, 4),
	)
}
