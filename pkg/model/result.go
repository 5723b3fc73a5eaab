// Package model defines the core data structures used throughout the application.
package model

// Field names of the arrays an OpenModelica result file carries.
const (
	FieldAclass      = "Aclass"
	FieldName        = "name"
	FieldDescription = "description"
	FieldDataInfo    = "dataInfo"
	FieldData1       = "data_1"
	FieldData2       = "data_2"
)

// Block selectors used in row 0 of dataInfo.
const (
	BlockConstant = 1 // data_1: parameters and constants
	BlockSeries   = 2 // data_2: time-varying samples, row 0 is time
)

// Matrix is one named numeric array as read from the result container.
// Data is stored column-major, the same order the container uses.
type Matrix struct {
	Name string    `json:"name"`
	Rows int       `json:"rows"`
	Cols int       `json:"cols"`
	Data []float64 `json:"data"`

	// Text is set when the container flagged the matrix as character data.
	Text bool `json:"text,omitempty"`
}

// NewMatrix creates a zero-filled rows x cols matrix.
func NewMatrix(name string, rows, cols int) *Matrix {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Matrix{
		Name: name,
		Rows: rows,
		Cols: cols,
		Data: make([]float64, rows*cols),
	}
}

// MatrixFromRows builds a matrix from row slices. Short rows are zero padded.
func MatrixFromRows(name string, rows [][]float64) *Matrix {
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	m := NewMatrix(name, len(rows), cols)
	for r, row := range rows {
		for c, v := range row {
			m.Set(r, c, v)
		}
	}
	return m
}

// InBounds reports whether (r, c) addresses a stored element.
func (m *Matrix) InBounds(r, c int) bool {
	if m == nil {
		return false
	}
	return r >= 0 && c >= 0 && r < m.Rows && c < m.Cols && c*m.Rows+r < len(m.Data)
}

// At returns the element at (r, c) and whether it exists.
func (m *Matrix) At(r, c int) (float64, bool) {
	if !m.InBounds(r, c) {
		return 0, false
	}
	return m.Data[c*m.Rows+r], true
}

// Set stores v at (r, c). Out-of-range writes are ignored.
func (m *Matrix) Set(r, c int, v float64) {
	if !m.InBounds(r, c) {
		return
	}
	m.Data[c*m.Rows+r] = v
}

// Row copies row r into a new slice. The second result is false when r is
// outside the matrix or the backing data is short.
func (m *Matrix) Row(r int) ([]float64, bool) {
	if m == nil || r < 0 || r >= m.Rows {
		return nil, false
	}
	if len(m.Data) < m.Rows*m.Cols {
		return nil, false
	}
	row := make([]float64, m.Cols)
	for c := 0; c < m.Cols; c++ {
		row[c] = m.Data[c*m.Rows+r]
	}
	return row, true
}

// Transpose returns a new matrix with rows and columns swapped.
func (m *Matrix) Transpose() *Matrix {
	if m == nil {
		return nil
	}
	t := NewMatrix(m.Name, m.Cols, m.Rows)
	t.Text = m.Text
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			v, _ := m.At(r, c)
			t.Set(c, r, v)
		}
	}
	return t
}

// CharGrid is a 2-D character grid indexed [row][column]. Rows may be
// ragged when the producer trimmed trailing NULs.
type CharGrid [][]rune

// Columns returns the column count of the first row, which is the number of
// packed names the grid advertises.
func (g CharGrid) Columns() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// GridFromStrings builds a grid whose rows are the given strings.
func GridFromStrings(rows ...string) CharGrid {
	g := make(CharGrid, len(rows))
	for i, s := range rows {
		g[i] = []rune(s)
	}
	return g
}

// GridFromNames packs names column-wise, one name per column, NUL padded.
// This is the layout the simulator writes.
func GridFromNames(names ...string) CharGrid {
	height := 0
	for _, n := range names {
		if l := len([]rune(n)); l > height {
			height = l
		}
	}
	height++ // room for the terminating NUL

	g := make(CharGrid, height)
	for r := range g {
		g[r] = make([]rune, len(names))
	}
	for c, n := range names {
		for r, ch := range []rune(n) {
			g[r][c] = ch
		}
	}
	return g
}

// CharMatrix converts the grid into a text matrix.
func (g CharGrid) CharMatrix(name string) *Matrix {
	cols := g.Columns()
	m := NewMatrix(name, len(g), cols)
	m.Text = true
	for r, row := range g {
		for c, ch := range row {
			m.Set(r, c, float64(ch))
		}
	}
	return m
}

// Grid converts a text matrix into a character grid.
func (m *Matrix) Grid() CharGrid {
	if m == nil {
		return nil
	}
	g := make(CharGrid, m.Rows)
	for r := 0; r < m.Rows; r++ {
		g[r] = make([]rune, m.Cols)
		for c := 0; c < m.Cols; c++ {
			v, _ := m.At(r, c)
			g[r][c] = rune(v)
		}
	}
	return g
}

// RawResultFile is the mapping of named arrays a deserialized result file
// provides.
type RawResultFile struct {
	Arrays map[string]*Matrix
}

// NewRawResultFile creates an empty result file.
func NewRawResultFile() *RawResultFile {
	return &RawResultFile{Arrays: make(map[string]*Matrix)}
}

// Put stores m under its own name.
func (f *RawResultFile) Put(m *Matrix) {
	if m == nil {
		return
	}
	if f.Arrays == nil {
		f.Arrays = make(map[string]*Matrix)
	}
	f.Arrays[m.Name] = m
}

// Array returns the named array, or nil.
func (f *RawResultFile) Array(name string) *Matrix {
	if f == nil || f.Arrays == nil {
		return nil
	}
	return f.Arrays[name]
}

// NameGrid returns the packed name matrix as a character grid.
func (f *RawResultFile) NameGrid() CharGrid {
	return f.Array(FieldName).Grid()
}

// DataInfo returns the index table.
func (f *RawResultFile) DataInfo() *Matrix {
	return f.Array(FieldDataInfo)
}

// Block returns data_1 or data_2 for selectors 1 and 2, nil otherwise.
func (f *RawResultFile) Block(selector int) *Matrix {
	switch selector {
	case BlockConstant:
		return f.Array(FieldData1)
	case BlockSeries:
		return f.Array(FieldData2)
	default:
		return nil
	}
}
