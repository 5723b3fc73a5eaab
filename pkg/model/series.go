package model

// Series is an ordered sequence of samples for one variable.
type Series []float64

// Clone returns an independent copy.
func (s Series) Clone() Series {
	if s == nil {
		return nil
	}
	c := make(Series, len(s))
	copy(c, s)
	return c
}

// AlignedWith reports whether s and time have the same sample count.
func (s Series) AlignedWith(time Series) bool {
	return len(s) == len(time)
}

// ResolvedTable binds decoded names to their series. It is built once per
// load and never mutated afterwards.
type ResolvedTable struct {
	// Names holds every decoded name in column order, including empty ones.
	Names []string

	// Series maps a name to its samples. Names whose index entry could not
	// be resolved are absent.
	Series map[string]Series

	// Time is row 0 of data_2, empty when the block is missing.
	Time Series
}

// NewResolvedTable creates an empty table.
func NewResolvedTable() *ResolvedTable {
	return &ResolvedTable{
		Names:  make([]string, 0),
		Series: make(map[string]Series),
		Time:   Series{},
	}
}

// Lookup returns the series stored under name.
func (t *ResolvedTable) Lookup(name string) (Series, bool) {
	if t == nil {
		return nil, false
	}
	s, ok := t.Series[name]
	return s, ok
}

// Len returns the number of resolved series.
func (t *ResolvedTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Series)
}

// VisibleNames returns the decoded names without empty entries, in decode
// order.
func (t *ResolvedTable) VisibleNames() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.Names))
	for _, n := range t.Names {
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Category is the semantic group a variable name is assigned to.
type Category string

const (
	CategoryTime       Category = "time"
	CategoryElectrical Category = "electrical"
	CategoryThermal    Category = "thermal"
	CategoryMechanical Category = "mechanical"
	CategoryControl    Category = "control"
	CategoryFault      Category = "fault"
	CategoryOther      Category = "other"
)

// AllCategories lists every category in display order.
var AllCategories = []Category{
	CategoryTime,
	CategoryElectrical,
	CategoryThermal,
	CategoryMechanical,
	CategoryControl,
	CategoryFault,
	CategoryOther,
}

// String returns the label.
func (c Category) String() string {
	return string(c)
}

// Stats holds descriptive statistics of one series.
type Stats struct {
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
	Mean  float64 `json:"mean" yaml:"mean"`
	Std   float64 `json:"std" yaml:"std"`
	Count int     `json:"count" yaml:"count"`
}

// VariableStats pairs a variable name with its statistics.
type VariableStats struct {
	Name      string `json:"name" yaml:"name"`
	Stats     Stats  `json:"stats" yaml:"stats"`
	Available bool   `json:"available" yaml:"available"`
}
