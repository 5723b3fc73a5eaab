package service

import (
	"time"

	"github.com/mat-analysis/pkg/model"
)

// Snapshot is one published load. It is never mutated after publication,
// so any number of readers may share it.
type Snapshot struct {
	LoadID   string
	Source   string
	LoadedAt time.Time

	Table      *model.ResolvedTable
	Categories map[model.Category][]string

	// Names are the non-empty decoded names in decode order.
	Names []string
}

// Lookup returns the series stored under name.
func (s *Snapshot) Lookup(name string) (model.Series, bool) {
	if s == nil {
		return nil, false
	}
	return s.Table.Lookup(name)
}

// Time returns the time axis, empty when the file had no samples.
func (s *Snapshot) Time() model.Series {
	if s == nil || s.Table == nil {
		return model.Series{}
	}
	return s.Table.Time
}

// Info summarizes a snapshot for display.
type Info struct {
	LoadID         string                 `json:"load_id" yaml:"load_id"`
	Source         string                 `json:"source" yaml:"source"`
	LoadedAt       time.Time              `json:"loaded_at" yaml:"loaded_at"`
	VariableCount  int                    `json:"variable_count" yaml:"variable_count"`
	ResolvedCount  int                    `json:"resolved_count" yaml:"resolved_count"`
	TimePoints     int                    `json:"time_points" yaml:"time_points"`
	StartTime      float64                `json:"start_time" yaml:"start_time"`
	StopTime       float64                `json:"stop_time" yaml:"stop_time"`
	CategoryCounts map[model.Category]int `json:"category_counts" yaml:"category_counts"`
}

func (s *Snapshot) info() Info {
	info := Info{
		LoadID:         s.LoadID,
		Source:         s.Source,
		LoadedAt:       s.LoadedAt,
		VariableCount:  len(s.Table.Names),
		ResolvedCount:  s.Table.Len(),
		CategoryCounts: make(map[model.Category]int, len(s.Categories)),
	}
	if t := s.Time(); len(t) > 0 {
		info.TimePoints = len(t)
		info.StartTime = t[0]
		info.StopTime = t[len(t)-1]
	}
	for cat, names := range s.Categories {
		info.CategoryCounts[cat] = len(names)
	}
	return info
}
