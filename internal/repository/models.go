package repository

import (
	"time"

	"github.com/mat-analysis/pkg/model"
)

// LoadHistory represents the load_history table.
type LoadHistory struct {
	ID            int64            `gorm:"column:id;primaryKey;autoIncrement"`
	LoadID        string           `gorm:"column:load_id;type:varchar(36);uniqueIndex"`
	Source        string           `gorm:"column:source;type:varchar(1024)"`
	Status        model.LoadStatus `gorm:"column:status"`
	Message       string           `gorm:"column:message;type:text"`
	VariableCount int              `gorm:"column:variable_count"`
	ResolvedCount int              `gorm:"column:resolved_count"`
	TimePoints    int              `gorm:"column:time_points"`
	DurationMs    int64            `gorm:"column:duration_ms"`
	CreatedAt     time.Time        `gorm:"column:created_at;index"`
}

// TableName returns the table name for LoadHistory.
func (LoadHistory) TableName() string {
	return "load_history"
}

// ToModel converts a row into a model.LoadRecord.
func (h *LoadHistory) ToModel() *model.LoadRecord {
	return &model.LoadRecord{
		ID:            h.ID,
		LoadID:        h.LoadID,
		Source:        h.Source,
		Status:        h.Status,
		Message:       h.Message,
		VariableCount: h.VariableCount,
		ResolvedCount: h.ResolvedCount,
		TimePoints:    h.TimePoints,
		DurationMs:    h.DurationMs,
		CreatedAt:     h.CreatedAt,
	}
}

// historyFromModel converts a model.LoadRecord into a row.
func historyFromModel(r *model.LoadRecord) *LoadHistory {
	return &LoadHistory{
		ID:            r.ID,
		LoadID:        r.LoadID,
		Source:        r.Source,
		Status:        r.Status,
		Message:       r.Message,
		VariableCount: r.VariableCount,
		ResolvedCount: r.ResolvedCount,
		TimePoints:    r.TimePoints,
		DurationMs:    r.DurationMs,
		CreatedAt:     r.CreatedAt,
	}
}
