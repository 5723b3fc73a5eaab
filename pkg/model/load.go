package model

import "time"

// LoadStatus is the terminal state of a load request.
type LoadStatus int

const (
	LoadStatusPending   LoadStatus = 0
	LoadStatusRunning   LoadStatus = 1
	LoadStatusSucceeded LoadStatus = 2
	LoadStatusFailed    LoadStatus = 3
)

// String returns the string representation of LoadStatus.
func (s LoadStatus) String() string {
	switch s {
	case LoadStatusPending:
		return "pending"
	case LoadStatusRunning:
		return "running"
	case LoadStatusSucceeded:
		return "succeeded"
	case LoadStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LoadResult is the single outcome reported for one load request.
type LoadResult struct {
	LoadID        string        `json:"load_id"`
	Source        string        `json:"source"`
	Success       bool          `json:"success"`
	Message       string        `json:"message"`
	VariableCount int           `json:"variable_count"`
	ResolvedCount int           `json:"resolved_count"`
	TimePoints    int           `json:"time_points"`
	Duration      time.Duration `json:"duration"`
}

// Status maps the outcome to a LoadStatus.
func (r *LoadResult) Status() LoadStatus {
	if r == nil {
		return LoadStatusPending
	}
	if r.Success {
		return LoadStatusSucceeded
	}
	return LoadStatusFailed
}

// LoadRecord is the persisted history entry of a load request.
type LoadRecord struct {
	ID            int64      `json:"id"`
	LoadID        string     `json:"load_id"`
	Source        string     `json:"source"`
	Status        LoadStatus `json:"status"`
	Message       string     `json:"message"`
	VariableCount int        `json:"variable_count"`
	ResolvedCount int        `json:"resolved_count"`
	TimePoints    int        `json:"time_points"`
	DurationMs    int64      `json:"duration_ms"`
	CreatedAt     time.Time  `json:"created_at"`
}

// RecordFromResult converts a load outcome into a history entry.
func RecordFromResult(r *LoadResult, at time.Time) *LoadRecord {
	return &LoadRecord{
		LoadID:        r.LoadID,
		Source:        r.Source,
		Status:        r.Status(),
		Message:       r.Message,
		VariableCount: r.VariableCount,
		ResolvedCount: r.ResolvedCount,
		TimePoints:    r.TimePoints,
		DurationMs:    r.Duration.Milliseconds(),
		CreatedAt:     at,
	}
}
