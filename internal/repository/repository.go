// Package repository persists load history.
package repository

import (
	"context"

	"github.com/mat-analysis/pkg/model"
)

// HistoryRepository stores one record per load request.
type HistoryRepository interface {
	// SaveLoad inserts a record and sets its ID.
	SaveLoad(ctx context.Context, record *model.LoadRecord) error

	// ListLoads returns the most recent records, newest first.
	ListLoads(ctx context.Context, limit int) ([]*model.LoadRecord, error)

	// GetLoad retrieves a record by its load ID.
	GetLoad(ctx context.Context, loadID string) (*model.LoadRecord, error)
}
