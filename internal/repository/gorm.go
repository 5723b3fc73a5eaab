package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/mat-analysis/pkg/errors"
	"github.com/mat-analysis/pkg/model"
)

// DefaultListLimit caps ListLoads when no positive limit is given.
const DefaultListLimit = 20

// GormHistoryRepository implements HistoryRepository using GORM.
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GormHistoryRepository.
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// SaveLoad inserts a history row.
func (r *GormHistoryRepository) SaveLoad(ctx context.Context, record *model.LoadRecord) error {
	if record == nil {
		return apperrors.New(apperrors.CodeInvalidInput, "nil load record")
	}

	row := historyFromModel(record)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return apperrors.Wrapf(apperrors.CodeDatabaseError, err, "failed to save load %s", record.LoadID)
	}
	record.ID = row.ID
	return nil
}

// ListLoads returns the newest records first.
func (r *GormHistoryRepository) ListLoads(ctx context.Context, limit int) ([]*model.LoadRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var rows []LoadHistory
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDatabaseError, "failed to list loads", err)
	}

	records := make([]*model.LoadRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].ToModel()
	}
	return records, nil
}

// GetLoad retrieves a record by load ID.
func (r *GormHistoryRepository) GetLoad(ctx context.Context, loadID string) (*model.LoadRecord, error) {
	var row LoadHistory
	err := r.db.WithContext(ctx).Where("load_id = ?", loadID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "load not found: "+loadID)
		}
		return nil, apperrors.Wrap(apperrors.CodeDatabaseError, "failed to get load", err)
	}
	return row.ToModel(), nil
}

var _ HistoryRepository = (*GormHistoryRepository)(nil)

