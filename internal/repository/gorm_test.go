package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "github.com/mat-analysis/pkg/errors"
	"github.com/mat-analysis/pkg/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func newRecord(loadID string, at time.Time, ok bool) *model.LoadRecord {
	return model.RecordFromResult(&model.LoadResult{
		LoadID:        loadID,
		Source:        "/runs/" + loadID + ".mat",
		Success:       ok,
		Message:       "loaded",
		VariableCount: 12,
		ResolvedCount: 10,
		TimePoints:    501,
		Duration:      1500 * time.Millisecond,
	}, at)
}

func TestGormHistoryRepository_SaveAndGet(t *testing.T) {
	repo := NewGormHistoryRepository(setupTestDB(t))
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("GetLoad_NotFound", func(t *testing.T) {
		record, err := repo.GetLoad(ctx, "missing")
		assert.Nil(t, record)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("SaveLoad_Success", func(t *testing.T) {
		record := newRecord("load-1", at, true)
		require.NoError(t, repo.SaveLoad(ctx, record))
		assert.NotZero(t, record.ID)

		got, err := repo.GetLoad(ctx, "load-1")
		require.NoError(t, err)
		assert.Equal(t, record.ID, got.ID)
		assert.Equal(t, model.LoadStatusSucceeded, got.Status)
		assert.Equal(t, 12, got.VariableCount)
		assert.Equal(t, 501, got.TimePoints)
		assert.Equal(t, int64(1500), got.DurationMs)
		assert.True(t, got.CreatedAt.Equal(at))
	})

	t.Run("SaveLoad_Nil", func(t *testing.T) {
		assert.Error(t, repo.SaveLoad(ctx, nil))
	})

	t.Run("SaveLoad_DuplicateLoadID", func(t *testing.T) {
		err := repo.SaveLoad(ctx, newRecord("load-1", at, true))
		require.Error(t, err)
		assert.True(t, apperrors.IsDatabaseError(err))
	})
}

func TestGormHistoryRepository_ListLoads(t *testing.T) {
	repo := NewGormHistoryRepository(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("ListLoads_Empty", func(t *testing.T) {
		records, err := repo.ListLoads(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.SaveLoad(ctx, newRecord(id, base.Add(time.Duration(i)*time.Minute), i != 1)))
	}

	t.Run("ListLoads_NewestFirst", func(t *testing.T) {
		records, err := repo.ListLoads(ctx, 2)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "c", records[0].LoadID)
		assert.Equal(t, "b", records[1].LoadID)
		assert.Equal(t, model.LoadStatusFailed, records[1].Status)
	})

	t.Run("ListLoads_DefaultLimit", func(t *testing.T) {
		records, err := repo.ListLoads(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, records, 3)
	})
}

func newMockRepo(t *testing.T) (*GormHistoryRepository, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewGormHistoryRepository(db), mock
}

func TestGormHistoryRepository_Postgres(t *testing.T) {
	t.Run("SaveLoad_Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "load_history"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
		mock.ExpectCommit()

		record := newRecord("pg-1", time.Now(), true)
		require.NoError(t, repo.SaveLoad(context.Background(), record))
		assert.Equal(t, int64(42), record.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SaveLoad_Error", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "load_history"`)).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := repo.SaveLoad(context.Background(), newRecord("pg-2", time.Now(), false))
		require.Error(t, err)
		assert.True(t, apperrors.IsDatabaseError(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListLoads", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		rows := sqlmock.NewRows([]string{
			"id", "load_id", "source", "status", "message",
			"variable_count", "resolved_count", "time_points", "duration_ms", "created_at",
		}).AddRow(int64(7), "pg-3", "/runs/x.mat", model.LoadStatusSucceeded, "ok", 3, 3, 10, int64(5), time.Now())
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "load_history" ORDER BY created_at DESC,id DESC`)).
			WillReturnRows(rows)

		records, err := repo.ListLoads(context.Background(), 5)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "pg-3", records[0].LoadID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetLoad_Error", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "load_history" WHERE load_id = $1`)).
			WillReturnError(errors.New("timeout"))

		_, err := repo.GetLoad(context.Background(), "pg-4")
		require.Error(t, err)
		assert.True(t, apperrors.IsDatabaseError(err))
		assert.False(t, apperrors.IsNotFound(err))
	})
}
