package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mat-analysis/pkg/model"
)

// MockHistoryRepository is a mock implementation of repository.HistoryRepository.
type MockHistoryRepository struct {
	mock.Mock
}

// SaveLoad mocks the SaveLoad method.
func (m *MockHistoryRepository) SaveLoad(ctx context.Context, record *model.LoadRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// ListLoads mocks the ListLoads method.
func (m *MockHistoryRepository) ListLoads(ctx context.Context, limit int) ([]*model.LoadRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.LoadRecord), args.Error(1)
}

// GetLoad mocks the GetLoad method.
func (m *MockHistoryRepository) GetLoad(ctx context.Context, loadID string) (*model.LoadRecord, error) {
	args := m.Called(ctx, loadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LoadRecord), args.Error(1)
}

// ExpectSaveLoad sets up an expectation for SaveLoad.
func (m *MockHistoryRepository) ExpectSaveLoad(err error) *mock.Call {
	return m.On("SaveLoad", mock.Anything, mock.Anything).Return(err)
}

// ExpectListLoads sets up an expectation for ListLoads.
func (m *MockHistoryRepository) ExpectListLoads(limit int, records []*model.LoadRecord, err error) *mock.Call {
	return m.On("ListLoads", mock.Anything, limit).Return(records, err)
}
