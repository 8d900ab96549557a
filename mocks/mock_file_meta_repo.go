package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"setflow/internal/domain"
)

// MockFileMetaRepo is a mock implementation of port.FileMetaRepository.
type MockFileMetaRepo struct {
	mock.Mock
}

func (m *MockFileMetaRepo) Create(ctx context.Context, meta *domain.FileMeta) error {
	args := m.Called(ctx, meta)
	return args.Error(0)
}

func (m *MockFileMetaRepo) GetByID(ctx context.Context, orgID, fileID uuid.UUID) (*domain.FileMeta, error) {
	args := m.Called(ctx, orgID, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FileMeta), args.Error(1)
}

func (m *MockFileMetaRepo) ListByCallSheet(ctx context.Context, orgID, callSheetID uuid.UUID) ([]domain.FileMeta, error) {
	args := m.Called(ctx, orgID, callSheetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FileMeta), args.Error(1)
}

func (m *MockFileMetaRepo) UpdateStatus(ctx context.Context, orgID, fileID uuid.UUID, status domain.FileStatus) error {
	args := m.Called(ctx, orgID, fileID, status)
	return args.Error(0)
}

func (m *MockFileMetaRepo) Delete(ctx context.Context, orgID, fileID uuid.UUID) error {
	args := m.Called(ctx, orgID, fileID)
	return args.Error(0)
}
