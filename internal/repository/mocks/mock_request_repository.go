package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"lattesdocs/internal/model"
	"lattesdocs/internal/repository"
)

type MockRequestRepository struct {
	mock.Mock
}

var _ repository.RequestRepository = (*MockRequestRepository)(nil)

func (m *MockRequestRepository) Create(ctx context.Context, req *model.Request) (*model.Request, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Request), args.Error(1)
}

func (m *MockRequestRepository) ExistsPublicID(ctx context.Context, publicID string) (bool, error) {
	args := m.Called(ctx, publicID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRequestRepository) FindByPublicID(ctx context.Context, publicID string) (*model.Request, error) {
	args := m.Called(ctx, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Request), args.Error(1)
}

func (m *MockRequestRepository) FindByPublicIDAndEmail(ctx context.Context, publicID, email string) (*model.Request, error) {
	args := m.Called(ctx, publicID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Request), args.Error(1)
}

func (m *MockRequestRepository) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockRequestRepository) MarkFinalized(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockRequestRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
