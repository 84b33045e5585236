package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lattesdocs/internal/model"
	"lattesdocs/internal/repository"
	"lattesdocs/internal/service"
)

type MockRequestService struct {
	mock.Mock
}

var _ service.RequestService = (*MockRequestService)(nil)

func (m *MockRequestService) Create(ctx context.Context, in service.CreateRequestInput) (*model.Request, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Request), args.Error(1)
}

func (m *MockRequestService) Lookup(ctx context.Context, publicID, email string) (*model.Request, error) {
	args := m.Called(ctx, publicID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Request), args.Error(1)
}

func (m *MockRequestService) Get(ctx context.Context, publicID string) (*model.Request, error) {
	args := m.Called(ctx, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Request), args.Error(1)
}

func (m *MockRequestService) AddDocument(ctx context.Context, publicID string, in service.UploadInput) (*model.Document, error) {
	args := m.Called(ctx, publicID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockRequestService) ListDocuments(ctx context.Context, requestID string, order repository.SortOrder) ([]model.Document, error) {
	args := m.Called(ctx, requestID, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockRequestService) AdvanceStatus(ctx context.Context, publicID string, next model.Status) (*model.Request, error) {
	args := m.Called(ctx, publicID, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Request), args.Error(1)
}

func (m *MockRequestService) Delete(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}
