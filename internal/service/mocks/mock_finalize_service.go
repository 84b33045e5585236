package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lattesdocs/internal/service"
)

type MockFinalizeService struct {
	mock.Mock
}

var _ service.FinalizeService = (*MockFinalizeService)(nil)

func (m *MockFinalizeService) Finalize(ctx context.Context, publicID string) (*service.FinalizeResult, error) {
	args := m.Called(ctx, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FinalizeResult), args.Error(1)
}
