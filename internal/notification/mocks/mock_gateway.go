package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lattesdocs/internal/notification"
)

type MockGateway struct {
	mock.Mock
}

var _ notification.Gateway = (*MockGateway)(nil)

func (m *MockGateway) Send(ctx context.Context, msg notification.Message) error {
	return m.Called(ctx, msg).Error(0)
}
