package delivery

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mubot/models"
)

type MockDeliveryService struct {
	mock.Mock
}

func (m *MockDeliveryService) Deliver(ctx context.Context, ev models.MessageEvent, reply *models.Reply) error {
	args := m.Called(ctx, ev, reply)
	return args.Error(0)
}
