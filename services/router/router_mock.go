package router

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mubot/models"
)

type MockRouterService struct {
	mock.Mock
}

func (m *MockRouterService) Register(spec *models.CommandSpec) error {
	args := m.Called(spec)
	return args.Error(0)
}

func (m *MockRouterService) Commands() []*models.CommandSpec {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*models.CommandSpec)
}

func (m *MockRouterService) HandleMessage(ctx context.Context, ev models.MessageEvent) {
	m.Called(ctx, ev)
}
