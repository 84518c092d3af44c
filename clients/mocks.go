package clients

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mubot/models"
)

// MockGatewayClient is a mock implementation of GatewayClient
type MockGatewayClient struct {
	mock.Mock
}

func (m *MockGatewayClient) SendChannelMessage(
	ctx context.Context,
	channelID, content string,
	payload *models.ReplyPayload,
) error {
	args := m.Called(ctx, channelID, content, payload)
	return args.Error(0)
}

func (m *MockGatewayClient) SendDirectMessage(
	ctx context.Context,
	userID, content string,
	payload *models.ReplyPayload,
) error {
	args := m.Called(ctx, userID, content, payload)
	return args.Error(0)
}

// MockHTTPDoer is a mock implementation of HTTPDoer
type MockHTTPDoer struct {
	mock.Mock
}

func (m *MockHTTPDoer) GetJSON(ctx context.Context, url string) (any, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0), args.Error(1)
}
