package aggregator

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mubot/models"
)

type MockAggregatorService struct {
	mock.Mock
}

func (m *MockAggregatorService) GuessAge(ctx context.Context, name string) (*models.DisplayRecord, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DisplayRecord), args.Error(1)
}

func (m *MockAggregatorService) LookupCountry(ctx context.Context, name string) (*models.DisplayRecord, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DisplayRecord), args.Error(1)
}

func (m *MockAggregatorService) LookupBook(ctx context.Context, title string) (*models.DisplayRecord, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DisplayRecord), args.Error(1)
}

func (m *MockAggregatorService) LookupAuthor(ctx context.Context, name string) (*models.DisplayRecord, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DisplayRecord), args.Error(1)
}

func (m *MockAggregatorService) LookupSubject(
	ctx context.Context,
	name string,
) (*models.DisplayRecord, []*models.DisplayRecord, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.DisplayRecord), args.Get(1).([]*models.DisplayRecord), args.Error(2)
}

func (m *MockAggregatorService) LookupMovie(ctx context.Context, name string) (*models.DisplayRecord, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DisplayRecord), args.Error(1)
}

func (m *MockAggregatorService) FetchAPOD(ctx context.Context) (*models.DisplayRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DisplayRecord), args.Error(1)
}

func (m *MockAggregatorService) FetchNEOFeed(
	ctx context.Context,
) (*models.DisplayRecord, []*models.DisplayRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.DisplayRecord), args.Get(1).([]*models.DisplayRecord), args.Error(2)
}

func (m *MockAggregatorService) TakeScreenshot(ctx context.Context, pageURL string) (*models.DisplayRecord, error) {
	args := m.Called(ctx, pageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DisplayRecord), args.Error(1)
}
