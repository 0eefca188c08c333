package service

import (
	"LinkRewards-Backend/internal/domain"
	"LinkRewards-Backend/internal/repository"
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock implementation of repository.Storage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateLink(ctx context.Context, link *domain.Link) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockStorage) GetLinkByShortCode(ctx context.Context, shortCode string) (*domain.Link, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

func (m *MockStorage) GetLinkByTargetURL(ctx context.Context, targetURL string) (*domain.Link, error) {
	args := m.Called(ctx, targetURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

func (m *MockStorage) IncrementTotalClicks(ctx context.Context, linkID int64) error {
	args := m.Called(ctx, linkID)
	return args.Error(0)
}

func (m *MockStorage) AddLinkReward(ctx context.Context, linkID int64, amountCents int64) error {
	args := m.Called(ctx, linkID, amountCents)
	return args.Error(0)
}

func (m *MockStorage) CreateClick(ctx context.Context, click *domain.Click) error {
	args := m.Called(ctx, click)
	return args.Error(0)
}

func (m *MockStorage) GetClick(ctx context.Context, clickID int64) (*domain.Click, error) {
	args := m.Called(ctx, clickID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Click), args.Error(1)
}

func (m *MockStorage) MarkClickInvalid(ctx context.Context, clickID int64) error {
	args := m.Called(ctx, clickID)
	return args.Error(0)
}

func (m *MockStorage) RewardClick(ctx context.Context, clickID int64, amountCents int64) (bool, error) {
	args := m.Called(ctx, clickID, amountCents)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) CountLinks(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) ListLinks(ctx context.Context, offset, limit int) ([]*domain.Link, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Link), args.Error(1)
}

func (m *MockStorage) MonthlyEarnings(ctx context.Context, linkIDs []int64) ([]repository.MonthlyEarning, error) {
	args := m.Called(ctx, linkIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MonthlyEarning), args.Error(1)
}
