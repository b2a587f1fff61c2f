package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"go-url-admin/types"
)

// MockStorage is a mock Storage interface
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Create(ctx context.Context, originalURL string) (types.ShortenedURL, error) {
	args := m.Called(ctx, originalURL)
	return args.Get(0).(types.ShortenedURL), args.Error(1)
}

func (m *MockStorage) List(ctx context.Context, skip, take int) ([]types.ShortenedURL, error) {
	args := m.Called(ctx, skip, take)
	urls, _ := args.Get(0).([]types.ShortenedURL)
	return urls, args.Error(1)
}

func (m *MockStorage) Update(ctx context.Context, req types.UpdateRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockStorage) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
