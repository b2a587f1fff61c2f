package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"go-url-admin/services"
	"go-url-admin/types"
)

// MockURLService is a mock URLService interface
type MockURLService struct {
	mock.Mock
}

func (m *MockURLService) ShortenURL(ctx context.Context, input string) (types.Outcome, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(types.Outcome), args.Error(1)
}

func (m *MockURLService) LoadURLs(ctx context.Context) (types.Table, error) {
	args := m.Called(ctx)
	return args.Get(0).(types.Table), args.Error(1)
}

func (m *MockURLService) DeleteURL(ctx context.Context, id int64, confirmer services.Confirmer) (types.Outcome, error) {
	args := m.Called(ctx, id, confirmer)
	return args.Get(0).(types.Outcome), args.Error(1)
}

func (m *MockURLService) UpdateURL(ctx context.Context, session *types.EditSession, input string) (types.Outcome, error) {
	args := m.Called(ctx, session, input)
	return args.Get(0).(types.Outcome), args.Error(1)
}

func (m *MockURLService) Busy() map[string]bool {
	args := m.Called()
	busy, _ := args.Get(0).(map[string]bool)
	return busy
}
