package api

import (
	"context"

	"github.com/dogfinder/dogfinder/internal/domain"
	"github.com/dogfinder/dogfinder/internal/query"
	"github.com/stretchr/testify/mock"
)

// MockService is a mock implementation of Service for testing.
// It uses testify/mock to configure return values and track calls.
//
// Example usage:
//
//	svc := new(MockService)
//	svc.On("Breeds", mock.Anything).Return([]string{"Akita", "Beagle"}, nil)
//
//	breeds, err := svc.Breeds(ctx)
//	svc.AssertNumberOfCalls(t, "Breeds", 1)
type MockService struct {
	mock.Mock
}

// Login returns a mocked login error.
func (m *MockService) Login(ctx context.Context, creds domain.Credentials) error {
	args := m.Called(ctx, creds)
	return args.Error(0)
}

// Logout returns a mocked logout error.
func (m *MockService) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Breeds returns mocked breed names.
func (m *MockService) Breeds(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Dogs returns mocked dog records. Configure with either a []domain.Dog or a
// func([]string) []domain.Dog to derive records from the requested ids.
func (m *MockService) Dogs(ctx context.Context, ids []string) ([]domain.Dog, error) {
	args := m.Called(ctx, ids)
	switch v := args.Get(0).(type) {
	case nil:
		return nil, args.Error(1)
	case func([]string) []domain.Dog:
		return v(ids), args.Error(1)
	default:
		return v.([]domain.Dog), args.Error(1)
	}
}

// Search returns a mocked search page.
func (m *MockService) Search(ctx context.Context, req query.RequestDescriptor) (domain.SearchResultPage, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.SearchResultPage), args.Error(1)
}

// Follow returns a mocked continuation page.
func (m *MockService) Follow(ctx context.Context, cursor domain.Cursor) (domain.SearchResultPage, error) {
	args := m.Called(ctx, cursor)
	return args.Get(0).(domain.SearchResultPage), args.Error(1)
}

// Match returns a mocked match id.
func (m *MockService) Match(ctx context.Context, ids []string) (string, error) {
	args := m.Called(ctx, ids)
	return args.String(0), args.Error(1)
}

// SearchLocations returns a mocked location response.
func (m *MockService) SearchLocations(ctx context.Context, params domain.LocationSearchParams) (domain.LocationSearchResponse, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(domain.LocationSearchResponse), args.Error(1)
}

var _ Service = (*MockService)(nil)
