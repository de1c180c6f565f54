package search

import (
	"github.com/dogfinder/dogfinder/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockProvider is a mock implementation of Provider for testing.
type MockProvider struct {
	mock.Mock
}

// Match provides a mock function with given fields: dog, query.
func (_m *MockProvider) Match(dog domain.Dog, query string) bool {
	ret := _m.Called(dog, query)
	if rf, ok := ret.Get(0).(func(domain.Dog, string) bool); ok {
		return rf(dog, query)
	}
	return ret.Bool(0)
}

// MatchString provides a mock function with given fields: text, query.
func (_m *MockProvider) MatchString(text, query string) bool {
	ret := _m.Called(text, query)
	if rf, ok := ret.Get(0).(func(string, string) bool); ok {
		return rf(text, query)
	}
	return ret.Bool(0)
}

// Name provides a mock function with given fields: .
func (_m *MockProvider) Name() string {
	ret := _m.Called()
	return ret.String(0)
}

var _ Provider = (*MockProvider)(nil)
