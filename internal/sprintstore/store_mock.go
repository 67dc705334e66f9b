package sprintstore

import (
	"github.com/opendxi/opendxi/internal/contract"
	"github.com/opendxi/opendxi/schema"
	"github.com/stretchr/testify/mock"
)

// MockSprintStore is a mock implementation of SprintStore for testing.
type MockSprintStore struct {
	mock.Mock
}

var _ contract.SprintStore = &MockSprintStore{} // Compile-time check

// Get implements the SprintStore interface.
func (m *MockSprintStore) Get(key string) ([]byte, int, bool) {
	args := m.Called(key)
	payload, _ := args.Get(0).([]byte)
	return payload, args.Int(1), args.Bool(2)
}

// Save implements the SprintStore interface.
func (m *MockSprintStore) Save(window schema.SprintWindow, payload []byte, version int) {
	m.Called(window, payload, version)
}

// Delete implements the SprintStore interface.
func (m *MockSprintStore) Delete(key string) {
	m.Called(key)
}

// Stats implements the SprintStore interface.
func (m *MockSprintStore) Stats() (schema.StoreStats, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStats), args.Error(1)
}

// Close implements the SprintStore interface.
func (m *MockSprintStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
