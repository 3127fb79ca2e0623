package provider

import (
	"github.com/stretchr/testify/mock"

	"github.com/keystored/attestation-appid/interfaces"
)

// MockProvider implements a mock interfaces.Provider for testing. The
// behavior is determined by how the mock is configured in tests.
type MockProvider struct {
	mock.Mock
}

// AppID implements the Provider interface for testing.
func (m *MockProvider) AppID(uid uint32) (*interfaces.KeyAttestationAppID, error) {
	args := m.Called(uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.KeyAttestationAppID), args.Error(1)
}

// Reset implements the Provider interface for testing.
func (m *MockProvider) Reset() {
	m.Called()
}
