package mocks

import (
	"context"

	"github.com/phrazzld/signup-api/internal/identity"
	"github.com/stretchr/testify/mock"
)

// TestifyMockIdentityProvider is a mock of identity.Provider for use with testify/mock
type TestifyMockIdentityProvider struct {
	mock.Mock
}

// CreateUser is a mock implementation of identity.Provider.CreateUser
func (m *TestifyMockIdentityProvider) CreateUser(
	ctx context.Context,
	email, password string,
) (*identity.UserIdentity, error) {
	args := m.Called(ctx, email, password)
	if user, ok := args.Get(0).(*identity.UserIdentity); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}
