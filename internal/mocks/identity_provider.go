package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/signup-api/internal/identity"
)

// MockIdentityProvider implements identity.Provider for testing.
// Without CreateUserFn it behaves like an in-memory provider: emails are
// unique and each new account gets a random UID.
type MockIdentityProvider struct {
	// Function fields for customizable behavior
	CreateUserFn func(ctx context.Context, email, password string) (*identity.UserIdentity, error)

	// Data for default implementation
	Users       map[string]*identity.UserIdentity
	CreateError error

	// Call tracking for verification
	CreateUserCalls struct {
		mu     sync.Mutex
		Count  int
		Emails []string
	}

	mu sync.Mutex
}

// NewMockIdentityProvider creates a new mock provider with initialized defaults
func NewMockIdentityProvider() *MockIdentityProvider {
	return &MockIdentityProvider{
		Users: make(map[string]*identity.UserIdentity),
	}
}

// CreateUser implements the identity.Provider interface
func (m *MockIdentityProvider) CreateUser(
	ctx context.Context,
	email, password string,
) (*identity.UserIdentity, error) {
	m.CreateUserCalls.mu.Lock()
	m.CreateUserCalls.Count++
	m.CreateUserCalls.Emails = append(m.CreateUserCalls.Emails, email)
	m.CreateUserCalls.mu.Unlock()

	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, email, password)
	}

	if m.CreateError != nil {
		return nil, m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Users == nil {
		m.Users = make(map[string]*identity.UserIdentity)
	}

	key := strings.ToLower(email)
	if _, exists := m.Users[key]; exists {
		return nil, identity.NewProviderError(identity.CodeEmailAlreadyInUse, "EMAIL_EXISTS")
	}

	user := &identity.UserIdentity{UID: uuid.NewString(), Email: email}
	m.Users[key] = user
	return user, nil
}

// CallCount returns how many times CreateUser was called.
func (m *MockIdentityProvider) CallCount() int {
	m.CreateUserCalls.mu.Lock()
	defer m.CreateUserCalls.mu.Unlock()
	return m.CreateUserCalls.Count
}
