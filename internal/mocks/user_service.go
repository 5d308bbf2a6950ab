package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/signup-api/internal/identity"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	// Custom behavior functions
	CreateUserFn func(ctx context.Context, email, password string) (*identity.UserIdentity, error)

	// Default response values
	User *identity.UserIdentity
	Err  error

	// Call tracking for verification
	CreateUserCalls struct {
		mu        sync.Mutex
		Count     int
		Emails    []string
		Passwords []string
		Contexts  []context.Context
	}
}

// CreateUser implements the service.UserService interface
func (m *MockUserService) CreateUser(
	ctx context.Context,
	email, password string,
) (*identity.UserIdentity, error) {
	m.CreateUserCalls.mu.Lock()
	m.CreateUserCalls.Count++
	m.CreateUserCalls.Emails = append(m.CreateUserCalls.Emails, email)
	m.CreateUserCalls.Passwords = append(m.CreateUserCalls.Passwords, password)
	m.CreateUserCalls.Contexts = append(m.CreateUserCalls.Contexts, ctx)
	m.CreateUserCalls.mu.Unlock()

	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, email, password)
	}

	return m.User, m.Err
}

// CallCount returns how many times CreateUser was called.
func (m *MockUserService) CallCount() int {
	m.CreateUserCalls.mu.Lock()
	defer m.CreateUserCalls.mu.Unlock()
	return m.CreateUserCalls.Count
}
