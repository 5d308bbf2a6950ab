package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/signup-api/internal/identity"
)

// UserService provides user account operations backed by the identity provider.
type UserService interface {
	// CreateUser registers a new account with the given email and password.
	// Provider errors are returned wrapped, so identity.AsProviderError still
	// recovers the provider code.
	CreateUser(ctx context.Context, email, password string) (*identity.UserIdentity, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	provider identity.Provider
	logger   *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if provider is nil.
func NewUserService(provider identity.Provider, logger *slog.Logger) (UserService, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserServiceImpl{
		provider: provider,
		logger:   logger.With("component", "user_service"),
	}, nil
}

// CreateUser forwards the credentials to the identity provider unchanged.
func (s *UserServiceImpl) CreateUser(
	ctx context.Context,
	email, password string,
) (*identity.UserIdentity, error) {
	user, err := s.provider.CreateUser(ctx, email, password)
	if err != nil {
		if perr, ok := identity.AsProviderError(err); ok {
			s.logger.DebugContext(ctx, "identity provider rejected user creation",
				"code", perr.Code)
		} else if errors.Is(err, context.Canceled) {
			s.logger.DebugContext(ctx, "user creation cancelled")
		} else {
			s.logger.ErrorContext(ctx, "failed to create user",
				"error", err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if user == nil {
		return nil, fmt.Errorf("failed to create user: %w", ErrEmptyProviderResult)
	}

	s.logger.InfoContext(ctx, "user created successfully",
		"user_id", user.UID)

	return user, nil
}
