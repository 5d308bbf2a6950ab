package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/phrazzld/signup-api/internal/identity"
	"github.com/phrazzld/signup-api/internal/mocks"
	"github.com/phrazzld/signup-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestNewUserService(t *testing.T) {
	t.Parallel()

	t.Run("nil provider", func(t *testing.T) {
		t.Parallel()
		svc, err := service.NewUserService(nil, testLogger())
		assert.Nil(t, svc)
		assert.ErrorIs(t, err, service.ErrNilProvider)
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		t.Parallel()
		svc, err := service.NewUserService(mocks.NewMockIdentityProvider(), nil)
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestUserService_CreateUser(t *testing.T) {
	t.Parallel()

	t.Run("passes credentials through unchanged", func(t *testing.T) {
		t.Parallel()

		provider := new(mocks.TestifyMockIdentityProvider)
		want := &identity.UserIdentity{UID: "u1", Email: " A@b.com "}
		provider.On("CreateUser", mock.Anything, " A@b.com ", "p@ss word").Return(want, nil).Once()

		svc, err := service.NewUserService(provider, testLogger())
		require.NoError(t, err)

		got, err := svc.CreateUser(context.Background(), " A@b.com ", "p@ss word")
		require.NoError(t, err)
		assert.Same(t, want, got)
		provider.AssertExpectations(t)
	})

	t.Run("forwards the caller context", func(t *testing.T) {
		t.Parallel()

		type ctxKey struct{}
		ctx := context.WithValue(context.Background(), ctxKey{}, "marker")

		provider := &mocks.MockIdentityProvider{
			CreateUserFn: func(got context.Context, email, password string) (*identity.UserIdentity, error) {
				assert.Equal(t, "marker", got.Value(ctxKey{}))
				return &identity.UserIdentity{UID: "u1", Email: email}, nil
			},
		}

		svc, err := service.NewUserService(provider, testLogger())
		require.NoError(t, err)

		_, err = svc.CreateUser(ctx, "a@b.com", "Secret123")
		require.NoError(t, err)
		assert.Equal(t, 1, provider.CallCount())
	})

	t.Run("provider error keeps its code", func(t *testing.T) {
		t.Parallel()

		provider := new(mocks.TestifyMockIdentityProvider)
		provider.On("CreateUser", mock.Anything, "a@b.com", "Secret123").
			Return(nil, identity.NewProviderError(identity.CodeEmailAlreadyInUse, "EMAIL_EXISTS"))

		svc, err := service.NewUserService(provider, testLogger())
		require.NoError(t, err)

		got, err := svc.CreateUser(context.Background(), "a@b.com", "Secret123")
		assert.Nil(t, got)

		perr, ok := identity.AsProviderError(err)
		require.True(t, ok)
		assert.Equal(t, identity.CodeEmailAlreadyInUse, perr.Code)
	})

	t.Run("non-provider error is wrapped", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		provider := &mocks.MockIdentityProvider{CreateError: boom}

		svc, err := service.NewUserService(provider, testLogger())
		require.NoError(t, err)

		_, err = svc.CreateUser(context.Background(), "a@b.com", "Secret123")
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "failed to create user")
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		provider := &mocks.MockIdentityProvider{
			CreateUserFn: func(ctx context.Context, email, password string) (*identity.UserIdentity, error) {
				return nil, ctx.Err()
			},
		}

		svc, err := service.NewUserService(provider, testLogger())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = svc.CreateUser(ctx, "a@b.com", "Secret123")
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("success without user", func(t *testing.T) {
		t.Parallel()

		provider := &mocks.MockIdentityProvider{
			CreateUserFn: func(ctx context.Context, email, password string) (*identity.UserIdentity, error) {
				return nil, nil
			},
		}

		svc, err := service.NewUserService(provider, testLogger())
		require.NoError(t, err)

		_, err = svc.CreateUser(context.Background(), "a@b.com", "Secret123")
		assert.ErrorIs(t, err, service.ErrEmptyProviderResult)
	})
}
