package service

import "errors"

// Sentinel errors returned by service constructors and operations.
// Callers check for them with errors.Is.
var (
	// ErrNilProvider is returned when a service is built without an identity provider.
	ErrNilProvider = errors.New("identity provider cannot be nil")

	// ErrEmptyProviderResult indicates the provider reported success without a user.
	// It is not a provider error, so the API layer answers it as auth/internal-error.
	ErrEmptyProviderResult = errors.New("identity provider returned no user")
)
