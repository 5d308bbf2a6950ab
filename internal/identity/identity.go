// Package identity defines the boundary between the API and the external
// identity provider. Everything the application knows about user accounts
// flows through the Provider interface.
package identity

import (
	"context"
	"errors"
	"fmt"
)

// Provider error codes surfaced by the identity provider. The set is open:
// callers must handle codes not listed here.
const (
	CodeAPIKeyNotValid       = "auth/api-key-not-valid"
	CodeEmailAlreadyInUse    = "auth/email-already-in-use"
	CodeInvalidEmail         = "auth/invalid-email"
	CodeWeakPassword         = "auth/weak-password"
	CodeMissingPassword      = "auth/missing-password"
	CodeOperationNotAllowed  = "auth/operation-not-allowed"
	CodeTooManyRequests      = "auth/too-many-requests"
	CodeNetworkRequestFailed = "auth/network-request-failed"
	CodeInternalError        = "auth/internal-error"
)

// UserIdentity is the account record returned by the provider after creation.
type UserIdentity struct {
	UID   string
	Email string
}

// Provider is the single seam to the identity service.
type Provider interface {
	// CreateUser registers a new account with email/password credentials.
	// Failures are reported as *ProviderError.
	CreateUser(ctx context.Context, email, password string) (*UserIdentity, error)
}

// ProviderError is an opaque error reported by the identity provider.
type ProviderError struct {
	Code    string
	Message string

	// Err is the underlying transport or decoding error, if any.
	Err error
}

// NewProviderError creates a ProviderError with the given code and message.
func NewProviderError(code, message string) *ProviderError {
	return &ProviderError{Code: code, Message: message}
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("identity provider error (%s)", e.Code)
	}
	return fmt.Sprintf("identity provider error (%s): %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// AsProviderError extracts a *ProviderError from an error chain.
func AsProviderError(err error) (*ProviderError, bool) {
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}
