// Package service contains the application use cases. Services sit between the
// HTTP handlers in internal/api and the identity provider in internal/identity.
//
// Services receive their dependencies through constructor injection and never
// depend on a concrete provider implementation, so handlers and tests can swap
// in the mocks from internal/mocks.
//
// Error handling:
//   - Constructors and operations return the sentinel errors in errors.go for
//     expected conditions.
//   - Provider failures are wrapped with %w so callers can still reach the
//     *identity.ProviderError with identity.AsProviderError.
//   - The API layer maps provider codes to HTTP status codes.
package service
