// Package mocks provides centralized mock implementations for testing.
//
// Two styles are available. The Mock* types use function fields with a
// working default implementation and call tracking. The TestifyMock* types
// embed testify's mock.Mock for expectation-based tests.
//
// Usage:
//
//	import "github.com/phrazzld/signup-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    provider := &mocks.MockIdentityProvider{
//	        CreateUserFn: func(ctx context.Context, email, password string) (*identity.UserIdentity, error) {
//	            return &identity.UserIdentity{UID: "u1", Email: email}, nil
//	        },
//	    }
//
//	    // Use the mock in your test...
//	}
//
// When adding a new mock to this package, create a file named after the
// interface being mocked and give the mock a function field per method.
package mocks
