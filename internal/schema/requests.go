package schema

// Names of the registered request schemas.
const (
	CreateUser    = "CreateUser"
	Login         = "Login"
	ResetPassword = "ResetPassword"
)

// MinPasswordLength mirrors the identity provider's own minimum. The provider
// remains the authority on password strength.
const MinPasswordLength = 6

// CreateUserRequest is the body of POST /api/newUser.
type CreateUserRequest struct {
	Email    string `json:"email"    jsonschema:"format=email,description=Email address of the new account,example=user@example.com"`
	Password string `json:"password" jsonschema:"minLength=6,description=Plain-text password (at least 6 characters),example=Secret123"`
}

// LoginRequest is the body of a login call.
type LoginRequest struct {
	Email    string `json:"email"    jsonschema:"format=email,description=Email address of the account,example=user@example.com"`
	Password string `json:"password" jsonschema:"minLength=1,description=Account password"`
}

// ResetPasswordRequest is the body of a password reset call.
type ResetPasswordRequest struct {
	Email string `json:"email" jsonschema:"format=email,description=Email address that receives the reset link,example=user@example.com"`
}

// Definition ties a schema name to the Go type it is reflected from.
type Definition struct {
	Name        string
	Title       string
	Description string
	Type        any
}

// definitions is the canonical list, in documentation order.
var definitions = []Definition{
	{
		Name:        CreateUser,
		Title:       "CreateUserRequest",
		Description: "Credentials for a new email/password account",
		Type:        &CreateUserRequest{},
	},
	{
		Name:        Login,
		Title:       "LoginRequest",
		Description: "Credentials for an existing account",
		Type:        &LoginRequest{},
	},
	{
		Name:        ResetPassword,
		Title:       "ResetPasswordRequest",
		Description: "Account whose password should be reset",
		Type:        &ResetPasswordRequest{},
	},
}
