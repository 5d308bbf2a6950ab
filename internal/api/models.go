package api

import "github.com/phrazzld/signup-api/internal/api/shared"

// CreateUserResponse is the 201 body of POST /api/newUser.
type CreateUserResponse struct {
	Success bool   `json:"success" jsonschema:"description=Always true"`
	Message string `json:"message" jsonschema:"description=Confirmation message"`
	UserID  string `json:"userId" jsonschema:"description=Identifier assigned by the identity provider"`
}

// ErrorResponse is the failure body of every endpoint.
type ErrorResponse = shared.ErrorResponse
