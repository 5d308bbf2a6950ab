package firebase

import (
	"strings"

	"github.com/phrazzld/signup-api/internal/identity"
)

// serverErrorCodes maps Identity Toolkit error messages to the client-facing
// provider codes used by the Firebase SDKs.
var serverErrorCodes = map[string]string{
	"EMAIL_EXISTS":                identity.CodeEmailAlreadyInUse,
	"INVALID_EMAIL":               identity.CodeInvalidEmail,
	"MISSING_EMAIL":               "auth/missing-email",
	"WEAK_PASSWORD":               identity.CodeWeakPassword,
	"MISSING_PASSWORD":            identity.CodeMissingPassword,
	"OPERATION_NOT_ALLOWED":       identity.CodeOperationNotAllowed,
	"PASSWORD_LOGIN_DISABLED":     identity.CodeOperationNotAllowed,
	"TOO_MANY_ATTEMPTS_TRY_LATER": identity.CodeTooManyRequests,
	"ADMIN_ONLY_OPERATION":        "auth/admin-restricted-operation",
	"INVALID_API_KEY":             identity.CodeAPIKeyNotValid,
	"API_KEY_INVALID":             identity.CodeAPIKeyNotValid,
	"API_KEY_EXPIRED":             identity.CodeAPIKeyNotValid,
	"PROJECT_NOT_FOUND":           identity.CodeAPIKeyNotValid,
}

// MapServerError converts a server error message (and optional ErrorInfo
// reasons) to a provider code. Messages may carry detail after " : ", as in
// "WEAK_PASSWORD : Password should be at least 6 characters". Unknown
// messages map to identity.CodeInternalError.
func MapServerError(message string, reasons ...string) string {
	for _, reason := range reasons {
		if code, ok := serverErrorCodes[reason]; ok {
			return code
		}
	}

	key := strings.TrimSpace(message)
	if i := strings.Index(key, " : "); i >= 0 {
		key = strings.TrimSpace(key[:i])
	}

	if code, ok := serverErrorCodes[key]; ok {
		return code
	}

	// Google's API front end answers a bad key with prose rather than a code.
	if strings.HasPrefix(message, "API key not valid") {
		return identity.CodeAPIKeyNotValid
	}

	return identity.CodeInternalError
}
