package api

import (
	"net/http"

	"github.com/phrazzld/signup-api/internal/identity"
)

// Client-facing messages for user creation failures.
const (
	MsgUserCreated        = "Usuario creado exitosamente"
	MsgServerMisconfig    = "Error de configuración del servidor. Por favor contacte al administrador."
	MsgEmailAlreadyInUse  = "El correo electrónico ya está en uso"
	MsgInvalidEmail       = "El correo electrónico no es válido"
	MsgWeakPassword       = "La contraseña es demasiado débil"
	MsgUserCreationFailed = "Error al crear usuario"
	MsgInvalidRequest     = "Datos inválidos"
)

type errorMapping struct {
	code    string
	status  int
	message string
}

// errorMappings is checked in order; codes not listed fall back to
// 400 with MsgUserCreationFailed.
var errorMappings = []errorMapping{
	{identity.CodeAPIKeyNotValid, http.StatusInternalServerError, MsgServerMisconfig},
	{identity.CodeEmailAlreadyInUse, http.StatusConflict, MsgEmailAlreadyInUse},
	{identity.CodeInvalidEmail, http.StatusBadRequest, MsgInvalidEmail},
	{identity.CodeWeakPassword, http.StatusBadRequest, MsgWeakPassword},
}

// Translate maps a provider error code to an HTTP status and a safe,
// localized message. It is total: every code, including the empty string,
// resolves to a response.
func Translate(code string) (int, string) {
	for _, m := range errorMappings {
		if m.code == code {
			return m.status, m.message
		}
	}
	return http.StatusBadRequest, MsgUserCreationFailed
}

// TranslateProviderError maps an error from the user service to an HTTP
// status, a message and the provider code to report in errorCode. Errors
// that carry no *identity.ProviderError report identity.CodeInternalError.
func TranslateProviderError(err error) (int, string, string) {
	code := identity.CodeInternalError
	if perr, ok := identity.AsProviderError(err); ok && perr.Code != "" {
		code = perr.Code
	}

	status, message := Translate(code)
	return status, message, code
}
