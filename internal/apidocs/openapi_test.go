package apidocs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/signup-api/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDoc(t *testing.T) map[string]interface{} {
	t.Helper()

	doc, err := Build(schema.MustNewRegistry(), Info{Title: "Signup API", Version: "test"})
	require.NoError(t, err)

	h, err := JSONHandler(doc)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/json", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func dig(t *testing.T, v interface{}, keys ...string) interface{} {
	t.Helper()
	for _, k := range keys {
		m, ok := v.(map[string]interface{})
		require.True(t, ok, "expected object at %q", k)
		v, ok = m[k]
		require.True(t, ok, "missing key %q", k)
	}
	return v
}

func TestBuild_Header(t *testing.T) {
	t.Parallel()

	doc := buildDoc(t)
	assert.Equal(t, OpenAPIVersion, doc["openapi"])
	assert.Equal(t, "Signup API", dig(t, doc, "info", "title"))
}

func TestBuild_RegistersEveryRequestSchema(t *testing.T) {
	t.Parallel()

	doc := buildDoc(t)
	schemas := dig(t, doc, "components", "schemas").(map[string]interface{})

	for _, name := range []string{schema.CreateUser, schema.Login, schema.ResetPassword,
		CreateUserResponseSchema, ErrorResponseSchema} {
		assert.Contains(t, schemas, name)
	}
}

func TestBuild_NewUserOperation(t *testing.T) {
	t.Parallel()

	doc := buildDoc(t)
	op := dig(t, doc, "paths", "/api/newUser", "post")

	assert.Equal(t, "#/components/schemas/CreateUser",
		dig(t, op, "requestBody", "content", "application/json", "schema", "$ref"))

	responses := dig(t, op, "responses").(map[string]interface{})
	for _, code := range []string{"201", "400", "409", "500"} {
		assert.Contains(t, responses, code)
	}
	assert.Equal(t, "#/components/schemas/CreateUserResponse",
		dig(t, responses, "201", "content", "application/json", "schema", "$ref"))
}

// The documented request contract is the one the validator enforces.
func TestBuild_RequestSchemaMatchesValidator(t *testing.T) {
	t.Parallel()

	doc := buildDoc(t)
	createUser := dig(t, doc, "components", "schemas", schema.CreateUser)

	assert.ElementsMatch(t, []interface{}{"email", "password"}, dig(t, createUser, "required"))
	assert.Equal(t, "email", dig(t, createUser, "properties", "email", "format"))
	assert.EqualValues(t, schema.MinPasswordLength, dig(t, createUser, "properties", "password", "minLength"))
}

func TestBuild_ResponseSchemas(t *testing.T) {
	t.Parallel()

	doc := buildDoc(t)

	created := dig(t, doc, "components", "schemas", CreateUserResponseSchema, "properties").(map[string]interface{})
	assert.Contains(t, created, "success")
	assert.Contains(t, created, "message")
	assert.Contains(t, created, "userId")

	failure := dig(t, doc, "components", "schemas", ErrorResponseSchema)
	assert.ElementsMatch(t, []interface{}{"success", "message"}, dig(t, failure, "required"))
	assert.Contains(t, dig(t, failure, "properties"), "errorCode")
}

func TestUIHandler(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	UIHandler("Signup API", "/swagger/json").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "/swagger/json")
	assert.Contains(t, w.Body.String(), "<title>Signup API</title>")
}
