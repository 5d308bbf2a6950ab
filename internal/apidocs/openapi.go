// Package apidocs builds the OpenAPI document of the signup API and serves it
// together with a Swagger UI page. Request schemas come straight from the
// schema registry, so the published contract is the one the server enforces.
package apidocs

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/invopop/jsonschema"
	"github.com/phrazzld/signup-api/internal/api"
	"github.com/phrazzld/signup-api/internal/schema"
)

// OpenAPIVersion is the OpenAPI revision the document conforms to. 3.1 uses
// JSON Schema 2020-12, the dialect the registry reflects.
const OpenAPIVersion = "3.1.0"

// Component names of the response schemas.
const (
	CreateUserResponseSchema = "CreateUserResponse"
	ErrorResponseSchema      = "ErrorResponse"
)

// Info describes the API in the document header.
type Info struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// Document is the subset of the OpenAPI object model this API needs.
type Document struct {
	OpenAPI    string              `json:"openapi"`
	Info       Info                `json:"info"`
	Paths      map[string]PathItem `json:"paths"`
	Components Components          `json:"components"`
}

// PathItem holds the operations of one path.
type PathItem struct {
	Get  *Operation `json:"get,omitempty"`
	Post *Operation `json:"post,omitempty"`
}

// Operation describes a single API operation.
type Operation struct {
	OperationID string              `json:"operationId"`
	Summary     string              `json:"summary,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses"`
}

// RequestBody describes an operation's request payload.
type RequestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]MediaType `json:"content"`
}

// Response describes a single response.
type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

// MediaType binds a schema to a content type.
type MediaType struct {
	Schema *jsonschema.Schema `json:"schema"`
}

// Components holds the reusable schemas.
type Components struct {
	Schemas map[string]*jsonschema.Schema `json:"schemas"`
}

func ref(name string) *jsonschema.Schema {
	return &jsonschema.Schema{Ref: "#/components/schemas/" + name}
}

func jsonContent(name string) map[string]MediaType {
	return map[string]MediaType{"application/json": {Schema: ref(name)}}
}

func textContent() map[string]MediaType {
	return map[string]MediaType{"text/plain": {Schema: &jsonschema.Schema{Type: "string"}}}
}

// Build assembles the OpenAPI document from the registry's reflected request
// schemas and the API response types.
func Build(reg *schema.Registry, info Info) (*Document, error) {
	components := make(map[string]*jsonschema.Schema)

	for _, name := range reg.Names() {
		s, err := reg.Schema(name)
		if err != nil {
			return nil, fmt.Errorf("failed to load schema %s: %w", name, err)
		}
		components[name] = s
	}

	reflector := jsonschema.Reflector{DoNotReference: true, Anonymous: true}
	components[CreateUserResponseSchema] = reflector.Reflect(&api.CreateUserResponse{})
	components[ErrorResponseSchema] = reflector.Reflect(&api.ErrorResponse{})

	errorResponse := func(description string) Response {
		return Response{Description: description, Content: jsonContent(ErrorResponseSchema)}
	}

	doc := &Document{
		OpenAPI: OpenAPIVersion,
		Info:    info,
		Paths: map[string]PathItem{
			"/api/newUser": {
				Post: &Operation{
					OperationID: "createUser",
					Summary:     "Register a new user with email and password",
					Tags:        []string{"users"},
					RequestBody: &RequestBody{
						Required: true,
						Content:  jsonContent(schema.CreateUser),
					},
					Responses: map[string]Response{
						"201": {Description: "User created", Content: jsonContent(CreateUserResponseSchema)},
						"400": errorResponse("Invalid request body or rejected credentials"),
						"409": errorResponse("Email already in use"),
						"500": errorResponse("Server misconfiguration"),
					},
				},
			},
			"/api/": {
				Get: &Operation{
					OperationID: "root",
					Tags:        []string{"placeholder"},
					Responses:   map[string]Response{"200": {Description: "Greeting", Content: textContent()}},
				},
			},
			"/api/home": {
				Get: &Operation{
					OperationID: "home",
					Tags:        []string{"placeholder"},
					Responses:   map[string]Response{"200": {Description: "Greeting", Content: textContent()}},
				},
			},
			"/health": {
				Get: &Operation{
					OperationID: "health",
					Tags:        []string{"operations"},
					Responses:   map[string]Response{"200": {Description: "Service is up", Content: textContent()}},
				},
			},
		},
		Components: Components{Schemas: components},
	}

	return doc, nil
}

// JSONHandler serves the document as JSON. The document is encoded once.
func JSONHandler(doc *Document) (http.Handler, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode OpenAPI document: %w", err)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(raw)
	}), nil
}
