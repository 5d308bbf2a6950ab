package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/invopop/jsonschema"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// MaxBodyBytes bounds the request bodies accepted by Decode.
const MaxBodyBytes = 1 << 20

// ErrUnknownSchema is returned when a schema name is not registered.
var ErrUnknownSchema = errors.New("unknown schema")

// Registry holds the reflected and compiled form of every request schema.
// It is read-only after construction and safe for concurrent use.
type Registry struct {
	names     []string
	reflected map[string]*jsonschema.Schema
	compiled  map[string]*jschema.Schema
}

// NewRegistry reflects every request type into a JSON Schema and compiles it
// for validation. The reflected schema is what the documentation publishes and
// the compiled schema is what rejects requests, so the two cannot drift.
func NewRegistry() (*Registry, error) {
	reg := &Registry{
		reflected: make(map[string]*jsonschema.Schema, len(definitions)),
		compiled:  make(map[string]*jschema.Schema, len(definitions)),
	}

	reflector := jsonschema.Reflector{
		DoNotReference:            true,
		Anonymous:                 true,
		AllowAdditionalProperties: true,
	}

	compiler := jschema.NewCompiler()
	compiler.AssertFormat()

	for _, def := range definitions {
		s := reflector.Reflect(def.Type)
		s.Title = def.Title
		s.Description = def.Description

		raw, err := json.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal schema %s: %w", def.Name, err)
		}

		doc, err := jschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to parse schema %s: %w", def.Name, err)
		}

		url := def.Name + ".json"
		if err := compiler.AddResource(url, doc); err != nil {
			return nil, fmt.Errorf("failed to add schema resource %s: %w", def.Name, err)
		}

		sch, err := compiler.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", def.Name, err)
		}

		reg.names = append(reg.names, def.Name)
		reg.reflected[def.Name] = s
		reg.compiled[def.Name] = sch
	}

	return reg, nil
}

// MustNewRegistry is NewRegistry that panics on error. The definitions are
// static, so a failure here is a programming error.
func MustNewRegistry() *Registry {
	reg, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return reg
}

// Names returns the registered schema names in documentation order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Schema returns the reflected JSON Schema for name.
func (r *Registry) Schema(name string) (*jsonschema.Schema, error) {
	s, ok := r.reflected[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}
	return s, nil
}

// Validate checks a raw JSON body against the named schema.
// It returns nil, a *ValidationError, or ErrUnknownSchema.
func (r *Registry) Validate(name string, body []byte) error {
	sch, ok := r.compiled[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return newBodyError(name, "request body is required")
	}

	doc, err := jschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return &ValidationError{
			Schema: name,
			Fields: []FieldError{{Field: bodyField, Reason: "malformed JSON"}},
			cause:  err,
		}
	}

	if err := sch.Validate(doc); err != nil {
		var verr *jschema.ValidationError
		if errors.As(err, &verr) {
			return fromSchemaError(name, verr)
		}
		return &ValidationError{
			Schema: name,
			Fields: []FieldError{{Field: bodyField, Reason: "invalid"}},
			cause:  err,
		}
	}

	return nil
}

// Decode reads the request body, validates it against the named schema and
// unmarshals it into v. Bodies failing validation never reach v.
func (r *Registry) Decode(name string, req *http.Request, v any) error {
	if req.Body == nil {
		return newBodyError(name, "request body is required")
	}

	body, err := io.ReadAll(io.LimitReader(req.Body, MaxBodyBytes+1))
	if err != nil {
		return &ValidationError{
			Schema: name,
			Fields: []FieldError{{Field: bodyField, Reason: "unreadable"}},
			cause:  err,
		}
	}
	if len(body) > MaxBodyBytes {
		return newBodyError(name, "request body too large")
	}

	if err := r.Validate(name, body); err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return &ValidationError{
			Schema: name,
			Fields: []FieldError{{Field: bodyField, Reason: "does not match the expected shape"}},
			cause:  err,
		}
	}

	return nil
}
