package schema

import (
	"fmt"
	"sort"
	"strings"

	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

// bodyField names the request body itself in field errors.
const bodyField = "body"

// FieldError describes one failing field of a request body.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError is returned when a request body does not match its schema.
type ValidationError struct {
	Schema string
	Fields []FieldError
	cause  error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return fmt.Sprintf("%s request validation failed: %s", e.Schema, strings.Join(parts, "; "))
}

// Unwrap returns the underlying parse or validation error.
func (e *ValidationError) Unwrap() error {
	return e.cause
}

// HasField reports whether field is among the failing fields.
func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

func newBodyError(schemaName, reason string) *ValidationError {
	return &ValidationError{
		Schema: schemaName,
		Fields: []FieldError{{Field: bodyField, Reason: reason}},
	}
}

// fromSchemaError flattens the validator's error tree into field errors.
func fromSchemaError(schemaName string, verr *jschema.ValidationError) *ValidationError {
	var fields []FieldError
	collectLeaves(verr, &fields)

	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })

	if len(fields) == 0 {
		fields = []FieldError{{Field: bodyField, Reason: "invalid"}}
	}

	return &ValidationError{Schema: schemaName, Fields: fields, cause: verr}
}

func collectLeaves(verr *jschema.ValidationError, out *[]FieldError) {
	if len(verr.Causes) > 0 {
		for _, c := range verr.Causes {
			collectLeaves(c, out)
		}
		return
	}

	location := strings.Join(verr.InstanceLocation, "/")

	switch k := verr.ErrorKind.(type) {
	case *kind.Required:
		for _, missing := range k.Missing {
			*out = append(*out, FieldError{Field: joinField(location, missing), Reason: "required"})
		}
	case *kind.Format:
		*out = append(*out, FieldError{Field: fieldOrBody(location), Reason: "invalid " + k.Want + " format"})
	case *kind.MinLength:
		*out = append(*out, FieldError{
			Field:  fieldOrBody(location),
			Reason: fmt.Sprintf("must be at least %d characters", k.Want),
		})
	case *kind.Type:
		*out = append(*out, FieldError{
			Field:  fieldOrBody(location),
			Reason: "must be " + strings.Join(k.Want, " or "),
		})
	default:
		reason := "invalid"
		if path := verr.ErrorKind.KeywordPath(); len(path) > 0 {
			reason = "failed " + path[len(path)-1]
		}
		*out = append(*out, FieldError{Field: fieldOrBody(location), Reason: reason})
	}
}

func joinField(location, name string) string {
	if location == "" {
		return name
	}
	return location + "/" + name
}

func fieldOrBody(location string) string {
	if location == "" {
		return bodyField
	}
	return location
}
