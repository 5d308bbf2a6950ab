// Package schema declares the request bodies accepted by the API.
//
// Each body is a Go struct whose json and jsonschema tags are the only place
// its shape is written down. NewRegistry reflects those structs into JSON
// Schema documents; the same documents are compiled to reject malformed
// requests and published by the API documentation.
package schema
