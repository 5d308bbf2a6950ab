// Package api handles incoming HTTP requests: request validation against the
// schema registry, calls into the user service, and response formatting.
// Provider failures are turned into HTTP responses by the translator in
// errors.go, which never leaks provider detail beyond the error code.
package api
