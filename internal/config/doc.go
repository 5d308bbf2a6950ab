// Package config handles configuration loading, parsing, and validation
// from the process environment (optionally seeded from a .env file). It
// provides type-safe access to the identity provider credentials and server
// settings, and decides whether the process is allowed to start at all.
package config
