package config

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidConfiguration is returned when a required setting is missing or
// malformed. The server must not start when it sees this error.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Firebase FirebaseConfig `mapstructure:"firebase" validate:"required"`
	Identity IdentityConfig `mapstructure:"identity" validate:"required"`
	CORS     CORSConfig     `mapstructure:"cors"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// FirebaseConfig holds the credentials of the Firebase project that owns the
// user accounts. All six values come from the Firebase console.
type FirebaseConfig struct {
	APIKey            string `mapstructure:"api_key"             validate:"required,notblank"`
	AuthDomain        string `mapstructure:"auth_domain"         validate:"required,notblank"`
	ProjectID         string `mapstructure:"project_id"          validate:"required,notblank"`
	StorageBucket     string `mapstructure:"storage_bucket"      validate:"required,notblank"`
	MessagingSenderID string `mapstructure:"messaging_sender_id" validate:"required,notblank"`
	AppID             string `mapstructure:"app_id"              validate:"required,notblank"`
}

// Valid reports whether every credential is present and non-empty.
func (c FirebaseConfig) Valid() bool {
	for _, v := range []string{
		c.APIKey,
		c.AuthDomain,
		c.ProjectID,
		c.StorageBucket,
		c.MessagingSenderID,
		c.AppID,
	} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// IdentityConfig tunes the HTTP client used to talk to the identity provider.
type IdentityConfig struct {
	// EmulatorHost points the client at a local Auth emulator (host:port).
	// Empty means the production endpoint.
	EmulatorHost   string        `mapstructure:"emulator_host"   validate:"omitempty,hostname_port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"required,min=1,dive,required"`
}
