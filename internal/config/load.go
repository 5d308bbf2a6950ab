package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultEnvFile is the dotenv file read by Load when present.
const DefaultEnvFile = ".env"

// envBindings maps configuration keys to the environment variables that feed them.
// The variable names match the ones used by the Firebase web console snippets.
var envBindings = map[string]string{
	"server.port":                  "BACKEND_PORT",
	"server.log_level":             "LOG_LEVEL",
	"firebase.api_key":             "FIREBASE_API_KEY",
	"firebase.auth_domain":         "FIREBASE_AUTH_DOMAIN",
	"firebase.project_id":          "FIREBASE_PROJECT_ID",
	"firebase.storage_bucket":      "FIREBASE_STORAGE_BUCKET",
	"firebase.messaging_sender_id": "FIREBASE_MESSAGING_SENDER_ID",
	"firebase.app_id":              "FIREBASE_APP_ID",
	"identity.emulator_host":       "FIREBASE_AUTH_EMULATOR_HOST",
	"identity.request_timeout":     "IDENTITY_REQUEST_TIMEOUT",
	"cors.allowed_origins":         "CORS_ALLOWED_ORIGINS",
}

// Load configuration from environment variables, seeded from a .env file in
// the working directory if one exists. Variables already set in the process
// environment take precedence over the file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadWithEnvFile(DefaultEnvFile)
}

// LoadWithEnvFile is Load with an explicit dotenv path. An empty path or a
// missing file is not an error.
func LoadWithEnvFile(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
		}
	}

	v := viper.New()

	v.SetDefault("server.port", 3000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("identity.request_timeout", 15*time.Second)
	v.SetDefault("cors.allowed_origins", []string{"127.0.0.1", "localhost"})

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal: %v", ErrInvalidConfiguration, err)
	}

	cfg.Server.LogLevel = strings.ToLower(strings.TrimSpace(cfg.Server.LogLevel))
	cfg.CORS.AllowedOrigins = normalizeOrigins(cfg.CORS.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ValidationError lists the configuration fields that failed validation.
// It matches ErrInvalidConfiguration with errors.Is.
type ValidationError struct {
	// Fields holds "Namespace (tag)" entries, e.g. "Config.Firebase.APIKey (required)".
	Fields []string

	// MissingEnv names the Firebase environment variables that are unset or blank.
	MissingEnv []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: validation failed: %s", ErrInvalidConfiguration, strings.Join(e.Fields, ", "))
}

// Unwrap returns ErrInvalidConfiguration.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// Validate checks every field against its struct tags.
// Tag failures are reported as *ValidationError.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return fmt.Errorf("failed to register validator: %w", err)
	}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return &ValidationError{
				Fields:     fields,
				MissingEnv: c.Firebase.MissingFirebaseVars(),
			}
		}
		return fmt.Errorf("%w: validation failed: %v", ErrInvalidConfiguration, err)
	}

	return nil
}

// MissingFirebaseVars returns the names of the Firebase environment variables
// that are unset or blank, in a stable order.
func (c FirebaseConfig) MissingFirebaseVars() []string {
	fields := []struct {
		value string
		env   string
	}{
		{c.APIKey, envBindings["firebase.api_key"]},
		{c.AuthDomain, envBindings["firebase.auth_domain"]},
		{c.ProjectID, envBindings["firebase.project_id"]},
		{c.StorageBucket, envBindings["firebase.storage_bucket"]},
		{c.MessagingSenderID, envBindings["firebase.messaging_sender_id"]},
		{c.AppID, envBindings["firebase.app_id"]},
	}

	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.env)
		}
	}
	return missing
}

// normalizeOrigins trims whitespace and trailing slashes and drops empty entries.
func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		// A single comma-separated env value arrives as one element.
		for _, part := range strings.Split(o, ",") {
			part = strings.TrimRight(strings.TrimSpace(part), "/")
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
