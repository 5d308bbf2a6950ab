package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/phrazzld/signup-api/internal/apidocs"
	"github.com/phrazzld/signup-api/internal/config"
	"github.com/phrazzld/signup-api/internal/identity"
	"github.com/phrazzld/signup-api/internal/metrics"
	"github.com/phrazzld/signup-api/internal/platform/firebase"
	"github.com/phrazzld/signup-api/internal/platform/logger"
	"github.com/phrazzld/signup-api/internal/schema"
	"github.com/phrazzld/signup-api/internal/service"
)

// application holds all the shared application dependencies.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	provider    identity.Provider
	userService service.UserService
	registry    *schema.Registry
	metrics     *metrics.Metrics
	apiDoc      *apidocs.Document
}

// newApplication wires the application against the Firebase provider.
func newApplication(cfg *config.Config) (*application, error) {
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	provider := firebase.NewClient(cfg.Firebase, cfg.Identity, l)
	if cfg.Identity.EmulatorHost != "" {
		l.Warn("using the Firebase Auth emulator", "endpoint", provider.Endpoint())
	}

	return newApplicationWithProvider(cfg, l, provider)
}

// newApplicationWithProvider wires the application around an arbitrary
// identity provider.
func newApplicationWithProvider(
	cfg *config.Config,
	l *slog.Logger,
	provider identity.Provider,
) (*application, error) {
	if l == nil {
		l = slog.Default()
	}

	userService, err := service.NewUserService(provider, l)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	registry, err := schema.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to build schema registry: %w", err)
	}

	doc, err := apidocs.Build(registry, apiInfo())
	if err != nil {
		return nil, fmt.Errorf("failed to build API documentation: %w", err)
	}

	l.Info("Firebase configuration valid", "firebase_project", cfg.Firebase.ProjectID)

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"firebase_project", cfg.Firebase.ProjectID,
		"cors_origins", cfg.CORS.AllowedOrigins)

	return &application{
		config:      cfg,
		logger:      l,
		provider:    provider,
		userService: userService,
		registry:    registry,
		metrics:     metrics.New(),
		apiDoc:      doc,
	}, nil
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router, err := app.setupRouter()
	if err != nil {
		return fmt.Errorf("failed to set up router: %w", err)
	}

	addr := net.JoinHostPort("", strconv.Itoa(app.config.Server.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	if err := app.startHTTPServer(ctx, ln, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup runs after the HTTP server has stopped.
func (app *application) cleanup() {
	app.logger.Info("Application shutdown completed")
}
