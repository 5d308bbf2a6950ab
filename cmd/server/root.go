package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/phrazzld/signup-api/internal/apidocs"
	"github.com/phrazzld/signup-api/internal/config"
	"github.com/phrazzld/signup-api/internal/schema"
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var envFile string

// NewRootCmd creates the root command. Without a subcommand it serves the API.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup-api",
		Short: "Signup API - user registration backed by Firebase Authentication",
		Long: `signup-api exposes POST /api/newUser, validates the request body against
its published schema and creates the account in Firebase Authentication.`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file to read before the environment")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewOpenAPICmd())
	cmd.AddCommand(NewCheckConfigCmd())

	return cmd
}

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx)
}

// NewOpenAPICmd creates the openapi subcommand.
func NewOpenAPICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document to stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := apidocs.Build(schema.MustNewRegistry(), apiInfo())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}
}

// NewCheckConfigCmd creates the check-config subcommand.
func NewCheckConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Validate the configuration and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			cmd.Printf("configuration OK (port %d, project %s)\n", cfg.Server.Port, cfg.Firebase.ProjectID)
			return nil
		},
	}
}

// loadConfig loads the configuration. Invalid configuration is logged with
// the offending variables before the error is returned, and main exits with
// status 1.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadWithEnvFile(envFile)
	if err == nil {
		return cfg, nil
	}

	log := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), nil))

	var verr *config.ValidationError
	if errors.As(err, &verr) && len(verr.MissingEnv) > 0 {
		log.Error("invalid Firebase configuration, check environment variables",
			"missing", verr.MissingEnv)
	} else {
		log.Error("invalid configuration", "error", err)
	}

	return nil, err
}

func apiInfo() apidocs.Info {
	return apidocs.Info{
		Title:       "Signup API",
		Version:     version,
		Description: "User registration backed by Firebase Authentication.",
	}
}
