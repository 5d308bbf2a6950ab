package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/signup-api/internal/api"
	apiMiddleware "github.com/phrazzld/signup-api/internal/api/middleware"
	"github.com/phrazzld/signup-api/internal/apidocs"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(app.metrics.Middleware)
	r.Use(apiMiddleware.NewCORSMiddleware(app.config.CORS.AllowedOrigins, app.metrics.RecordCORSReject))

	userHandler := api.NewUserHandler(app.userService, app.registry, app.metrics, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", userHandler.Root)
		r.Get("/home", userHandler.Home)
		r.Post("/newUser", userHandler.CreateUser)
	})

	docHandler, err := apidocs.JSONHandler(app.apiDoc)
	if err != nil {
		return nil, fmt.Errorf("failed to create documentation handler: %w", err)
	}
	r.Get("/swagger", apidocs.UIHandler(app.apiDoc.Info.Title, "/swagger/json").ServeHTTP)
	r.Method(http.MethodGet, "/swagger/json", docHandler)

	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r, nil
}
