// Package api sets up and starts the API
// server with routing, middleware, and Swagger documentation.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	_ "github.com/matt-dz/cookbox/docs"
	"github.com/matt-dz/cookbox/internal/api/middleware"
	"github.com/matt-dz/cookbox/internal/api/routes/ping"
	"github.com/matt-dz/cookbox/internal/api/routes/recipes"
	"github.com/matt-dz/cookbox/internal/env"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

func addDocs(r chi.Router) {
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))
}

func addRoutes(r chi.Router, env *env.Env) {
	h := recipes.NewHandler(env)

	r.Get("/", ping.HandlePing)
	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", h.ListRecipes)
		r.Post("/", h.CreateRecipe)
		r.Delete("/{recipeID}", h.DeleteRecipe)
		r.Patch("/{recipeID}/favorite", h.SetFavorite)
	})
	r.Get("/favorites", h.ListFavorites)
	r.Get(env.FileStore.URLPrefix()+"/*", env.FileStore.ServeFile)
	r.Handle("/metrics", promhttp.Handler())
}

// NewRouter returns the handler serving every route of the API.
func NewRouter(env *env.Env) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.AddRequestID)
	router.Use(middleware.LogRequest(env.Logger))
	router.Use(middleware.AddCors(env.Config.CORS.AllowedOrigins))
	router.Use(middleware.RecordMetrics)

	addRoutes(router, env)
	addDocs(router)
	return router
}

// Start godoc
//
//	@title			Cookbox API
//	@version		1.0
//	@description	API Server for the Cookbox recipe collection.
//
//	@BasePath		/
func Start(ctx context.Context, env *env.Env) error {
	addr := env.Config.Server.Addr()

	server := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(env),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		env.Logger.Info(fmt.Sprintf("Listening at %s", addr))
		env.Logger.Info(fmt.Sprintf("Swagger UI available at http://%s/swagger/index.html", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		env.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		<-errCh
		return nil
	}
}
