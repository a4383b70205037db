// Package httpapi serves the library over a read-only JSON HTTP API.
//
// The viewer is taken from the X-Horizon-User header, which is expected to be
// set by an authenticating proxy in front of the server. Requests without it
// are anonymous.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/horizon/internal/core/domain"
	"github.com/custodia-labs/horizon/internal/core/ports/driving"
	"github.com/custodia-labs/horizon/internal/logger"
)

// ViewerHeader carries the authenticated user id.
const ViewerHeader = "X-Horizon-User"

// ErrMissingLibraryService is returned when the library service is not provided.
var ErrMissingLibraryService = errors.New("httpapi: library service is required")

// Server is the HTTP API server for Horizon.
type Server struct {
	router  chi.Router
	library driving.LibraryService
	catalog driving.CatalogService
	limiter *rate.Limiter
}

// NewServer creates and configures the HTTP server. catalog may be nil, in
// which case facet values are used as raw term ids.
func NewServer(
	library driving.LibraryService, catalog driving.CatalogService, settings domain.ServerSettings,
) (*Server, error) {
	if library == nil {
		return nil, ErrMissingLibraryService
	}
	defaults := domain.DefaultAppSettings().Server
	if settings.RateLimit <= 0 {
		settings.RateLimit = defaults.RateLimit
	}
	if settings.RateBurst <= 0 {
		settings.RateBurst = defaults.RateBurst
	}

	s := &Server{
		library: library,
		catalog: catalog,
		limiter: rate.NewLimiter(rate.Limit(settings.RateLimit), settings.RateBurst),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(RateLimit(s.limiter))

		r.Get("/api/catalog", s.handleCatalog)
		r.Get("/api/library", s.handleLibrary)
		r.Get("/api/entities/{kind}/{id}", s.handleEntity)
		r.Get("/api/entities/{kind}/{id}/neighbors", s.handleNeighbors)
	})

	s.router = r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("HTTP API listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
}
