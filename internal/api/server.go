// Package api provides the HTTP API server and handlers for the Lorekeep application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lorekeep/lorekeep-server/internal/ratelimit"
)

// Version is reported by the health endpoint and the OpenAPI document.
const Version = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	services     *Services
	router       *chi.Mux
	api          huma.API
	logger       *slog.Logger
	writeLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(services *Services, logger *slog.Logger) *Server {
	s := &Server{
		services:     services,
		router:       chi.NewRouter(),
		logger:       logger,
		writeLimiter: ratelimit.New(5, 10),
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Lorekeep API", Version)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerCategoryRoutes()
	s.registerItemRoutes()
	s.registerSearchRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-held resources.
func (s *Server) Close() {
	s.writeLimiter.Stop()
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	s.router.Use(s.limitWrites)
}

// limitWrites applies the per-client token bucket to mutating requests.
func (s *Server) limitWrites(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
			if !s.writeLimiter.Allow(r.RemoteAddr) {
				s.logger.Warn("rate limit exceeded", "remote", r.RemoteAddr, "path", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"code":"RATE_LIMITED","message":"Too many requests"}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
