// Package api serves the bookstore over HTTP: server-rendered HTML pages
// for people and a JSON API under /api/v1 for programs.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bookstoreapp/bookstore-server/internal/ratelimit"
	"github.com/bookstoreapp/bookstore-server/internal/sse"
	"github.com/bookstoreapp/bookstore-server/internal/store"
)

// Options tunes the HTTP surface.
type Options struct {
	// CORSOrigins lists origins allowed to call /api. Empty allows any.
	CORSOrigins []string
	// WriteRateLimit is the number of write requests per minute allowed
	// from one client. Zero disables limiting.
	WriteRateLimit int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	catalog      store.Catalog
	services     *Services
	sseManager   *sse.Manager
	sseHandler   *sse.Handler
	pages        *Pages
	router       *chi.Mux
	api          huma.API
	logger       *slog.Logger
	writeLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(catalog store.Catalog, services *Services, sseManager *sse.Manager, pages *Pages, opts Options, logger *slog.Logger) *Server {
	s := &Server{
		catalog:    catalog,
		services:   services,
		sseManager: sseManager,
		sseHandler: sse.NewHandler(sseManager, logger),
		pages:      pages,
		router:     chi.NewRouter(),
		logger:     logger,
	}
	if opts.WriteRateLimit > 0 {
		s.writeLimiter = ratelimit.PerMinute(opts.WriteRateLimit)
	}

	s.setupMiddleware()
	s.setupRoutes(opts)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Shutdown releases background resources held by the server.
func (s *Server) Shutdown() error {
	if s.writeLimiter != nil {
		s.writeLimiter.Stop()
	}
	return nil
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestID)
	s.router.Use(s.accessLog)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.limitWrites)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes(opts Options) {
	s.registerPageRoutes()

	s.router.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
			ExposedHeaders: []string{RequestIDHeader},
			MaxAge:         300,
		}))

		humaConfig := huma.DefaultConfig("Bookstore API", "1.0.0")
		humaConfig.Info.Description = "Catalog of books and magazines, grouped by author."
		humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
		s.api = humachi.New(r, humaConfig)

		r.Get("/api/v1/events", s.sseHandler.ServeHTTP)
	})
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerBookRoutes()
	s.registerMagazineRoutes()
	s.registerAggregateRoutes()
	s.registerSearchRoutes()
}
