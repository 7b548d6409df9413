// Package api provides the HTTP API server and handlers for Shelf Wrapped.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/listenupapp/shelfwrapped/internal/http/response"
	"github.com/listenupapp/shelfwrapped/internal/service"
	"github.com/listenupapp/shelfwrapped/internal/store"
)

// Version is reported in the OpenAPI document.
const Version = "1.0.0"

// Options tunes the HTTP surface.
type Options struct {
	AllowedOrigins []string

	// RecapRatePerMinute limits recap requests per client IP; 0 disables the limit.
	RecapRatePerMinute int
	RecapBurst         int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	wrapped     *service.WrappedService
	genreStore  *store.Store
	recapCache  *store.RecapCache
	recapLimits *RateLimiter
	router      *chi.Mux
	api         huma.API
	logger      *slog.Logger
	startedAt   time.Time
}

// NewServer creates a new HTTP server with all routes configured.
// genreStore and recapCache are only used for health reporting and may be nil.
func NewServer(wrapped *service.WrappedService, genreStore *store.Store, recapCache *store.RecapCache, opts Options, logger *slog.Logger) *Server {
	s := &Server{
		wrapped:    wrapped,
		genreStore: genreStore,
		recapCache: recapCache,
		router:     chi.NewRouter(),
		logger:     logger,
		startedAt:  time.Now(),
	}
	if opts.RecapRatePerMinute > 0 {
		burst := opts.RecapBurst
		if burst < 1 {
			burst = 1
		}
		s.recapLimits = NewRateLimiter(opts.RecapRatePerMinute, time.Minute, burst)
	}

	s.setupMiddleware(opts.AllowedOrigins)

	humaConfig := huma.DefaultConfig("Shelf Wrapped API", Version)
	humaConfig.Info.Description = "Yearly reading recaps built from public reading-tracker shelves."
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mainly for OpenAPI generation.
func (s *Server) API() huma.API {
	return s.api
}

// Close releases background resources held by the server.
func (s *Server) Close() {
	if s.recapLimits != nil {
		s.recapLimits.Stop()
	}
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware(origins []string) {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "route not found", s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.MethodNotAllowed(w, "method not allowed", s.logger)
	})
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerWrappedRoutes()
}

// clientKey is the rate limit key for a request.
func clientKey(ctx huma.Context) string {
	return getClientIP(ctx.Header("X-Forwarded-For"), ctx.Header("X-Real-IP"), ctx.RemoteAddr())
}
