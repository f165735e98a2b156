package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ZiggyLiu/clinical-study-visual/internal/config"
	"github.com/ZiggyLiu/clinical-study-visual/internal/trials"
	"github.com/ZiggyLiu/clinical-study-visual/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(trialsService *trials.Service, config *config.Config, logger *logger.Logger) *Router {
	return &Router{
		handler:    NewHandler(trialsService, config, logger),
		middleware: NewMiddleware(logger),
		config:     config,
		logger:     logger.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	// API routes
	router.Route("/api/v1", func(router chi.Router) {
		if r.config.Server.RateLimitPerSecond > 0 {
			router.Use(r.middleware.RateLimit(r.config.Server.RateLimitPerSecond, r.config.Server.RateLimitBurst))
		}

		// Trial routes
		router.Get("/trials", r.handler.GetTrials)
		router.Get("/trials/summary", r.handler.GetTrialsSummary)
		router.Get("/trials/export", r.handler.ExportTrials)

		// Health check
		router.Get("/health", r.handler.GetHealth)

		// Configuration
		router.Get("/config", r.handler.GetConfig)
	})

	// Serve static files from the configured directory
	staticHandler := NewStaticFileHandler(r.config.Server.StaticFilesDir, r.logger)
	router.Handle("/*", staticHandler)

	return router
}
