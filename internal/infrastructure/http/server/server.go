// Package server provides the HTTP server and route configuration
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tasteai/v2/internal/application/user"
	"github.com/tasteai/v2/internal/infrastructure/config"
	"github.com/tasteai/v2/internal/infrastructure/http/handlers"
	"github.com/tasteai/v2/internal/infrastructure/http/middleware"
	"github.com/tasteai/v2/internal/infrastructure/security"
	"github.com/tasteai/v2/internal/ports/inbound"
	"github.com/tasteai/v2/pkg/healthcheck"
	"go.uber.org/zap"
)

// Server represents the HTTP server
type Server struct {
	config *config.Config
	logger *zap.Logger
	router *chi.Mux
	server *http.Server
	health *healthcheck.Checker
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	recipeService inbound.RecipeService,
	recommendService inbound.RecommendationService,
	userService *user.UserService,
	tokens *security.TokenService,
	health *healthcheck.Checker,
) *Server {
	s := &Server{
		config: cfg,
		logger: logger,
		health: health,
	}

	s.router = s.setupRouter(recipeService, recommendService, userService, tokens)

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}

	return s
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter(
	recipeService inbound.RecipeService,
	recommendService inbound.RecommendationService,
	userService *user.UserService,
	tokens *security.TokenService,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(chimiddleware.Compress(5))

	if s.config.Monitoring.EnableMetrics {
		metrics := middleware.NewMetrics()
		r.Use(metrics.Handler())
		r.Handle(s.config.Monitoring.MetricsPath, promhttp.Handler())
	}

	r.Get(s.config.Monitoring.HealthCheckPath, s.health.Handler())

	authHandlers := handlers.NewAuthHandlers(userService, s.logger)
	recipeHandlers := handlers.NewRecipeHandlers(recipeService, s.logger)
	recommendHandlers := handlers.NewRecommendHandlers(recommendService, s.logger)

	r.Route("/api/v2", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandlers.Register)
			r.Post("/login", authHandlers.Login)
			r.Post("/reset-password", authHandlers.ResetPassword)
			r.Post("/verify-otp", authHandlers.VerifyOTP)
			r.Post("/update-password", authHandlers.UpdatePassword)
		})

		r.Route("/recommendations", func(r chi.Router) {
			r.Post("/nutrients", recommendHandlers.RecommendByNutrients)
			r.Post("/palette", recommendHandlers.RecommendByPalette)
			r.Post("/palette/reset", recommendHandlers.ResetPaletteHistory)
		})

		// Recipe management requires authentication
		r.Route("/recipes", func(r chi.Router) {
			r.Use(middleware.Auth(tokens))
			r.Get("/", recipeHandlers.ListRecipes)
			r.Post("/", recipeHandlers.CreateRecipe)
			r.Get("/{id}", recipeHandlers.GetRecipe)
			r.Put("/{id}", recipeHandlers.UpdateRecipe)
			r.Delete("/{id}", recipeHandlers.DeleteRecipe)
		})
	})

	return r
}

// Start begins serving HTTP requests. Blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
