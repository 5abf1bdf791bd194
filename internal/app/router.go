package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/coursedash/backend/internal/auth"
	"github.com/coursedash/backend/internal/config"
	"github.com/coursedash/backend/internal/handlers"
	"github.com/coursedash/backend/internal/middleware"
	"github.com/coursedash/backend/internal/models"
	"github.com/coursedash/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// requestsPerMinute is the per-IP request budget across the whole API
const requestsPerMinute = 100

// NewRouter wires services and handlers over the opened stores and returns the API router
func NewRouter(cfg *config.Config, stores *Stores, logger *zap.Logger) http.Handler {
	// Initialize JWT token generator
	tokenGenerator := auth.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize services
	quizService := services.NewQuizService(stores.Quizzes, logger)
	videoService := services.NewVideoService(stores.Metadata, stores.Videos, logger)
	authService := services.NewAuthService(cfg.Admin.Username, cfg.Admin.PasswordHash, tokenGenerator, logger)

	// Initialize middleware
	adminMw := middleware.RoleMiddleware(tokenGenerator, models.RoleAdmin)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger, tokenGenerator.AccessTokenExpiry())
	quizHandler := handlers.NewQuizHandler(quizService, logger, adminMw)
	videoHandler := handlers.NewVideoHandler(videoService, logger, adminMw)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(requestsPerMinute, time.Minute))
	r.Use(middleware.BodyLimitMiddleware(cfg.Server.MaxUploadSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r)
		quizHandler.RegisterRoutes(r)
		videoHandler.RegisterRoutes(r)
	})

	return r
}
