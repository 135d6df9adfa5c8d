// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "classifieds/docs" // swagger docs
	"classifieds/internal/auth"
	"classifieds/internal/config"
	"classifieds/internal/database"
	"classifieds/internal/middleware"
	"classifieds/internal/observability"
	"classifieds/internal/repository"
	"classifieds/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config          *config.Config
	db              *gorm.DB
	app             *fiber.App
	promMiddleware  *fiberprometheus.FiberPrometheus
	tokens          *auth.Manager
	userRepo        repository.UserRepository
	adRepo          repository.AdRepository
	favoriteRepo    repository.FavoriteRepository
	authService     *service.AuthService
	adService       *service.AdService
	favoriteService *service.FavoriteService
}

// NewServer connects to the configured store and builds a Server on it.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return NewServerWithDeps(cfg, db)
}

// NewServerWithDeps creates a Server using an already-opened store handle.
// Tests use it with an in-memory database.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB) (*Server, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle is required")
	}

	ttl := time.Duration(cfg.TokenTTLHours) * time.Hour
	tokens := auth.NewManager(cfg.JWTSecret, ttl)

	s := &Server{
		config:         cfg,
		db:             db,
		promMiddleware: middleware.InitMetrics(observability.ServiceName),
		tokens:         tokens,
		userRepo:       repository.NewUserRepository(db),
		adRepo:         repository.NewAdRepository(db),
		favoriteRepo:   repository.NewFavoriteRepository(db),
	}
	s.authService = service.NewAuthService(s.userRepo, tokens, cfg.BcryptCost)
	s.adService = service.NewAdService(s.adRepo)
	s.favoriteService = service.NewFavoriteService(s.favoriteRepo, s.adRepo)

	return s, nil
}

// NewApp builds the Fiber application with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Classifieds API",
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: ErrorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Tracing runs before the context middleware so the trace id is available to it
	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID and Trace ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	// Tokens travel in the Authorization header, so credentials stay off.
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		MaxAge:       86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health", s.HealthCheck)
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Classifieds API Metrics Dashboard",
	}))

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	requireAuth := s.AuthRequired()

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", s.Register)
	authRoutes.Post("/login", s.Login)

	api.Get("/categories", s.ListCategories)

	ads := api.Group("/ads")
	ads.Get("/", s.ListAds)
	ads.Get("/:id", s.GetAd)
	ads.Post("/", requireAuth, s.CreateAd)
	ads.Put("/:id", requireAuth, s.UpdateAd)
	ads.Delete("/:id", requireAuth, s.DeleteAd)

	favorites := api.Group("/favorites", requireAuth)
	favorites.Get("/", s.ListFavorites)
	favorites.Get("/check/:adId", s.CheckFavorite)
	favorites.Post("/:adId/toggle", s.ToggleFavorite)

	users := api.Group("/users", requireAuth)
	users.Get("/me", s.GetMe)
	users.Delete("/me", s.DeleteMe)
	users.Get("/me/ads", s.ListMyAds)
}

// AuthRequired returns the bearer-token gate bound to this server's token manager.
func (s *Server) AuthRequired() fiber.Handler {
	return middleware.AuthRequired(s.tokens)
}

// Start listens on the configured port, building the app first if NewApp has
// not been called. It blocks until the listener stops.
func (s *Server) Start() error {
	app := s.app
	if app == nil {
		app = s.NewApp()
	}
	middleware.Logger.Info("Server starting",
		slog.String("port", s.config.Port),
		slog.String("env", s.config.Env))
	return app.Listen(":" + s.config.Port)
}

// Shutdown stops accepting requests and closes the store handle.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("error closing database: %w", err)
	}
	return nil
}
