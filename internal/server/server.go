package server

import (
	"fmt"
	"net/http"
	"time"

	"products-api/internal/config"
	"products-api/internal/database"
	custommiddleware "products-api/internal/middleware"
	"products-api/internal/repository"
	"products-api/internal/service"
	"products-api/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "products-api/docs" // generated swagger docs
)

type Server struct {
	*http.Server
	config    *config.Config
	logger    *zap.Logger
	dbService database.Service
}

func NewServer(cfg *config.Config, logger *zap.Logger, dbService database.Service) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins))

	if cfg.RateLimit.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
			Window:            time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
			KeyPrefix:         "rate_limit",
		}, logger))
	}

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, dbService.Health())
	})

	// Swagger UI
	router.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// Initialize repositories
	productRepo := repository.NewProductRepository(dbService.DB())

	// Initialize services
	productService := service.NewProductService(productRepo)

	// Initialize handlers
	productHandler := transport.NewProductHandler(productService, logger)

	// Register routes
	productHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:    cfg,
		logger:    logger,
		dbService: dbService,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.dbService != nil {
		if err := s.dbService.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
