package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"tuff-gaming/internal/auth"
	"tuff-gaming/internal/config"
	"tuff-gaming/internal/database"
	"tuff-gaming/internal/metrics"
	custommiddleware "tuff-gaming/internal/middleware"
	"tuff-gaming/internal/repository"
	"tuff-gaming/internal/service"
	"tuff-gaming/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Services are the application services the router dispatches to
type Services struct {
	Users     service.UserService
	Products  service.ProductService
	Wishlists service.WishlistService
}

// HealthChecker reports the status of a backing store
type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

// Deps carries everything NewRouter needs
type Deps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Services Services
	Tokens   custommiddleware.TokenVerifier
	Health   HealthChecker
	Metrics  *metrics.HTTPMetrics
	// Redis backs the login and registration limiter; nil disables it.
	Redis *redis.Client
}

type Server struct {
	*http.Server
	config    *config.Config
	logger    *zap.Logger
	dbService database.Service
	redis     *redis.Client
}

// NewServer wires repositories, services and handlers over the given pool
func NewServer(cfg *config.Config, logger *zap.Logger, dbService database.Service, redisClient *redis.Client) (*Server, error) {
	db := dbService.DB()

	tokens, err := auth.NewTokenService(cfg.JWT.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)

	// Initialize services
	services := Services{
		Users:     service.NewUserService(userRepo, auth.NewPasswordHasher(cfg.JWT.BcryptCost), tokens),
		Products:  service.NewProductService(productRepo, cfg.Products.MaxLimit),
		Wishlists: service.NewWishlistService(wishlistRepo),
	}

	router := NewRouter(Deps{
		Config:   cfg,
		Logger:   logger,
		Services: services,
		Tokens:   tokens,
		Health:   dbService,
		Metrics:  metrics.NewHTTPMetrics(),
		Redis:    redisClient,
	})

	return &Server{
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
		redis:     redisClient,
	}, nil
}

// NewRouter builds the HTTP handler tree: page data routes at the root and
// the JSON API under /api, all behind the identity middleware.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logger := deps.Logger

	router := chi.NewRouter()

	// Add basic middleware
	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware)
	}
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, !cfg.IsProduction()))
	router.Use(custommiddleware.IdentityMiddleware(deps.Tokens, logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if deps.Health == nil {
			custommiddleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "up"})
			return
		}
		health := deps.Health.Health(r.Context())
		status := http.StatusOK
		if health["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		custommiddleware.RespondWithJSON(w, status, health)
	})

	if deps.Metrics != nil {
		router.Handle("/metrics", deps.Metrics.Handler())
	}

	// Initialize handlers
	authHandler := transport.NewAuthHandler(deps.Services.Users, transport.CookieConfig{
		MaxAge: cfg.Session.MaxAge,
		Secure: cfg.Session.Secure,
	}, logger)
	productHandler := transport.NewProductHandler(deps.Services.Products, logger)
	wishlistHandler := transport.NewWishlistHandler(deps.Services.Wishlists, logger)
	pageHandler := transport.NewPageHandler(productHandler, deps.Services.Wishlists, logger)

	var limiter func(http.Handler) http.Handler
	if cfg.RateLimit.Enabled && deps.Redis != nil {
		limiter = custommiddleware.RateLimitMiddleware(deps.Redis, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "ratelimit:auth",
		}, logger)
	}

	// Register routes
	router.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r, limiter)
		productHandler.RegisterRoutes(r)
		wishlistHandler.RegisterRoutes(r)
	})
	pageHandler.RegisterRoutes(router)

	return router
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	// Close database connection
	if s.dbService != nil {
		if err := s.dbService.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
