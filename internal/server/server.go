package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/healthyrecipe/backend/config"
	"github.com/pageza/healthyrecipe/backend/internal/api"
	"github.com/pageza/healthyrecipe/backend/internal/database"
	"github.com/pageza/healthyrecipe/backend/internal/logging"
	"github.com/pageza/healthyrecipe/backend/internal/metrics"
	"github.com/pageza/healthyrecipe/backend/internal/middleware"
	"github.com/pageza/healthyrecipe/backend/internal/service"
	"github.com/pageza/healthyrecipe/backend/internal/store/gormstore"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// NewServices wires the domain services onto db. Recipe embeddings are kept
// only when the database supports vectors.
func NewServices(cfg *config.Config, db *gorm.DB) api.Services {
	var opts []gormstore.Option
	if database.SupportsVectors(db) {
		opts = append(opts, gormstore.WithEmbeddings())
	}
	gs := gormstore.New(db, opts...)
	stores := gs.Stores()
	hasher := service.BcryptHasher{Cost: bcrypt.DefaultCost}

	return api.Services{
		Auth:            service.NewAuthService(stores.Users, hasher, cfg.JWTSecret, cfg.JWTTTL),
		Profiles:        service.NewProfileService(stores.Users, hasher),
		Recipes:         service.NewRecipeService(stores, gs),
		Ratings:         service.NewRatingService(stores, gs),
		Favorites:       service.NewFavoriteService(stores),
		Recommendations: service.NewRecommendationService(stores),
		Admin:           service.NewAdminService(stores.Users),
	}
}

// New creates a new server instance. A nil redis client disables rate
// limiting.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	if !cfg.Environment.IsLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	router.Use(metrics.Middleware())

	s := &Server{
		router: router,
		db:     db,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	router.GET("/health", api.HealthCheck)
	router.GET("/api/health", api.HealthCheck)
	router.GET("/health/ready", s.readiness)
	router.GET("/metrics", metrics.Handler())

	api.RegisterRoutes(router.Group("/api/v1"), NewServices(cfg, db), api.Limiters{
		Submission: middleware.NewSubmissionRateLimiter(redisClient, cfg.SubmissionLimitPerHour),
		Rating:     middleware.NewRatingRateLimiter(redisClient, cfg.RatingLimitPerHour),
	})

	return s
}

// readiness reports whether the database answers.
func (s *Server) readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := database.HealthCheck(ctx, s.db); err != nil {
		logging.FromContext(c.Request.Context()).Warn().Err(err).Msg("readiness check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "database": "up"})
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until Shutdown is called
func (s *Server) Start() error {
	log.Info().Str("addr", s.http.Addr).Msg("starting HTTP server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
