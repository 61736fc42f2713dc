package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/chainpass/ticketing/internal/adapter"
	"github.com/chainpass/ticketing/internal/api/middleware"
	"github.com/chainpass/ticketing/internal/api/rest"
	"github.com/chainpass/ticketing/internal/logger"
	"github.com/chainpass/ticketing/internal/metrics"
)

// Config holds the server configuration
type Config struct {
	Debug          bool
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
	IPFSGateway    string
	Auth           middleware.AuthConfig
	// PublicRateLimit and ScanRateLimit apply when a limiter is given
	PublicRateLimit middleware.RateLimitConfig
	ScanRateLimit   middleware.RateLimitConfig
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	deps       rest.Dependencies
	limiter    adapter.RedisRateLimiter
	gatherer   prometheus.Gatherer
	httpServer *http.Server
}

// New creates a new API server. limiter may be nil to disable rate limiting.
func New(cfg Config, deps rest.Dependencies, limiter adapter.RedisRateLimiter, gatherer prometheus.Gatherer) *Server {
	return &Server{
		config:   cfg,
		deps:     deps,
		limiter:  limiter,
		gatherer: gatherer,
	}
}

// Router builds the gin engine with every route and middleware
func (s *Server) Router() (*gin.Engine, error) {
	// Set Gin mode based on debug flag
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	authenticator, err := middleware.NewAuthenticator(s.config.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticator: %w", err)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS(s.config.AllowedOrigins))

	if s.gatherer != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(s.gatherer)))
	}

	publicLimit := s.config.PublicRateLimit
	publicLimit.Scope = "public"
	scanLimit := s.config.ScanRateLimit
	scanLimit.Scope = "scan"

	handler := rest.NewHandler(s.config.Debug, s.config.IPFSGateway, s.deps)
	rest.SetupRoutes(router, handler, rest.RouteConfig{
		Auth:        authenticator,
		PublicLimit: middleware.RateLimit(s.limiter, publicLimit),
		ScanLimit:   middleware.RateLimit(s.limiter, scanLimit),
	})

	return router, nil
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	router, err := s.Router()
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
		zap.Bool("rate_limited", s.limiter != nil),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
