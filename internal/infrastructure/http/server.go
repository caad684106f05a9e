package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/AREOPAGO7/ZOOJ-sub001/internal/adapter/handler/http"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/middleware/auth"
	"github.com/AREOPAGO7/ZOOJ-sub001/pkg/logger"
)

// Server wraps the echo instance serving the public API
type Server struct {
	echo           *echo.Echo
	logger         *zap.Logger
	host           string
	port           int
	serviceName    string
	jwtSecret      string
	allowedOrigins []string
	api            *echo.Group
}

// ServerOption configures a Server
type ServerOption func(*Server)

// WithAddress sets the listen host and port
func WithAddress(host string, port int) ServerOption {
	return func(s *Server) {
		s.host = host
		s.port = port
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithServiceName sets the name reported by /health
func WithServiceName(name string) ServerOption {
	return func(s *Server) {
		s.serviceName = name
	}
}

// WithJWTSecret sets the Supabase JWT secret protecting /api/v1
func WithJWTSecret(secret string) ServerOption {
	return func(s *Server) {
		s.jwtSecret = secret
	}
}

// WithAllowedOrigins restricts CORS; empty allows any origin
func WithAllowedOrigins(origins ...string) ServerOption {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

// NewServer builds the echo server with logging, recovery, CORS and JWT auth on /api/v1
func NewServer(opts ...ServerOption) *Server {
	s := &Server{
		echo:        echo.New(),
		logger:      zap.NewNop(),
		port:        8080,
		serviceName: "compat",
	}
	for _, opt := range opts {
		opt(s)
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewRequestValidator()
	logger.WithEchoLogger(e, s.logger)

	e.Use(middleware.Recover())
	corsConfig := middleware.DefaultCORSConfig
	if len(s.allowedOrigins) > 0 {
		corsConfig.AllowOrigins = s.allowedOrigins
	}
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	e.Use(middleware.CORSWithConfig(corsConfig))
	e.Use(logger.NewEchoRequestLogger(s.logger))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.serviceName,
		})
	})

	s.api = e.Group("/api/v1", auth.JWTMiddleware(auth.JWTConfig{
		Secret:    s.jwtSecret,
		Logger:    s.logger,
		SkipPaths: []string{"/health"},
	}))

	return s
}

// RegisterRoutes mounts handlers on the authenticated /api/v1 group
func (s *Server) RegisterRoutes(register func(g *echo.Group)) {
	register(s.api)
}

// Start blocks serving HTTP until Shutdown is called
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}

// Echo returns the underlying echo instance
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
