package grpc

import (
	"context"
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/AREOPAGO7/ZOOJ-sub001/pkg/logger"
)

// Server exposes gRPC health checks for orchestration
type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
	logger     *zap.Logger
	host       string
	port       int
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

// NewServer creates the gRPC server with health and reflection registered
func NewServer(opts ...ServerOption) *Server {
	s := &Server{
		logger: zap.NewNop(),
		port:   9090,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.grpcServer = grpc.NewServer(
		grpc.UnaryInterceptor(logger.NewGrpcUnaryServerInterceptor(s.logger)),
	)

	s.health = health.NewServer()
	healthpb.RegisterHealthServer(s.grpcServer, s.health)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	reflection.Register(s.grpcServer)
	return s
}

// SetServing flips the overall health status, e.g. while draining
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
}

// Start listens on the configured address and blocks serving
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.host, s.port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.Serve(lis)
}

// Serve serves on an existing listener
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("Starting gRPC server", zap.String("address", lis.Addr().String()))
	return s.grpcServer.Serve(lis)
}

// Shutdown stops gracefully, forcing a stop when ctx expires
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetServing(false)

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-ctx.Done():
		s.logger.Warn("Forcing gRPC server stop")
		s.grpcServer.Stop()
		return ctx.Err()
	case <-stopped:
		s.logger.Info("gRPC server stopped")
		return nil
	}
}
