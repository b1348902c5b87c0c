package grpc

import (
	"context"
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	grpcHandler "github.com/celebigilfatih/omt/internal/adapter/handler/grpc"
	"github.com/celebigilfatih/omt/internal/config"
	apperrors "github.com/celebigilfatih/omt/pkg/errors"
	"github.com/celebigilfatih/omt/pkg/logger"
)

type Server struct {
	config   config.GRPCConfig
	logger   *zap.Logger
	server   *grpc.Server
	listener net.Listener
}

func NewServer(cfg config.GRPCConfig, log *zap.Logger, health grpcHandler.HealthChecker) *Server {
	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(logger.NewGrpcUnaryServerInterceptor(log), errorInterceptor),
		grpc.ChainStreamInterceptor(logger.NewGrpcStreamServerInterceptor(log)),
	)
	healthpb.RegisterHealthServer(server, grpcHandler.NewHealthHandler(health, log))

	return &Server{
		config: cfg,
		logger: log,
		server: server,
	}
}

// errorInterceptor runs inside the logging interceptor so logged codes match
// what the client receives.
func errorInterceptor(ctx context.Context, req interface{}, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	resp, err := handler(ctx, req)
	return resp, apperrors.ToGRPCError(err)
}

// Start blocks serving until Shutdown is called.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.Serve(listener)
}

// Serve runs the server on an existing listener.
func (s *Server) Serve(listener net.Listener) error {
	s.listener = listener
	s.logger.Info("Starting gRPC server", zap.String("address", listener.Addr().String()))

	if err := s.server.Serve(listener); err != nil && err != grpc.ErrServerStopped {
		return err
	}
	return nil
}

// Shutdown stops gracefully, or forcefully once ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.server.Stop()
		return ctx.Err()
	}
}
