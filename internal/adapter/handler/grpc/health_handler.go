package grpc

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/celebigilfatih/omt/internal/usecase"
)

// ServiceName is the name clients use to check this service specifically.
const ServiceName = "omt.Tournament"

// HealthChecker is satisfied by usecase.HealthService.
type HealthChecker interface {
	Check(ctx context.Context) *usecase.HealthReport
}

// HealthHandler answers grpc.health.v1 checks from the same checks as GET /health.
type HealthHandler struct {
	healthpb.UnimplementedHealthServer
	checker HealthChecker
	logger  *zap.Logger
}

func NewHealthHandler(checker HealthChecker, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{checker: checker, logger: logger}
}

func (h *HealthHandler) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if svc := req.GetService(); svc != "" && svc != ServiceName {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", svc)
	}

	report := h.checker.Check(ctx)
	if !report.Healthy() {
		h.logger.Warn("gRPC health check failing", zap.String("error", report.Error))
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}
