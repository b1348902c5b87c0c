package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/celebigilfatih/omt/internal/config"
	"github.com/celebigilfatih/omt/internal/usecase"
	apperrors "github.com/celebigilfatih/omt/pkg/errors"
)

type healthyChecker struct{}

func (healthyChecker) Check(context.Context) *usecase.HealthReport {
	return &usecase.HealthReport{Status: "healthy"}
}

func TestServer_HealthOverBufconn(t *testing.T) {
	listener := bufconn.Listen(1024 * 1024)
	server := NewServer(config.GRPCConfig{}, zap.NewNop(), healthyChecker{})

	errCh := make(chan error, 1)
	go func() { errCh <- server.Serve(listener) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	require.NoError(t, server.Shutdown(ctx))
	assert.NoError(t, <-errCh)
}

func TestErrorInterceptor_MapsAppErrors(t *testing.T) {
	handler := func(context.Context, interface{}) (interface{}, error) {
		return nil, apperrors.NewAppError(apperrors.ErrFailedPrecondition, "application already decided", nil)
	}

	_, err := errorInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{}, handler)

	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}
