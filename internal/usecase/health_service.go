package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// HealthReport is the body of the health endpoint.
type HealthReport struct {
	Status    string    `json:"status"`
	Database  string    `json:"database,omitempty"`
	Uploads   string    `json:"uploads,omitempty"`
	Version   string    `json:"version,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

// Healthy reports whether every dependency answered.
func (r *HealthReport) Healthy() bool {
	return r.Status == "healthy"
}

// HealthService checks the database and blob store.
type HealthService struct {
	Deps
	store   BlobStore
	version string
	timeout time.Duration
}

func NewHealthService(deps Deps, store BlobStore, version string) *HealthService {
	return &HealthService{Deps: deps.withDefaults(), store: store, version: version, timeout: 3 * time.Second}
}

func (s *HealthService) Check(ctx context.Context) *HealthReport {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	report := &HealthReport{Version: s.version, Timestamp: s.Clock.Now().UTC()}

	if err := s.Repos.Pinger.Ping(ctx); err != nil {
		s.Logger.Error("Health check: database unreachable", zap.Error(err))
		report.Status = "unhealthy"
		report.Error = "database connection failed"
		return report
	}
	report.Database = "connected"

	if err := s.store.Check(ctx); err != nil {
		s.Logger.Error("Health check: upload storage unavailable", zap.Error(err))
		report.Status = "unhealthy"
		report.Error = "upload storage is not accessible"
		return report
	}
	report.Uploads = "accessible"

	report.Status = "healthy"
	return report
}
