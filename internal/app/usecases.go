package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/celebigilfatih/omt/internal/config"
	"github.com/celebigilfatih/omt/internal/infrastructure/storage"
	"github.com/celebigilfatih/omt/internal/middleware/auth"
	"github.com/celebigilfatih/omt/internal/usecase"
)

// UseCases is the container of every service.
type UseCases struct {
	Applications *usecase.ApplicationService
	Teams        *usecase.TeamService
	Payments     *usecase.PaymentService
	Admins       *usecase.AdminService
	Settings     *usecase.SettingsService
	Uploads      *usecase.UploadService
	Health       *usecase.HealthService
	Maintenance  *usecase.MaintenanceService

	Tokens *auth.TokenIssuer
	Store  usecase.BlobStore
}

// NewUseCases builds every service on top of infra. metrics may be nil.
func NewUseCases(ctx context.Context, cfg *config.Config, infra *Infrastructure, metrics usecase.Metrics, logger *zap.Logger) (*UseCases, error) {
	store, err := storage.New(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize upload storage: %w", err)
	}

	deps := usecase.Deps{
		Repos:     infra.Repos,
		Publisher: infra.Publisher(cfg.Redis.Channel),
		Metrics:   metrics,
		Validator: usecase.NewValidator(),
		Clock:     infra.Clock,
		Logger:    logger,
	}

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL, infra.Clock)
	legacy := usecase.LegacyCredential{
		Enabled:    cfg.Auth.LegacyAdmin.Enabled,
		Identifier: cfg.Auth.LegacyAdmin.Identifier,
		Password:   cfg.Auth.LegacyAdmin.Password,
	}

	return &UseCases{
		Applications: usecase.NewApplicationService(deps),
		Teams:        usecase.NewTeamService(deps, cfg.Pagination.DefaultLimit, cfg.Pagination.MaxLimit),
		Payments:     usecase.NewPaymentService(deps),
		Admins:       usecase.NewAdminService(deps, tokens, legacy, cfg.Auth.BcryptCost),
		Settings:     usecase.NewSettingsService(deps),
		Uploads:      usecase.NewUploadService(deps, store, cfg.Storage.MaxSize),
		Health:       usecase.NewHealthService(deps, store, cfg.Service.Version),
		Maintenance:  usecase.NewMaintenanceService(deps),
		Tokens:       tokens,
		Store:        store,
	}, nil
}
