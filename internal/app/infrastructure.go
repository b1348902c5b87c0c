// Package app wires configuration into infrastructure and usecases for the
// server and the operator CLI.
package app

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/celebigilfatih/omt/internal/adapter/repository"
	"github.com/celebigilfatih/omt/internal/config"
	domainRepo "github.com/celebigilfatih/omt/internal/domain/repository"
	"github.com/celebigilfatih/omt/internal/infrastructure/database"
	eventMessaging "github.com/celebigilfatih/omt/internal/infrastructure/messaging"
	"github.com/celebigilfatih/omt/pkg/messaging"
)

// Infrastructure holds the long-lived connections.
type Infrastructure struct {
	DB    *gorm.DB
	Redis messaging.RedisClient
	Repos *domainRepo.Repositories
	Clock clockwork.Clock

	logger *zap.Logger
}

// NewInfrastructure opens the database and, when enabled, Redis. Redis
// failures are logged and events are dropped instead of aborting startup.
func NewInfrastructure(cfg *config.Config, logger *zap.Logger) (*Infrastructure, error) {
	clock := clockwork.NewRealClock()

	db, err := database.NewConnection(&cfg.Database, logger, clock)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	infra := &Infrastructure{
		DB:     db,
		Repos:  repository.NewRepositories(db, logger),
		Clock:  clock,
		logger: logger,
	}

	if cfg.Redis.Enabled {
		client, err := messaging.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn("Redis unavailable, domain events disabled", zap.Error(err))
		} else {
			infra.Redis = client
			logger.Info("Redis connected", zap.String("addr", cfg.Redis.Addr))
		}
	}

	return infra, nil
}

// Publisher returns the Redis event publisher, or nil when Redis is off.
func (i *Infrastructure) Publisher(channel string) domainRepo.EventPublisher {
	if i.Redis == nil {
		return nil
	}
	return eventMessaging.NewRedisEventPublisher(i.Redis, channel)
}

// Migrate applies the schema.
func (i *Infrastructure) Migrate(ctx context.Context) error {
	return database.Migrate(i.DB.WithContext(ctx), i.logger)
}

func (i *Infrastructure) Close() {
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			i.logger.Error("Failed to close Redis client", zap.Error(err))
		}
	}
	if err := database.Close(i.DB, i.logger); err != nil {
		i.logger.Error("Failed to close database connection", zap.Error(err))
	}
}
