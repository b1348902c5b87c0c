// Package storage implements the upload blob stores.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/celebigilfatih/omt/internal/config"
	"github.com/celebigilfatih/omt/internal/usecase"
)

// New builds the blob store selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (usecase.BlobStore, error) {
	switch cfg.Driver {
	case config.StorageLocal:
		return NewLocalStore(cfg.Local.Dir, cfg.Local.PublicPath, logger), nil
	case config.StorageS3:
		return NewS3StoreFromConfig(ctx, cfg.S3, logger)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
