package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/celebigilfatih/omt/internal/app"
	"github.com/celebigilfatih/omt/internal/config"
	grpcServer "github.com/celebigilfatih/omt/internal/infrastructure/grpc"
	httpServer "github.com/celebigilfatih/omt/internal/infrastructure/http"
	"github.com/celebigilfatih/omt/internal/infrastructure/metrics"
	"github.com/celebigilfatih/omt/internal/infrastructure/storage"
	"github.com/celebigilfatih/omt/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.NewZapLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting tournament service",
		zap.String("env", cfg.Service.Env),
		zap.String("version", cfg.Service.Version),
		zap.String("database", cfg.Database.Driver),
		zap.String("storage", cfg.Storage.Driver))

	infra, err := app.NewInfrastructure(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize infrastructure", zap.Error(err))
	}
	defer infra.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := infra.Migrate(ctx); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	registry := metrics.NewRegistry()
	useCases, err := app.NewUseCases(ctx, cfg, infra, registry, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize usecases", zap.Error(err))
	}

	var static *httpServer.StaticDir
	if local, ok := useCases.Store.(*storage.LocalStore); ok {
		static = &httpServer.StaticDir{Prefix: local.PublicPath(), Root: local.Dir()}
	}

	httpSrv := httpServer.NewServer(cfg, zapLogger, httpServer.Services{
		Applications: useCases.Applications,
		Teams:        useCases.Teams,
		Payments:     useCases.Payments,
		Admins:       useCases.Admins,
		Settings:     useCases.Settings,
		Uploads:      useCases.Uploads,
		Health:       useCases.Health,
	}, useCases.Tokens, registry, static)

	go func() {
		if err := httpSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	var grpcSrv *grpcServer.Server
	if cfg.Server.GRPC.Enabled {
		grpcSrv = grpcServer.NewServer(cfg.Server.GRPC, zapLogger, useCases.Health)
		go func() {
			if err := grpcSrv.Start(); err != nil {
				zapLogger.Fatal("Failed to start gRPC server", zap.Error(err))
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down servers...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if grpcSrv != nil {
		if err := grpcSrv.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("Failed to shutdown gRPC server", zap.Error(err))
		}
	}

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Servers shut down successfully")
}
