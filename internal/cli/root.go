// Package cli implements omtctl, the operator command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/celebigilfatih/omt/internal/app"
	"github.com/celebigilfatih/omt/internal/config"
	"github.com/celebigilfatih/omt/pkg/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
	Format     string // "text" | "json" | "yaml"
}

var validFormats = []string{"text", "json", "yaml"}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "omtctl",
		Short: "Operator tool for the tournament registration service",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range validFormats {
				if f == opts.Format {
					return nil
				}
			}
			return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, validFormats)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config directory (overrides CONFIG_PATH)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log at info level")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewCreateAdminCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))

	return cmd
}

// session is the per-invocation wiring shared by commands.
type session struct {
	cfg      *config.Config
	logger   *zap.Logger
	infra    *app.Infrastructure
	useCases *app.UseCases
}

func openSession(ctx context.Context, opts *RootOptions) (*session, error) {
	if opts.ConfigPath != "" {
		if err := os.Setenv("CONFIG_PATH", opts.ConfigPath); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	cfg.Log.Output = "stderr"
	cfg.Log.Format = "console"
	if !opts.Verbose {
		cfg.Log.Level = "warn"
	}
	log, err := logger.NewZapLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	infra, err := app.NewInfrastructure(cfg, log)
	if err != nil {
		return nil, err
	}

	useCases, err := app.NewUseCases(ctx, cfg, infra, nil, log)
	if err != nil {
		infra.Close()
		return nil, err
	}

	return &session{cfg: cfg, logger: log, infra: infra, useCases: useCases}, nil
}

func (s *session) Close() {
	s.infra.Close()
	_ = s.logger.Sync()
}
