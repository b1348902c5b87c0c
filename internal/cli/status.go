package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/celebigilfatih/omt/internal/usecase"
)

// StatusReport is what status prints.
type StatusReport struct {
	Database string               `json:"database" yaml:"database"`
	Health   string               `json:"health" yaml:"health"`
	Counts   *usecase.StoreStatus `json:"counts" yaml:"counts"`
}

func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show row counts and health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			counts, err := s.useCases.Maintenance.Status(cmd.Context())
			if err != nil {
				return err
			}
			health := s.useCases.Health.Check(cmd.Context())

			report := StatusReport{
				Database: s.cfg.Database.Driver,
				Health:   health.Status,
				Counts:   counts,
			}
			return render(cmd.OutOrStdout(), rootOpts.Format, report, func(w io.Writer) error {
				printf(w, "Database:     %s (%s)\n", report.Database, report.Health)
				printf(w, "Admins:       %d\n", counts.Admins)
				printf(w, "Applications: %d\n", counts.Applications)
				printf(w, "Teams:        %d\n", counts.Teams)
				printf(w, "Payments:     %d\n", counts.Payments)
				return nil
			})
		},
	}
}
