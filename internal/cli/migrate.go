package cli

import (
	"github.com/spf13/cobra"
)

func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.infra.Migrate(cmd.Context()); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Schema is up to date (%s)\n", s.cfg.Database.Driver)
			return nil
		},
	}
}
