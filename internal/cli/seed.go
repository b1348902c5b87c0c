package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/celebigilfatih/omt/internal/seed"
)

type seedOptions struct {
	File string
}

func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample teams",
		Long: `Insert teams from a YAML fixture. Without --file the bundled
fixture of five sample clubs is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "YAML fixture with a top-level teams list")
	return cmd
}

func runSeed(cmd *cobra.Command, rootOpts *RootOptions, opts *seedOptions) error {
	fixture, err := loadFixture(opts.File)
	if err != nil {
		return err
	}
	teams, err := fixture.Entities()
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), rootOpts)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.infra.Migrate(cmd.Context()); err != nil {
		return err
	}
	if err := s.useCases.Maintenance.ImportTeams(cmd.Context(), teams); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, team := range teams {
		printf(out, "✓ %s added\n", team.TeamName)
	}
	printf(out, "Seeded %d teams\n", len(teams))
	return nil
}

func loadFixture(path string) (*seed.Fixture, error) {
	if path == "" {
		return seed.Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer f.Close()
	return seed.Load(f)
}
