package cli

import (
	"bufio"
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

type resetOptions struct {
	TeamsOnly bool
	Yes       bool
}

var errAborted = errors.New("aborted")

func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &resetOptions{}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete tournament data, keeping admin accounts",
		Long: `Delete payments, teams, applications and settings. Admin accounts
are kept. With --teams-only payments, teams and applications are removed
and settings are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.TeamsOnly, "teams-only", false, "keep settings; delete payments, teams and applications")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func runReset(cmd *cobra.Command, rootOpts *RootOptions, opts *resetOptions) error {
	out := cmd.OutOrStdout()

	if !opts.Yes {
		scope := "payments, teams, applications and settings"
		if opts.TeamsOnly {
			scope = "payments, teams and applications"
		}
		printf(out, "This deletes all %s. Continue? [y/N] ", scope)

		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			return errAborted
		}
	}

	s, err := openSession(cmd.Context(), rootOpts)
	if err != nil {
		return err
	}
	defer s.Close()

	result, err := s.useCases.Maintenance.Reset(cmd.Context(), opts.TeamsOnly)
	if err != nil {
		return err
	}

	printf(out, "Deleted %d payments, %d teams, %d applications", result.Payments, result.Teams, result.Applications)
	if !opts.TeamsOnly {
		printf(out, ", %d settings", result.Settings)
	}
	printf(out, "\n")
	return nil
}
