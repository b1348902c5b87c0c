package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/celebigilfatih/omt/internal/usecase"
)

func NewCreateAdminCommand(rootOpts *RootOptions) *cobra.Command {
	in := usecase.CreateAdminInput{}

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
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

			admin, err := s.useCases.Admins.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), rootOpts.Format, admin, func(w io.Writer) error {
				printf(w, "Created admin %s <%s> (%s)\n", admin.Name, admin.Email, admin.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "login email")
	cmd.Flags().StringVar(&in.Name, "name", "", "display name")
	cmd.Flags().StringVar(&in.Password, "password", "", "initial password (min 6 characters)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
