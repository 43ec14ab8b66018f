package contacts

import (
	"github.com/spf13/cobra"

	"github.com/productioncity/salutation/internal/appcontext"
	"github.com/productioncity/salutation/pkg/errors"
)

// NewCreateCommand creates the contacts create command.
func NewCreateCommand(app appcontext.Interface) *cobra.Command {
	flags := &changeFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a contact",
		Long: `Create a contact. Without --category the contact is an organization,
and organizations get no name parts derived.`,
		Example: `  salutation contacts create --category person --name "Ada Lovelace"
  salutation contacts create --category person --name "Kim Minjun" --locale ko_KR
  salutation contacts create --category person --name "Ada Lovelace" --salutation "Countess"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := flags.changes(cmd.Flags())
			if err != nil {
				return err
			}
			if in.Empty() {
				return errors.NewValidationError("contact", "", "at least one field is required")
			}

			svc, err := app.Service(cmd.Context())
			if err != nil {
				return err
			}

			c, err := svc.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printContact(cmd.OutOrStdout(), app, c)
		},
	}

	flags.register(cmd.Flags())
	return cmd
}
