package contacts

import (
	"github.com/spf13/cobra"

	"github.com/productioncity/salutation/internal/appcontext"
	"github.com/productioncity/salutation/pkg/contacts"
)

// NewResetCommand creates the reset command. Every reset contact is printed
// afterwards; IDs that failed are reported in the returned error.
func NewResetCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "reset ID...",
		Short: "Re-derive all name parts and unpin them",
		Long: `Reset re-derives the given name, family name and salutation of each
person from the current name, locale and title, and clears every manual
flag. Organizations are left untouched.`,
		Example: `  salutation contacts reset c-1
  salutation reset c-1 c-2 c-3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Service(cmd.Context())
			if err != nil {
				return err
			}

			resetErr := svc.Reset(cmd.Context(), args...)

			var cs []contacts.Contact
			for _, id := range args {
				c, err := svc.Get(cmd.Context(), id)
				if err != nil {
					continue
				}
				cs = append(cs, c)
			}
			if len(cs) > 0 {
				if err := printContacts(cmd.OutOrStdout(), app, cs); err != nil {
					return err
				}
			}

			return resetErr
		},
	}
}
