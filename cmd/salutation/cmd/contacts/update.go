package contacts

import (
	"github.com/spf13/cobra"

	"github.com/productioncity/salutation/internal/appcontext"
	"github.com/productioncity/salutation/pkg/contacts"
	"github.com/productioncity/salutation/pkg/errors"
)

// NewUpdateCommand creates the contacts update command.
func NewUpdateCommand(app appcontext.Interface) *cobra.Command {
	flags := &changeFlags{}
	var pin, unpin []string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a contact",
		Long: `Update a contact. Changing the name, locale, title or category
re-derives every name part that is not pinned. Setting a name part by hand
pins it when the value differs from the derived one.

--pin and --unpin set the manual flags directly and accept given, family
and salutation.`,
		Example: `  salutation contacts update c-1 --name "Ada King"
  salutation contacts update c-1 --salutation "Lady Ada"
  salutation contacts update c-1 --unpin salutation`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.changes(cmd.Flags())
			if err != nil {
				return err
			}
			if in, err = withPins(in, pin, true); err != nil {
				return err
			}
			if in, err = withPins(in, unpin, false); err != nil {
				return err
			}
			if in.Empty() {
				return errors.NewValidationError("changes", "", "nothing to update")
			}

			svc, err := app.Service(cmd.Context())
			if err != nil {
				return err
			}

			c, err := svc.Update(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			return printContact(cmd.OutOrStdout(), app, c)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringSliceVar(&pin, "pin", nil, "name parts to pin")
	cmd.Flags().StringSliceVar(&unpin, "unpin", nil, "name parts to unpin")

	return cmd
}

func withPins(in contacts.Changes, names []string, manual bool) (contacts.Changes, error) {
	for _, name := range names {
		f, err := contacts.ParseField(name)
		if err != nil {
			return in, err
		}
		if m := in.Manual(f); m != nil && *m != manual {
			return in, errors.NewValidationError(f.String(), name, "cannot be pinned and unpinned at once")
		}
		in = in.WithManual(f, manual)
	}
	return in, nil
}
