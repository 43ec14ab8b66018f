package contacts

import (
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/productioncity/salutation/internal/appcontext"
)

// NewDeleteCommand creates the contacts delete command.
func NewDeleteCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID...",
		Aliases: []string{"rm"},
		Short:   "Delete contacts",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Service(cmd.Context())
			if err != nil {
				return err
			}

			var errs []error
			for _, id := range args {
				if err := svc.Delete(cmd.Context(), id); err != nil {
					errs = append(errs, err)
					continue
				}
				app.Logger().Debug().Str("contact_id", id).Msg("Deleted contact")
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			}
			return stderrors.Join(errs...)
		},
	}
}
