package contacts

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/productioncity/salutation/internal/appcontext"
	"github.com/productioncity/salutation/pkg/contacts"
)

// NewGetCommand creates the contacts get command.
func NewGetCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a contact as stored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Service(cmd.Context())
			if err != nil {
				return err
			}

			c, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printContact(cmd.OutOrStdout(), app, c)
		},
	}
}

// NewListCommand creates the contacts list command.
func NewListCommand(app appcontext.Interface) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List contacts, oldest first",
		Example: `  salutation contacts list
  salutation contacts list --category person -o wide`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var q contacts.Query
			if category != "" {
				cat, err := contacts.ParseCategory(category)
				if err != nil {
					return err
				}
				q.Category = cat
			}

			svc, err := app.Service(cmd.Context())
			if err != nil {
				return err
			}

			cs, err := svc.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			return printContacts(cmd.OutOrStdout(), app, cs)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list person or organization contacts")
	return cmd
}

// NewDisplayCommand creates the contacts display command.
func NewDisplayCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "display ID",
		Short: "Print a contact's display label",
		Long: `Print a contact's display label. Blank name parts that are not pinned
are derived and saved first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Service(cmd.Context())
			if err != nil {
				return err
			}

			label, err := svc.Display(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), label)
			return err
		},
	}
}
