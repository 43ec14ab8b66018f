// Package contacts provides the contacts commands: create, read, update and
// delete contacts, read their display label and reset or import them.
package contacts

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/productioncity/salutation/internal/appcontext"
	"github.com/productioncity/salutation/internal/cmd/output"
	"github.com/productioncity/salutation/internal/cmd/table"
	"github.com/productioncity/salutation/pkg/contacts"
)

// NewCommand creates the contacts command with its subcommands.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contacts",
		Aliases: []string{"contact"},
		GroupID: "core",
		Short:   "Manage contacts and their derived name parts",
		Long: `Manage stored contacts.

Name parts of people are derived from the name, locale and title. Setting
a name part by hand pins it: later name changes leave it alone until the
contact is reset.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewCreateCommand(app))
	cmd.AddCommand(NewGetCommand(app))
	cmd.AddCommand(NewListCommand(app))
	cmd.AddCommand(NewUpdateCommand(app))
	cmd.AddCommand(NewDeleteCommand(app))
	cmd.AddCommand(NewDisplayCommand(app))
	cmd.AddCommand(NewResetCommand(app))
	cmd.AddCommand(NewImportCommand(app))

	return cmd
}

// changeFlags holds the flags shared by create and update.
type changeFlags struct {
	category   string
	name       string
	locale     string
	title      string
	given      string
	family     string
	salutation string
}

func (f *changeFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.category, "category", "", "person or organization")
	fs.StringVar(&f.name, "name", "", "full name")
	fs.StringVar(&f.locale, "locale", "", "locale, e.g. en_US or ko_KR")
	fs.StringVar(&f.title, "title", "", "title shortcut, e.g. Dr.")
	fs.StringVar(&f.given, "given", "", "given name (pins it when it differs from the derived one)")
	fs.StringVar(&f.family, "family", "", "family name (pins it when it differs from the derived one)")
	fs.StringVar(&f.salutation, "salutation", "", "salutation (pins it when it differs from the derived one)")
}

// changes builds a change set from the flags the user actually set, so an
// explicit empty value clears a field and an absent flag leaves it alone.
func (f *changeFlags) changes(fs *pflag.FlagSet) (contacts.Changes, error) {
	var in contacts.Changes

	if fs.Changed("category") {
		cat, err := contacts.ParseCategory(f.category)
		if err != nil {
			return in, err
		}
		in = in.WithCategory(cat)
	}
	if fs.Changed("name") {
		in = in.WithName(f.name)
	}
	if fs.Changed("locale") {
		in = in.WithLocale(f.locale)
	}
	if fs.Changed("title") {
		in = in.WithTitle(f.title)
	}
	if fs.Changed("given") {
		in = in.WithValue(contacts.FieldGiven, f.given)
	}
	if fs.Changed("family") {
		in = in.WithValue(contacts.FieldFamily, f.family)
	}
	if fs.Changed("salutation") {
		in = in.WithValue(contacts.FieldSalutation, f.salutation)
	}

	return in, nil
}

func printContact(w io.Writer, app appcontext.Interface, c contacts.Contact) error {
	return output.Render(w, app.OutputFormat(), c, func(bool) table.Data {
		return table.ContactToTableData(c)
	})
}

func printContacts(w io.Writer, app appcontext.Interface, cs []contacts.Contact) error {
	return output.Render(w, app.OutputFormat(), cs, func(wide bool) table.Data {
		return table.ContactsToTableData(cs, wide)
	})
}
