// Package split provides the split command, which derives name parts
// without storing anything.
package split

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/productioncity/salutation/internal/appcontext"
	"github.com/productioncity/salutation/internal/cmd/output"
	"github.com/productioncity/salutation/internal/cmd/table"
	"github.com/productioncity/salutation/pkg/contacts"
	"github.com/productioncity/salutation/pkg/errors"
)

// NewCommand creates the split command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var locale, title string

	cmd := &cobra.Command{
		Use:     "split NAME...",
		GroupID: "core",
		Short:   "Derive given name, family name and salutation from a full name",
		Long: `Split derives name parts from a full name. The words of NAME are joined
with single spaces. In family-name-first locales (zh_CN, zh_TW, ko_KR, ja_JP,
vi_VN, hu_HU, mn_MN) the first word is the family name; elsewhere it is the
given name. A title prefixes the salutation.`,
		Example: `  salutation split Ada Lovelace
  salutation split "Kim Minjun" --locale ko_KR
  salutation split "Wang Wei" --locale zh-CN --title Dr. -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			if strings.TrimSpace(name) == "" {
				return errors.NewValidationError("name", name, "must not be blank")
			}

			policy, err := app.Policy()
			if err != nil {
				return err
			}

			parts := policy.Derive(contacts.Contact{Name: name, Locale: locale, Title: title})
			app.Logger().Debug().
				Str("name", name).
				Str("locale", locale).
				Str("given", parts.Given).
				Str("family", parts.Family).
				Msg("Split name")

			return output.Render(cmd.OutOrStdout(), app.OutputFormat(), parts, func(bool) table.Data {
				return table.PartsToTableData(parts)
			})
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "", "locale of the name (default: configured locale)")
	cmd.Flags().StringVar(&title, "title", "", "title to prefix the salutation with")

	return cmd
}
