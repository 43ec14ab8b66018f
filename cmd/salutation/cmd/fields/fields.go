// Package fields provides the fields commands, which list the name-part
// fields offered to templating and campaign recipients.
package fields

import (
	"github.com/spf13/cobra"

	"github.com/productioncity/salutation/internal/appcontext"
	"github.com/productioncity/salutation/internal/cmd/output"
	"github.com/productioncity/salutation/internal/cmd/table"
	"github.com/productioncity/salutation/pkg/errors"
	pkgfields "github.com/productioncity/salutation/pkg/fields"
)

// NewCommand creates the fields command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fields",
		GroupID: "management",
		Short:   "List the fields offered to templates and campaigns",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "merge",
		Short: "List the mail merge fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := app.Service(cmd.Context())
			if err != nil {
				return err
			}
			return printFields(cmd, app, svc.MergeFields())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "recipient",
		Short: "List the campaign recipient fields",
		Long: `List the campaign recipient fields. They are only available when the
host has the campaign model installed (configure host_models).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := app.Service(cmd.Context())
			if err != nil {
				return err
			}
			fs, ok := svc.RecipientFields()
			if !ok {
				return errors.NewDependencyError(pkgfields.CampaignModel, "campaign model is not installed")
			}
			return printFields(cmd, app, fs)
		},
	})

	return cmd
}

func printFields(cmd *cobra.Command, app appcontext.Interface, fs []pkgfields.Field) error {
	return output.Render(cmd.OutOrStdout(), app.OutputFormat(), fs, func(bool) table.Data {
		return table.FieldsToTableData(fs)
	})
}
