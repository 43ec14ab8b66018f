// Package backfill provides the backfill command.
package backfill

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/productioncity/salutation/internal/appcontext"
	"github.com/productioncity/salutation/internal/cmd/output"
	"github.com/productioncity/salutation/internal/cmd/table"
)

// NewCommand creates the backfill command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var failOnError bool

	cmd := &cobra.Command{
		Use:     "backfill",
		GroupID: "management",
		Short:   "Fill blank name parts on every person",
		Long: `Backfill walks every person and derives name parts that are blank and not
pinned. Each contact is saved on its own; a contact that fails is logged
and counted, and the walk continues.

Run it once after installing on an existing contact base.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := app.Service(cmd.Context())
			if err != nil {
				return err
			}

			report, err := svc.Backfill(cmd.Context())
			if err != nil {
				return err
			}

			if err := output.Render(cmd.OutOrStdout(), app.OutputFormat(), report, func(bool) table.Data {
				return table.BackfillReportToTableData(report)
			}); err != nil {
				return err
			}

			if failOnError && report.Failed > 0 {
				return fmt.Errorf("backfill: %d of %d contacts failed", report.Failed, report.Processed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&failOnError, "fail-on-error", false, "exit non-zero when any contact failed")
	return cmd
}
