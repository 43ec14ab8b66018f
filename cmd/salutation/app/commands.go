package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/productioncity/salutation/cmd/salutation/cmd/backfill"
	"github.com/productioncity/salutation/cmd/salutation/cmd/contacts"
	"github.com/productioncity/salutation/cmd/salutation/cmd/fields"
	"github.com/productioncity/salutation/cmd/salutation/cmd/serve"
	"github.com/productioncity/salutation/cmd/salutation/cmd/split"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(split.NewCommand(a))
	rootCmd.AddCommand(contacts.NewCommand(a))
	rootCmd.AddCommand(serve.NewCommand(a))

	// Management commands
	reset := contacts.NewResetCommand(a)
	reset.GroupID = "management"
	rootCmd.AddCommand(reset)
	rootCmd.AddCommand(backfill.NewCommand(a))
	rootCmd.AddCommand(fields.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "salutation %s\n", a.version)
			if a.config.Verbose {
				fmt.Fprintf(out, "  commit:   %s\n", a.commit)
				fmt.Fprintf(out, "  built:    %s\n", a.date)
				fmt.Fprintf(out, "  built by: %s\n", a.builtBy)
			}
		},
	}
}
