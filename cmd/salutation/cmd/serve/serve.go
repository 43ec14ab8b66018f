// Package serve provides the serve command, which runs the HTTP API.
package serve

import (
	"github.com/spf13/cobra"

	"github.com/productioncity/salutation/internal/appcontext"
	"github.com/productioncity/salutation/internal/server"
)

// NewCommand creates the serve command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		addr      string
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "core",
		Short:   "Start the REST API server with WebSocket and SSE updates",
		Long: `Start the REST API server.

Features:
  - Contact endpoints under /api/v1/contacts
  - Name splitting, backfill and field listings
  - WebSocket (/api/v1/updates/ws) and Server-Sent Events
    (/api/v1/updates/stream) for contact changes
  - Prometheus metrics at /metrics
  - Graceful shutdown on SIGINT or SIGTERM`,
		Example: `  salutation serve
  salutation serve --addr 127.0.0.1:9090
  salutation serve --store postgres --dsn postgres://localhost/crm?sslmode=disable`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.ServerConfig()
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if noMetrics {
				cfg.MetricsEnabled = false
			}

			svc, err := app.Service(cmd.Context())
			if err != nil {
				return err
			}

			srv, err := server.New(svc, cfg, app.Logger())
			if err != nil {
				return err
			}

			app.Logger().Info().
				Str("addr", cfg.Addr).
				Str("prefix", cfg.PathPrefix).
				Bool("metrics", cfg.MetricsEnabled).
				Str("version", app.Version()).
				Msg("Starting salutation API")

			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not serve /metrics")

	return cmd
}
