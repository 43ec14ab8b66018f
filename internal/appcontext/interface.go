// Package appcontext provides the application context interface shared by
// the CLI commands. Commands accept this interface rather than the concrete
// App type so they can be tested against Mock.
package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/productioncity/salutation"
	"github.com/productioncity/salutation/internal/server"
	"github.com/productioncity/salutation/pkg/reconcile"
)

// Interface defines the application context interface that commands need.
type Interface interface {
	// Service returns the salutation service, opening the configured store
	// on first use.
	Service(ctx context.Context) (salutation.Service, error)

	// Policy returns a reconciliation policy built from the configuration
	// without opening the store.
	Policy() (*reconcile.Policy, error)

	// ServerConfig returns the HTTP server configuration.
	ServerConfig() server.Config

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, wide).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
