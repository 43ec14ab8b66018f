// Package constants provides shared constants used throughout the salutation
// codebase: timeouts, file permissions, defaults and the environment variable
// names the CLI and server read.
package constants

import "time"

// Timeout constants
const (
	// DefaultTimeout bounds a single store operation issued by the CLI.
	DefaultTimeout = 10 * time.Second

	// ShutdownTimeout is how long the HTTP server waits for in-flight requests.
	ShutdownTimeout = 5 * time.Second

	// ReadHeaderTimeout protects the HTTP server from slow clients.
	ReadHeaderTimeout = 5 * time.Second
)

// File permission constants
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Defaults
const (
	// DefaultLocale is used when neither the caller nor the record supplies one.
	DefaultLocale = "en_US"

	// DefaultStore is the store driver used by the CLI.
	DefaultStore = "sqlite"

	// DefaultDSN is the sqlite database file used by the CLI.
	DefaultDSN = "salutation.db"

	// DefaultAddr is the HTTP listen address.
	DefaultAddr = ":8080"

	// DefaultPathPrefix is the HTTP API prefix.
	DefaultPathPrefix = "/api/v1"

	// ConfigName is the config file name searched in $HOME and the working directory.
	ConfigName = ".salutation"

	// EnvPrefix prefixes every environment variable read through viper.
	EnvPrefix = "SALUTATION"
)

