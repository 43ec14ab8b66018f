// Package store opens the contacts.Store selected by configuration.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/productioncity/salutation/internal/store/memory"
	"github.com/productioncity/salutation/internal/store/sqlstore"
	"github.com/productioncity/salutation/pkg/constants"
	"github.com/productioncity/salutation/pkg/contacts"
	"github.com/productioncity/salutation/pkg/errors"
)

// Drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects and configures a store.
type Config struct {
	Driver string `mapstructure:"store" json:"store" yaml:"store"`
	DSN    string `mapstructure:"dsn" json:"dsn" yaml:"dsn"`
}

// Drivers returns the supported driver names.
func Drivers() []string {
	return []string{DriverMemory, DriverSQLite, DriverPostgres}
}

// Open returns the store named by cfg.Driver. An empty driver selects
// sqlite, and sqlite without a DSN uses constants.DefaultDSN.
func Open(ctx context.Context, cfg Config, logger *zerolog.Logger) (contacts.Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = constants.DefaultStore
	}

	switch driver {
	case DriverMemory:
		return memory.New(), nil

	case DriverSQLite, "sqlite3":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = constants.DefaultDSN
		}
		s, err := sqlstore.Open(ctx, sqlstore.SQLite, dsn, sqlstore.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return s, nil

	case DriverPostgres, "postgresql":
		if cfg.DSN == "" {
			return nil, errors.NewConfigError("store", "postgres requires a dsn", nil)
		}
		s, err := sqlstore.Open(ctx, sqlstore.Postgres, cfg.DSN, sqlstore.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}
		return s, nil
	}

	return nil, errors.NewConfigError("store",
		fmt.Sprintf("unknown store %q (want one of %s)", cfg.Driver, strings.Join(Drivers(), ", ")), nil)
}
