package sqlstore

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*/*.sql
var migrations embed.FS

// Migrate applies all pending up migrations for the store's dialect.
func (s *Store) Migrate(ctx context.Context) error {
	src, err := iofs.New(migrations, "migrations/"+s.dialect.migrationsDir())
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	driver, err := s.migrationDriver(ctx)
	if err != nil {
		_ = src.Close()
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, s.dialect.String(), driver)
	if err != nil {
		_ = src.Close()
		return fmt.Errorf("init migrations: %w", err)
	}

	upErr := m.Up()
	if errors.Is(upErr, migrate.ErrNoChange) {
		upErr = nil
	}
	if upErr == nil {
		if version, dirty, err := m.Version(); err == nil {
			s.logger.Debug().
				Uint("version", version).
				Bool("dirty", dirty).
				Str("dialect", s.dialect.String()).
				Msg("Schema is up to date")
		}
	}

	// The sqlite3 driver's Close closes the shared *sql.DB, so only the
	// source is released there. The postgres driver holds a dedicated conn.
	if s.dialect == Postgres {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			s.logger.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("Closing migrator")
		}
	} else {
		_ = src.Close()
	}

	if upErr != nil {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	return nil
}

func (s *Store) migrationDriver(ctx context.Context) (database.Driver, error) {
	switch s.dialect {
	case Postgres:
		conn, err := s.db.Conn(ctx)
		if err != nil {
			return nil, err
		}
		driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{})
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		return driver, nil
	case SQLite:
		return sqlite3.WithInstance(s.db, &sqlite3.Config{})
	}
	return nil, fmt.Errorf("unsupported dialect %q", s.dialect)
}
