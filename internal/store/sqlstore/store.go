// Package sqlstore is a database/sql contacts.Store for SQLite and
// PostgreSQL. The schema is managed with embedded golang-migrate migrations.
package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/productioncity/salutation/pkg/contacts"
	"github.com/productioncity/salutation/pkg/errors"
	"github.com/productioncity/salutation/pkg/logging"
)

// Dialect selects the SQL driver and its placeholder style. The value is the
// database/sql driver name.
type Dialect string

// Supported dialects.
const (
	SQLite   Dialect = "sqlite3"
	Postgres Dialect = "postgres"
)

// String returns the string representation of a dialect.
func (d Dialect) String() string {
	return string(d)
}

func (d Dialect) migrationsDir() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// ParseDialect accepts a driver name or a common alias.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pg":
		return Postgres, nil
	}
	return "", errors.NewConfigError("store", fmt.Sprintf("unsupported SQL dialect %q", s), nil)
}

const columns = `id, category, name, locale, title,
	name_given, name_family, name_salutation,
	is_given_name_manual, is_family_name_manual, is_salutation_manual,
	created_at, updated_at`

var _ contacts.Store = (*Store)(nil)

// Store persists contacts in a SQL database.
type Store struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
	logger  *zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the store's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New wraps an open database. It does not run migrations.
func New(db *sql.DB, dialect Dialect, opts ...Option) *Store {
	s := &Store{
		db:      db,
		dialect: dialect,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open connects to dsn, checks the connection and applies migrations.
func Open(ctx context.Context, dialect Dialect, dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open(dialect.String(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if dialect == SQLite {
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.NewDependencyError(dialect.String(), err.Error())
	}

	s := New(db, dialect, opts...)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *Store) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Insert stores a new contact.
func (s *Store) Insert(ctx context.Context, c contacts.Contact) error {
	if err := c.Validate(); err != nil {
		return err
	}

	now := s.now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}

	query := s.rebind(`INSERT INTO contacts (` + columns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		c.ID,
		c.Category.String(),
		c.Name,
		c.Locale,
		c.Title,
		c.GivenName,
		c.FamilyName,
		c.Salutation,
		c.GivenManual,
		c.FamilyManual,
		c.SalutationManual,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewAlreadyExistsError("contact", c.ID)
		}
		return errors.WrapResource("create", "contact", c.ID, err)
	}
	return nil
}

// Get returns the contact with the given ID.
func (s *Store) Get(ctx context.Context, id string) (contacts.Contact, error) {
	return s.get(ctx, s.db, id, false)
}

func (s *Store) get(ctx context.Context, q queryer, id string, forUpdate bool) (contacts.Contact, error) {
	query := `SELECT ` + columns + ` FROM contacts WHERE id = ?`
	if forUpdate && s.dialect == Postgres {
		query += ` FOR UPDATE`
	}

	c, err := scanContact(q.QueryRowContext(ctx, s.rebind(query), id))
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return contacts.Contact{}, errors.NewNotFoundError("contact", id)
		}
		return contacts.Contact{}, errors.WrapResource("get", "contact", id, err)
	}
	return c, nil
}

// Update applies changes to a contact.
func (s *Store) Update(ctx context.Context, id string, changes contacts.Changes) (contacts.Contact, error) {
	return s.Atomic(ctx, id, func(context.Context, contacts.Contact) (contacts.Changes, error) {
		return changes, nil
	})
}

// Delete removes a contact.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM contacts WHERE id = ?`), id)
	if err != nil {
		return errors.WrapResource("delete", "contact", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.WrapResource("delete", "contact", id, err)
	}
	if n == 0 {
		return errors.NewNotFoundError("contact", id)
	}
	return nil
}

// Search returns matching contacts ordered by creation time, then ID.
func (s *Store) Search(ctx context.Context, q contacts.Query) ([]contacts.Contact, error) {
	query := `SELECT ` + columns + ` FROM contacts`
	var args []any
	if q.Category != "" {
		query += ` WHERE category = ?`
		args = append(args, q.Category.String())
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, errors.WrapResource("search", "contact", "", err)
	}
	defer rows.Close()

	var out []contacts.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, errors.WrapResource("search", "contact", "", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapResource("search", "contact", "", err)
	}
	return out, nil
}

// Atomic loads the contact inside a transaction, locking the row on
// postgres, and writes every mutable column back in a single UPDATE.
func (s *Store) Atomic(ctx context.Context, id string, fn contacts.AtomicFunc) (contacts.Contact, error) {
	var result contacts.Contact
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		cur, err := s.get(ctx, tx, id, true)
		if err != nil {
			return err
		}

		changes, err := fn(ctx, cur)
		if err != nil {
			return err
		}
		if changes.Empty() {
			result = cur
			return nil
		}

		next := cur
		changes.Apply(&next)
		if err := next.Validate(); err != nil {
			return err
		}
		next.UpdatedAt = s.now()

		if err := s.write(ctx, tx, next); err != nil {
			return err
		}
		result = next
		return nil
	})
	if err != nil {
		return contacts.Contact{}, err
	}
	return result, nil
}

func (s *Store) write(ctx context.Context, q queryer, c contacts.Contact) error {
	query := s.rebind(`UPDATE contacts SET
		category = ?, name = ?, locale = ?, title = ?,
		name_given = ?, name_family = ?, name_salutation = ?,
		is_given_name_manual = ?, is_family_name_manual = ?, is_salutation_manual = ?,
		updated_at = ?
		WHERE id = ?`)
	_, err := q.ExecContext(ctx, query,
		c.Category.String(),
		c.Name,
		c.Locale,
		c.Title,
		c.GivenName,
		c.FamilyName,
		c.Salutation,
		c.GivenManual,
		c.FamilyManual,
		c.SalutationManual,
		c.UpdatedAt,
		c.ID,
	)
	return errors.WrapResource("update", "contact", c.ID, err)
}

// withTx runs fn in a transaction.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Warn().Err(rbErr).Msg("Rollback failed")
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (contacts.Contact, error) {
	var c contacts.Contact
	var category string
	err := row.Scan(
		&c.ID,
		&category,
		&c.Name,
		&c.Locale,
		&c.Title,
		&c.GivenName,
		&c.FamilyName,
		&c.Salutation,
		&c.GivenManual,
		&c.FamilyManual,
		&c.SalutationManual,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return contacts.Contact{}, err
	}
	c.Category = contacts.Category(category)
	return c, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if stderrors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
