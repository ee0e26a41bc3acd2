package collection

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/nhle/meeting-tracker/internal/model"
)

// dialect captures what differs between the SQL backends.
type dialect struct {
	driverName string
	timestamp  string
}

var dialects = map[string]dialect{
	model.DriverSQLite:   {driverName: "sqlite", timestamp: "DATETIME"},
	model.DriverPostgres: {driverName: "pgx", timestamp: "TIMESTAMPTZ"},
}

func init() {
	// sqlx does not know the modernc driver name; it takes ? placeholders.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// OpenSQL opens (or creates) a database for the given driver ("sqlite" or
// "postgres") and runs any pending schema migrations.
func OpenSQL(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	if driver == model.DriverSQLite {
		if err := ensureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sqlx.Open(d.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s db: %w", driver, err)
	}

	if driver == model.DriverSQLite {
		// One connection keeps ":memory:" databases shared and
		// serialises writers.
		db.SetMaxOpenConns(1)

		// Enable WAL mode for better concurrent read performance.
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enabling WAL mode: %w", err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %s db: %w", driver, err)
	}

	if err := runMigrations(ctx, db, d); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// NewSQLClient wraps an open database in a Client. Closing the client
// closes the database.
func NewSQLClient(db *sqlx.DB, backend string) *Client {
	return &Client{
		Meetings:  NewSQLCollection[model.Meeting](db),
		Todos:     NewSQLCollection[model.Todo](db),
		Learnings: NewSQLCollection[model.Learning](db),
		Backend:   backend,
		closer:    db,
	}
}

func ensureParentDir(dsn string) error {
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating database directory %s: %w", dir, err)
	}
	return nil
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order, each in its own transaction.
func runMigrations(ctx context.Context, db *sqlx.DB, d dialect) error {
	if _, err := db.ExecContext(ctx,
		"CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)",
	); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var currentVersion int
	err := db.GetContext(ctx, &currentVersion,
		"SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning migration v%d: %w", m.version, err)
		}
		if _, err := tx.ExecContext(ctx, m.sql(d)); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// SQLCollection implements Collection on top of a SQL database.
type SQLCollection[T model.Record] struct {
	db    *sqlx.DB
	table table
}

// NewSQLCollection returns the collection backing record type T.
func NewSQLCollection[T model.Record](db *sqlx.DB) *SQLCollection[T] {
	return &SQLCollection[T]{db: db, table: tableFor[T]()}
}

// List retrieves every record ordered by orderBy.
func (c *SQLCollection[T]) List(
	ctx context.Context,
	orderBy string,
	ascending bool,
) ([]T, error) {
	if err := c.table.checkOrder(orderBy); err != nil {
		return nil, err
	}

	direction := "DESC"
	if ascending {
		direction = "ASC"
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s %s",
		c.table.selectList(), c.table.name, quote(orderBy), direction)

	records := []T{}
	if err := c.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("listing %s: %w", c.table.name, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("collection", c.table.name).
		Int("rows", len(records)).
		Msg("listed records")

	return records, nil
}

// Insert stores a new record.
func (c *SQLCollection[T]) Insert(ctx context.Context, record T) error {
	if record.GetID() == "" {
		return fmt.Errorf("inserting into %s: record has no id", c.table.name)
	}

	if _, err := c.db.NamedExecContext(ctx, c.table.insertQuery(), record); err != nil {
		return fmt.Errorf("inserting into %s: %w", c.table.name, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("collection", c.table.name).
		Str("id", record.GetID()).
		Msg("inserted record")
	return nil
}

// Update replaces every mutable column of the record with the given ID.
func (c *SQLCollection[T]) Update(ctx context.Context, id string, record T) error {
	if record.GetID() != id {
		return fmt.Errorf("updating %s %s: record carries id %q", c.table.name, id, record.GetID())
	}

	result, err := c.db.NamedExecContext(ctx, c.table.updateQuery(), record)
	if err != nil {
		return fmt.Errorf("updating %s %s: %w", c.table.name, id, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("updating %s %s: %w", c.table.name, id, ErrNotFound)
	}

	zerolog.Ctx(ctx).Debug().
		Str("collection", c.table.name).
		Str("id", id).
		Msg("updated record")
	return nil
}

// Delete removes the record with the given ID.
func (c *SQLCollection[T]) Delete(ctx context.Context, id string) error {
	query := c.db.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE "id" = ?`, c.table.name))

	result, err := c.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", c.table.name, id, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("deleting %s %s: %w", c.table.name, id, ErrNotFound)
	}

	zerolog.Ctx(ctx).Debug().
		Str("collection", c.table.name).
		Str("id", id).
		Msg("deleted record")
	return nil
}
