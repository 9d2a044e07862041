package table

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Options configures a table handle at open time.
type Options struct {
	// IndexAllColumns creates an index on every column the schema evolver
	// adds, as it adds it.
	IndexAllColumns bool

	// FastAndUnsafe relaxes durability for bulk loads: the journal is
	// disabled and commits do not fsync. A crash can corrupt the database.
	FastAndUnsafe bool

	// BusyTimeout bounds how long the engine waits on a locked database
	// before reporting contention. Defaults to 5 seconds.
	BusyTimeout time.Duration
}

// Table wraps a single SQLite table whose column set grows to fit the
// records written to it. The only fixed column is rowid, the engine-assigned
// monotonic row identity used as the default result order.
//
// A Table does not spawn goroutines; concurrency across handles (or across
// processes) is serialized by SQLite's own locking.
type Table struct {
	db   *sql.DB
	name string
	opts Options

	// columns is the schema snapshot: the lower-cased names of every known
	// column. Refreshed from engine metadata after structural changes,
	// never updated incrementally.
	columns map[string]struct{}
}

// EscapeIdentifier escapes a table, column, or index name for interpolation
// into a statement: wrap in double quotes, double any embedded double quote.
// This is the sole defense against reserved words and special characters in
// identifiers; values always go through bound parameters instead.
func EscapeIdentifier(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

// Open creates or opens the named table in the SQLite database at path.
// The table is created if absent, with only the rowid identity column;
// further columns appear as records introduce new fields.
//
// This function is idempotent - safe to call multiple times.
func Open(path, name string, opts Options) (*Table, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db, opts); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	t := &Table{db: db, name: name, opts: opts}

	createSQL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s
		(
		rowid INTEGER PRIMARY KEY ASC
		)`, EscapeIdentifier(name))
	if _, err := db.Exec(createSQL); err != nil {
		db.Close()
		return nil, newSchemaError(name, "", "create table", err)
	}

	if err := t.refreshColumns(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return t, nil
}

// Close closes the database connection.
func (t *Table) Close() error {
	if t.db == nil {
		return nil
	}
	return t.db.Close()
}

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer Table methods when available.
func (t *Table) DB() *sql.DB {
	return t.db
}

// Name returns the wrapped table's name, unescaped.
func (t *Table) Name() string {
	return t.name
}

// applyPragmas sets the SQLite configuration for a handle.
// The defaults favor safety (WAL + NORMAL); FastAndUnsafe flips to no
// journal and no fsync for bulk-load throughput.
func applyPragmas(db *sql.DB, opts Options) error {
	busy := opts.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}

	pragmas := []string{
		`PRAGMA encoding = "UTF-8"`,
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", busy.Milliseconds()),
	}
	if opts.FastAndUnsafe {
		pragmas = []string{
			`PRAGMA encoding = "UTF-8"`,
			"PRAGMA journal_mode = OFF",
			"PRAGMA synchronous = OFF",
			fmt.Sprintf("PRAGMA busy_timeout = %d", busy.Milliseconds()),
		}
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (t *Table) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := t.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
