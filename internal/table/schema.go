package table

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/flextable/internal/record"
)

// Columns returns the current column-name set from engine metadata,
// lower-cased. The result reflects the live schema, including changes made
// by other writers, not the cached snapshot.
func (t *Table) Columns(ctx context.Context) (map[string]struct{}, error) {
	rows, err := t.db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", t.name)
	if err != nil {
		return nil, newQueryError(t.name, "read columns", err)
	}
	defer rows.Close()

	columns := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan column name: %w", err)
		}
		columns[strings.ToLower(name)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}
	return columns, nil
}

// refreshColumns replaces the schema snapshot with fresh engine metadata.
// The snapshot is never mutated incrementally, so schema drift from other
// writers is picked up here too.
func (t *Table) refreshColumns(ctx context.Context) error {
	columns, err := t.Columns(ctx)
	if err != nil {
		return err
	}
	t.columns = columns
	return nil
}

// knownColumn reports whether name matches a known column. Comparison is
// case-insensitive: the snapshot stores lower-cased names while the engine
// keeps original case.
func (t *Table) knownColumn(name string) bool {
	_, ok := t.columns[strings.ToLower(name)]
	return ok
}

// needsExpand reports whether the record carries a field not covered by
// the schema snapshot.
func (t *Table) needsExpand(rec record.Record) bool {
	for f := range rec {
		if !t.knownColumn(f) {
			return true
		}
	}
	return false
}

// Expand adds columns to the table so it can hold rec.
//
// A field whose value is Null is skipped: no column is created until a
// non-null value is observed, and that first value fixes the column's
// storage kind forever. A field differing from an existing column only by
// case is treated as already present. Each add-column commits on its own,
// so a failure partway leaves the already-added columns in place. The
// snapshot is refreshed from engine metadata afterward.
func (t *Table) Expand(ctx context.Context, rec record.Record) error {
	for _, field := range rec.SortedFields() {
		if t.knownColumn(field) {
			// covers any case'd version of an existing column
			continue
		}
		v := rec[field]
		if record.IsNull(v) {
			// dont add columns for null valued fields
			continue
		}

		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s default NULL",
			EscapeIdentifier(t.name), EscapeIdentifier(field), storageKind(v))
		if _, err := t.db.ExecContext(ctx, stmt); err != nil {
			return newSchemaError(t.name, field, "add column", err)
		}
		if t.opts.IndexAllColumns {
			if err := t.Index(ctx, field); err != nil {
				return err
			}
		}
	}

	return t.refreshColumns(ctx)
}

// storageKind maps a value to the SQL storage kind used when its column is
// first created. BLOB is the fallback for anything unclassified.
func storageKind(v record.Value) string {
	switch v.(type) {
	case record.Int:
		return "INTEGER"
	case record.Real:
		return "REAL"
	case record.Text:
		return "TEXT"
	default:
		return "BLOB"
	}
}
