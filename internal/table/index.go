package table

import (
	"context"
	"fmt"
	"sort"
)

// indexName returns the deterministic name for a column's index, so
// repeated create/drop calls address the same index.
func (t *Table) indexName(col string) string {
	return fmt.Sprintf("index_%s_%s", t.name, col)
}

// Index creates an index on a column if one does not already exist.
// Idempotent: calling it twice never errors and leaves exactly one index.
func (t *Table) Index(ctx context.Context, col string) error {
	stmt := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s ( %s )",
		EscapeIdentifier(t.indexName(col)),
		EscapeIdentifier(t.name),
		EscapeIdentifier(col))
	if _, err := t.db.ExecContext(ctx, stmt); err != nil {
		return newSchemaError(t.name, col, "create index", err)
	}
	return nil
}

// IndexAll indexes every known column, in sorted order for determinism.
func (t *Table) IndexAll(ctx context.Context) error {
	cols, err := t.sortedColumns(ctx)
	if err != nil {
		return err
	}
	for _, col := range cols {
		if err := t.Index(ctx, col); err != nil {
			return err
		}
	}
	return nil
}

// DropIndex removes a column's index if it exists.
func (t *Table) DropIndex(ctx context.Context, col string) error {
	stmt := fmt.Sprintf("DROP INDEX IF EXISTS %s", EscapeIdentifier(t.indexName(col)))
	if _, err := t.db.ExecContext(ctx, stmt); err != nil {
		return newSchemaError(t.name, col, "drop index", err)
	}
	return nil
}

// DropIndexAll removes the index on every known column. Useful before a
// bulk import.
func (t *Table) DropIndexAll(ctx context.Context) error {
	cols, err := t.sortedColumns(ctx)
	if err != nil {
		return err
	}
	for _, col := range cols {
		if err := t.DropIndex(ctx, col); err != nil {
			return err
		}
	}
	return nil
}

// Analyze asks the engine to recompute query-planning statistics for the
// table.
func (t *Table) Analyze(ctx context.Context) error {
	stmt := fmt.Sprintf("ANALYZE %s", EscapeIdentifier(t.name))
	if _, err := t.db.ExecContext(ctx, stmt); err != nil {
		return newSchemaError(t.name, "", "analyze", err)
	}
	return nil
}

// sortedColumns returns the live column set in sorted order. A failed
// metadata read is an error, not a silent fallback to the snapshot.
func (t *Table) sortedColumns(ctx context.Context) ([]string, error) {
	columns, err := t.Columns(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(columns))
	for c := range columns {
		names = append(names, c)
	}
	sort.Strings(names)
	return names, nil
}
