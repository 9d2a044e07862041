package table

import "context"

// Query is the raw escape hatch: it runs an arbitrary parameterized
// statement and returns an iterator over the resulting records. The
// statement is passed through verbatim; bound values must use ?
// placeholders, never string interpolation.
func (t *Table) Query(ctx context.Context, stmt string, args ...any) (*Rows, error) {
	rows, err := t.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, newQueryError(t.name, "query", err)
	}
	return newRows(rows)
}

// Exec runs an arbitrary parameterized statement that produces no rows and
// returns the affected row count.
func (t *Table) Exec(ctx context.Context, stmt string, args ...any) (int64, error) {
	res, err := t.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, newQueryError(t.name, "exec", err)
	}
	return res.RowsAffected()
}
