package table

import (
	"database/sql"
	"fmt"

	"github.com/roach88/flextable/internal/record"
)

// insertEncode converts a record into the column, placeholder, and value
// lists for an INSERT. Null-valued fields are omitted entirely so the
// column default (NULL) applies.
func insertEncode(rec record.Record) (cols, placeholders []string, vals []any) {
	for _, field := range rec.SortedFields() {
		v := rec[field]
		if record.IsNull(v) {
			// dont insert null values
			continue
		}
		cols = append(cols, EscapeIdentifier(field))
		placeholders = append(placeholders, "?")
		vals = append(vals, record.ToNative(v))
	}
	return cols, placeholders, vals
}

// updateEncode converts a record into SET assignment clauses and bound
// values for an UPDATE. A Null-valued field becomes a literal
// `column = NULL` assignment rather than a bound parameter.
func updateEncode(rec record.Record) (assignments []string, vals []any) {
	for _, field := range rec.SortedFields() {
		v := rec[field]
		if record.IsNull(v) {
			assignments = append(assignments, EscapeIdentifier(field)+" = NULL")
		} else {
			assignments = append(assignments, EscapeIdentifier(field)+" = ?")
			vals = append(vals, record.ToNative(v))
		}
	}
	return assignments, vals
}

// decodeRow zips the cursor's column names with the current row's
// positional values into a record, preserving the scalar types the engine
// returns.
func decodeRow(rows *sql.Rows, cols []string) (record.Record, error) {
	raw := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("scan row: %w", err)
	}

	rec := make(record.Record, len(cols))
	for i, name := range cols {
		v, err := record.FromDriver(raw[i])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		rec[name] = v
	}
	return rec, nil
}
