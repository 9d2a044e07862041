package table

import (
	"database/sql"
	"fmt"

	"github.com/roach88/flextable/internal/record"
)

// Rows is a lazy, single-pass iterator over decoded records. It is
// restartable only by re-invoking the query that produced it.
//
// Usage:
//
//	for rows.Next() {
//		rec := rows.Record()
//		...
//	}
//	if err := rows.Err(); err != nil { ... }
type Rows struct {
	rows *sql.Rows
	cols []string
	cur  record.Record
	err  error
}

func newRows(rows *sql.Rows) (*Rows, error) {
	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, fmt.Errorf("read column names: %w", err)
	}
	return &Rows{rows: rows, cols: cols}, nil
}

// Next advances to the next record. It returns false when the results are
// exhausted or an error occurred; check Err afterward.
func (r *Rows) Next() bool {
	if r.err != nil {
		return false
	}
	if !r.rows.Next() {
		r.err = r.rows.Err()
		r.rows.Close()
		return false
	}
	rec, err := decodeRow(r.rows, r.cols)
	if err != nil {
		r.err = err
		r.rows.Close()
		return false
	}
	r.cur = rec
	return true
}

// Record returns the record produced by the last successful Next.
func (r *Rows) Record() record.Record {
	return r.cur
}

// Err returns the first error encountered during iteration, if any.
func (r *Rows) Err() error {
	return r.err
}

// Close releases the underlying cursor. Safe to call more than once and
// after exhaustion.
func (r *Rows) Close() error {
	return r.rows.Close()
}

// All drains the iterator into a slice and closes it.
func (r *Rows) All() ([]record.Record, error) {
	defer r.Close()
	var recs []record.Record
	for r.Next() {
		recs = append(recs, r.Record())
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}
