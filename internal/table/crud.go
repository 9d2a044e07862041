package table

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/roach88/flextable/internal/record"
)

// commitEvery is how many records InsertList accumulates before committing.
// Committing in batches is a throughput optimization, not a correctness
// requirement; a crash mid-batch leaves a committed prefix.
const commitEvery = 500

// execer is the subset of sql.DB / sql.Tx / sql.Conn used by the statement
// builders, so the same code serves autocommit and transactional paths.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Insert inserts a single record, adding columns as needed.
func (t *Table) Insert(ctx context.Context, rec record.Record) error {
	return t.InsertList(ctx, []record.Record{rec})
}

// InsertList inserts records in order, expanding the schema whenever a
// record introduces new fields. Commits happen every commitEvery records
// and always after the final one. Schema changes commit independently of
// the record batches, so an expansion mid-list never holds the batch
// transaction open.
func (t *Table) InsertList(ctx context.Context, recs []record.Record) error {
	var tx *sql.Tx

	commit := func() error {
		if tx == nil {
			return nil
		}
		err := tx.Commit()
		tx = nil
		if err != nil {
			return newQueryError(t.name, "commit insert batch", err)
		}
		return nil
	}

	for i, rec := range recs {
		if t.needsExpand(rec) {
			// DDL needs the connection to itself; close out the batch first.
			if err := commit(); err != nil {
				return err
			}
			if err := t.Expand(ctx, rec); err != nil {
				return err
			}
		}

		if tx == nil {
			var err error
			tx, err = t.db.BeginTx(ctx, nil)
			if err != nil {
				return newTxError(t.name, "begin insert batch", err)
			}
		}

		if err := t.insertRecord(ctx, tx, rec); err != nil {
			tx.Rollback()
			return err
		}

		if (i+1)%commitEvery == 0 {
			if err := commit(); err != nil {
				return err
			}
		}
	}

	return commit()
}

// insertRecord executes a single INSERT against e.
func (t *Table) insertRecord(ctx context.Context, e execer, rec record.Record) error {
	stmt, vals := buildInsert(t.name, rec)
	if _, err := e.ExecContext(ctx, stmt, vals...); err != nil {
		return newQueryError(t.name, "insert", err)
	}
	return nil
}

// buildInsert renders the INSERT statement for a record. A record whose
// every field is Null inserts a row of defaults.
func buildInsert(table string, rec record.Record) (string, []any) {
	cols, placeholders, vals := insertEncode(rec)
	if len(cols) == 0 {
		return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES", EscapeIdentifier(table)), nil
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		EscapeIdentifier(table),
		strings.Join(cols, ","),
		strings.Join(placeholders, ","))
	return stmt, vals
}

// Get returns a lazy iterator over records matching the criteria, ordered
// by rowid ascending. An empty matching map iterates the whole table.
//
// If any key in matching is not a known column, Get returns (nil, nil):
// a typo'd field name reads as "no match", not an error. Callers that care
// must check for the nil iterator.
func (t *Table) Get(ctx context.Context, matching record.Record) (*Rows, error) {
	for name := range matching {
		if !t.knownColumn(name) {
			return nil, nil
		}
	}

	ands, vals := mkAnds(matching)
	stmt := fmt.Sprintf("SELECT * FROM %s%s ORDER BY rowid",
		EscapeIdentifier(t.name), whereClause(ands))

	rows, err := t.db.QueryContext(ctx, stmt, vals...)
	if err != nil {
		return nil, newQueryError(t.name, "select", err)
	}
	return newRows(rows)
}

// GetOne returns the first record matching the criteria. It returns
// sql.ErrNoRows both when nothing matches and when a matching key is not a
// known column - the two are deliberately conflated.
func (t *Table) GetOne(ctx context.Context, matching record.Record) (record.Record, error) {
	rows, err := t.Get(ctx, matching)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		return nil, sql.ErrNoRows
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Record(), nil
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return nil, sql.ErrNoRows
}

// Update sets the record's fields on every row matching the criteria,
// expanding the schema first if the record introduces new fields. An empty
// matching map updates every row. Returns the affected row count.
func (t *Table) Update(ctx context.Context, matching, rec record.Record) (int64, error) {
	if t.needsExpand(rec) {
		if err := t.Expand(ctx, rec); err != nil {
			return 0, err
		}
	}
	return t.updateRecord(ctx, t.db, matching, rec)
}

// updateRecord executes the UPDATE against e. The schema must already
// cover rec's fields.
func (t *Table) updateRecord(ctx context.Context, e execer, matching, rec record.Record) (int64, error) {
	assignments, vals := updateEncode(rec)
	if len(assignments) == 0 {
		return 0, newQueryError(t.name, "update", fmt.Errorf("empty record"))
	}
	ands, kvals := mkAnds(matching)

	stmt := fmt.Sprintf("UPDATE %s SET %s%s",
		EscapeIdentifier(t.name),
		strings.Join(assignments, " , "),
		whereClause(ands))

	res, err := e.ExecContext(ctx, stmt, append(vals, kvals...)...)
	if err != nil {
		return 0, newQueryError(t.name, "update", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update rows affected: %w", err)
	}
	return n, nil
}

// Delete removes every row matching the criteria and returns the affected
// row count. An empty matching map deletes all rows. Deleting never
// introduces new fields, so the schema is not expanded.
func (t *Table) Delete(ctx context.Context, matching record.Record) (int64, error) {
	ands, vals := mkAnds(matching)
	stmt := fmt.Sprintf("DELETE FROM %s%s", EscapeIdentifier(t.name), whereClause(ands))

	res, err := t.db.ExecContext(ctx, stmt, vals...)
	if err != nil {
		return 0, newQueryError(t.name, "delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete rows affected: %w", err)
	}
	return n, nil
}

// Upsert inserts rec, or updates the rows matching the criteria if any
// exist. The existence check and the conditional write run inside one
// exclusive transaction, so two concurrent upserts with the same criteria
// cannot both observe "no match" and insert duplicates.
//
// The insert branch writes rec alone, not a merge of matching and rec: if
// a matching key is absent from rec, the inserted row will not satisfy its
// own criteria on a later lookup.
func (t *Table) Upsert(ctx context.Context, matching, rec record.Record) error {
	// Expand outside the transaction: column adds commit independently,
	// and holding the exclusive lock through DDL buys nothing.
	if t.needsExpand(rec) {
		if err := t.Expand(ctx, rec); err != nil {
			return err
		}
	}

	conn, err := t.db.Conn(ctx)
	if err != nil {
		return newTxError(t.name, "upsert acquire connection", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN EXCLUSIVE"); err != nil {
		return newTxError(t.name, "upsert begin exclusive", err)
	}

	if err := t.upsertLocked(ctx, conn, matching, rec); err != nil {
		if _, rbErr := conn.ExecContext(ctx, "ROLLBACK"); rbErr != nil {
			return newTxError(t.name, "upsert rollback", rbErr)
		}
		return err
	}

	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		return newTxError(t.name, "upsert commit", err)
	}
	return nil
}

// upsertLocked performs the check-then-write on the connection holding the
// exclusive transaction.
func (t *Table) upsertLocked(ctx context.Context, conn *sql.Conn, matching, rec record.Record) error {
	exists, err := t.matchExists(ctx, conn, matching)
	if err != nil {
		return err
	}

	if exists {
		_, err = t.updateRecord(ctx, conn, matching, rec)
		return err
	}
	return t.insertRecord(ctx, conn, rec)
}

// matchExists reports whether any row satisfies the criteria. A matching
// key that is not a known column reads as "no match", same as Get.
func (t *Table) matchExists(ctx context.Context, conn *sql.Conn, matching record.Record) (bool, error) {
	for name := range matching {
		if !t.knownColumn(name) {
			return false, nil
		}
	}

	ands, vals := mkAnds(matching)
	stmt := fmt.Sprintf("SELECT 1 FROM %s%s LIMIT 1",
		EscapeIdentifier(t.name), whereClause(ands))

	var one int
	err := conn.QueryRowContext(ctx, stmt, vals...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, newQueryError(t.name, "upsert existence check", err)
	}
	return true, nil
}
