package table

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/flextable/internal/record"
)

// createTestTable opens a fresh table in a temp database for testing.
func createTestTable(t *testing.T, opts Options) *Table {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	tbl, err := Open(path, "t", opts)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { tbl.Close() })
	return tbl
}

// mustInsert inserts a record built from native scalars, failing the test
// on error.
func mustInsert(t *testing.T, tbl *Table, fields map[string]any) {
	t.Helper()
	rec, err := record.FromNativeMap(fields)
	if err != nil {
		t.Fatalf("FromNativeMap() failed: %v", err)
	}
	if err := tbl.Insert(context.Background(), rec); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
}

// mustGetAll drains a Get into a slice of native maps, failing on error.
func mustGetAll(t *testing.T, tbl *Table, matching map[string]any) []map[string]any {
	t.Helper()
	m, err := record.FromNativeMap(matching)
	if err != nil {
		t.Fatalf("FromNativeMap() failed: %v", err)
	}
	rows, err := tbl.Get(context.Background(), m)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if rows == nil {
		t.Fatalf("Get() returned the unknown-column sentinel")
	}
	recs, err := rows.All()
	if err != nil {
		t.Fatalf("All() failed: %v", err)
	}
	out := make([]map[string]any, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.ToNativeMap())
	}
	return out
}

func countRows(t *testing.T, tbl *Table) int {
	t.Helper()
	recs := mustGetAll(t, tbl, nil)
	return len(recs)
}
