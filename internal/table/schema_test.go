package table

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/roach88/flextable/internal/record"
)

func TestExpand_InfersStorageKinds(t *testing.T) {
	tbl := createTestTable(t, Options{})
	ctx := context.Background()

	rec, err := record.FromNativeMap(map[string]any{
		"i": 42,
		"f": 3.14,
		"s": "x",
		"b": []byte{0x1},
	})
	if err != nil {
		t.Fatalf("FromNativeMap() failed: %v", err)
	}
	if err := tbl.Expand(ctx, rec); err != nil {
		t.Fatalf("Expand() failed: %v", err)
	}

	kinds := getColumnKinds(t, tbl)
	want := map[string]string{
		"i": "INTEGER",
		"f": "REAL",
		"s": "TEXT",
		"b": "BLOB",
	}
	for col, kind := range want {
		if kinds[col] != kind {
			t.Errorf("column %q kind = %q, want %q", col, kinds[col], kind)
		}
	}

	for _, col := range []string{"i", "f", "s", "b", "rowid"} {
		if !tbl.knownColumn(col) {
			t.Errorf("snapshot missing column %q", col)
		}
	}
}

func TestExpand_SkipsNullFields(t *testing.T) {
	tbl := createTestTable(t, Options{})

	rec := record.Record{"present": record.Int(1), "absent": record.Null{}}
	if err := tbl.Expand(context.Background(), rec); err != nil {
		t.Fatalf("Expand() failed: %v", err)
	}

	if !tbl.knownColumn("present") {
		t.Error("expected column for non-null field")
	}
	if tbl.knownColumn("absent") {
		t.Error("no column should be created for a null-only field")
	}
}

func TestExpand_CaseInsensitiveSkip(t *testing.T) {
	tbl := createTestTable(t, Options{})
	ctx := context.Background()

	if err := tbl.Expand(ctx, record.Record{"Name": record.Text("a")}); err != nil {
		t.Fatalf("first Expand() failed: %v", err)
	}
	// A differently-cased field must not create a second column.
	if err := tbl.Expand(ctx, record.Record{"NAME": record.Text("b")}); err != nil {
		t.Fatalf("second Expand() failed: %v", err)
	}

	kinds := getColumnKinds(t, tbl)
	count := 0
	for col := range kinds {
		if strings.EqualFold(col, "name") {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one name column, kinds: %v", kinds)
	}
}

func TestExpand_KindFixedAtCreation(t *testing.T) {
	tbl := createTestTable(t, Options{})
	ctx := context.Background()

	if err := tbl.Expand(ctx, record.Record{"v": record.Int(1)}); err != nil {
		t.Fatalf("Expand() failed: %v", err)
	}
	// Same field with a different type: column already exists, kind stays.
	if err := tbl.Expand(ctx, record.Record{"v": record.Text("now text")}); err != nil {
		t.Fatalf("second Expand() failed: %v", err)
	}

	kinds := getColumnKinds(t, tbl)
	if kinds["v"] != "INTEGER" {
		t.Errorf("column kind changed to %q, want INTEGER", kinds["v"])
	}
}

func TestExpand_AutoIndexesNewColumns(t *testing.T) {
	tbl := createTestTable(t, Options{IndexAllColumns: true})

	if err := tbl.Expand(context.Background(), record.Record{"a": record.Int(1)}); err != nil {
		t.Fatalf("Expand() failed: %v", err)
	}

	if !hasIndex(t, tbl.db, "index_t_a") {
		t.Error("expected auto-created index index_t_a")
	}
}

func TestSchemaMonotonicity(t *testing.T) {
	tbl := createTestTable(t, Options{})

	inserted := []map[string]any{
		{"a": 1},
		{"b": "x", "c": 2.5},
		{"a": 2, "d": []byte{0xff}},
	}
	for _, fields := range inserted {
		mustInsert(t, tbl, fields)
	}

	for _, col := range []string{"a", "b", "c", "d"} {
		if !tbl.knownColumn(col) {
			t.Errorf("known-columns set missing inserted field %q", col)
		}
	}
}

func TestColumns_RefreshPicksUpDrift(t *testing.T) {
	tbl := createTestTable(t, Options{})
	ctx := context.Background()

	// Another writer alters the schema out from under the snapshot.
	if _, err := tbl.db.Exec(`ALTER TABLE "t" ADD COLUMN drift TEXT default NULL`); err != nil {
		t.Fatalf("out-of-band alter failed: %v", err)
	}
	if tbl.knownColumn("drift") {
		t.Fatal("snapshot updated without a refresh")
	}

	// Any expand refreshes from metadata, not incrementally.
	if err := tbl.Expand(ctx, record.Record{"other": record.Int(1)}); err != nil {
		t.Fatalf("Expand() failed: %v", err)
	}
	if !tbl.knownColumn("drift") {
		t.Error("refresh did not pick up schema drift")
	}
}

func TestExpand_EngineRejection(t *testing.T) {
	tbl := createTestTable(t, Options{})

	// A second column differing only in case at the engine level: simulate
	// by adding the column out-of-band so the stale snapshot misses it.
	if _, err := tbl.db.Exec(`ALTER TABLE "t" ADD COLUMN dup TEXT default NULL`); err != nil {
		t.Fatalf("out-of-band alter failed: %v", err)
	}

	err := tbl.Expand(context.Background(), record.Record{"dup": record.Text("x")})
	if err == nil {
		t.Fatal("expected SchemaError for duplicate column, got nil")
	}
	if !IsSchemaError(err) {
		t.Errorf("expected SchemaError, got %v", err)
	}
}

// getColumnKinds reads column name -> declared type from engine metadata.
func getColumnKinds(t *testing.T, tbl *Table) map[string]string {
	t.Helper()

	rows, err := tbl.db.Query("SELECT name, type FROM pragma_table_info(?)", tbl.name)
	if err != nil {
		t.Fatalf("pragma_table_info failed: %v", err)
	}
	defer rows.Close()

	kinds := make(map[string]string)
	for rows.Next() {
		var name, ctype string
		if err := rows.Scan(&name, &ctype); err != nil {
			t.Fatalf("scan column info: %v", err)
		}
		kinds[name] = ctype
	}
	return kinds
}

func hasIndex(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()

	var found string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='index' AND name=?", name,
	).Scan(&found)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		t.Fatalf("index lookup failed: %v", err)
	}
	return true
}
