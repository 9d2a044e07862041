package table

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/flextable/internal/record"
)

func TestInsertEncode_OmitsNullFields(t *testing.T) {
	cols, placeholders, vals := insertEncode(record.Record{
		"a": record.Int(42),
		"b": record.Null{},
		"c": record.Text("foo"),
	})

	assert.Equal(t, []string{`"a"`, `"c"`}, cols)
	assert.Equal(t, []string{"?", "?"}, placeholders)
	assert.Equal(t, []any{int64(42), "foo"}, vals)
}

func TestInsertEncode_AllNull(t *testing.T) {
	cols, placeholders, vals := insertEncode(record.Record{"a": record.Null{}})

	assert.Empty(t, cols)
	assert.Empty(t, placeholders)
	assert.Empty(t, vals)
}

func TestUpdateEncode_NullBecomesLiteralAssignment(t *testing.T) {
	assignments, vals := updateEncode(record.Record{
		"a": record.Null{},
		"b": record.Text("x"),
	})

	assert.Equal(t, []string{`"a" = NULL`, `"b" = ?`}, assignments)
	assert.Equal(t, []any{"x"}, vals)
}

func TestBuildInsert(t *testing.T) {
	stmt, vals := buildInsert("t", record.Record{"a": record.Int(1), "b": record.Text("x")})

	assert.Equal(t, `INSERT INTO "t" ("a","b") VALUES (?,?)`, stmt)
	assert.Equal(t, []any{int64(1), "x"}, vals)
}

func TestBuildInsert_AllNullUsesDefaults(t *testing.T) {
	stmt, vals := buildInsert("t", record.Record{"a": record.Null{}})

	assert.Equal(t, `INSERT INTO "t" DEFAULT VALUES`, stmt)
	assert.Empty(t, vals)
}
