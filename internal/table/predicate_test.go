package table

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/flextable/internal/record"
)

func TestMkAnds_SortedFields(t *testing.T) {
	clause, vals := mkAnds(record.Record{"a": record.Int(1), "b": record.Int(2)})

	assert.Equal(t, `"a" = ?  AND "b" = ? `, clause)
	assert.Equal(t, []any{int64(1), int64(2)}, vals)
}

func TestMkAnds_Deterministic(t *testing.T) {
	// Identical output regardless of map construction order.
	c1, _ := mkAnds(record.Record{"b": record.Int(2), "a": record.Int(1)})
	c2, _ := mkAnds(record.Record{"a": record.Int(1), "b": record.Int(2)})

	assert.Equal(t, c1, c2)
	assert.Equal(t, `"a" = ?  AND "b" = ? `, c1)
}

func TestMkAnds_NullIsLiteral(t *testing.T) {
	// Null matches render as a literal `= NULL`, unbound. Kept as-is, not
	// rewritten to IS NULL.
	clause, vals := mkAnds(record.Record{"a": record.Null{}})

	assert.Equal(t, `"a" = NULL `, clause)
	assert.Empty(t, vals)
}

func TestMkAnds_MixedNullAndValue(t *testing.T) {
	clause, vals := mkAnds(record.Record{"a": record.Null{}, "b": record.Int(2)})

	assert.Equal(t, `"a" = NULL  AND "b" = ? `, clause)
	assert.Equal(t, []any{int64(2)}, vals)
}

func TestMkAnds_Empty(t *testing.T) {
	clause, vals := mkAnds(record.Record{})

	assert.Empty(t, clause)
	assert.Empty(t, vals)
	assert.Empty(t, whereClause(clause))
}

func TestMkAnds_EscapesIdentifiers(t *testing.T) {
	clause, _ := mkAnds(record.Record{"group": record.Text("sf")})

	assert.Equal(t, `"group" = ? `, clause)
}

func TestWhereClause(t *testing.T) {
	assert.Equal(t, "", whereClause(""))
	assert.Equal(t, ` WHERE "a" = ? `, whereClause(`"a" = ? `))
}
