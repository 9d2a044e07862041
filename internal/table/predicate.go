package table

import (
	"strings"

	"github.com/roach88/flextable/internal/record"
)

// mkAnds builds the conjunctive equality clause for a WHERE statement from
// a matching map, with the values to bind. Fields are processed in sorted
// order so repeated construction is reproducible regardless of map
// iteration order.
//
// A Null expected value emits a literal `name = NULL` with no bind. Under
// three-valued null logic that comparison never matches on most engines;
// it is an observable contract of the existing queries and is kept as-is
// rather than rewritten to IS NULL.
//
// An empty matching map yields an empty clause and no values; the caller
// omits the WHERE clause entirely.
func mkAnds(matching record.Record) (string, []any) {
	var clauses []string
	var vals []any
	for _, name := range matching.SortedFields() {
		if record.IsNull(matching[name]) {
			clauses = append(clauses, EscapeIdentifier(name)+" = NULL ")
		} else {
			clauses = append(clauses, EscapeIdentifier(name)+" = ? ")
			vals = append(vals, record.ToNative(matching[name]))
		}
	}
	return strings.Join(clauses, " AND "), vals
}

// whereClause wraps a mkAnds fragment into a full WHERE clause, or returns
// the empty string for an empty fragment.
func whereClause(ands string) string {
	if ands == "" {
		return ""
	}
	return " WHERE " + ands
}
