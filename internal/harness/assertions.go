package harness

import (
	"fmt"
	"reflect"

	"github.com/roach88/flextable/internal/record"
)

// checkAssertion evaluates one assertion against the final state and
// returns a failure message, or "" when the assertion holds.
func checkAssertion(result *Result, a *Assertion) string {
	switch a.Type {
	case AssertRowCount:
		if len(result.Rows) != a.Count {
			return fmt.Sprintf("expected %d rows, got %d", a.Count, len(result.Rows))
		}
	case AssertContains:
		if !anyRowMatches(result.Rows, a.Expect) {
			return fmt.Sprintf("no row matches %v", a.Expect)
		}
	case AssertAbsent:
		if anyRowMatches(result.Rows, a.Expect) {
			return fmt.Sprintf("a row matches %v", a.Expect)
		}
	case AssertColumnExists:
		for _, col := range result.Columns {
			if col == a.Column {
				return ""
			}
		}
		return fmt.Sprintf("column %q not found in %v", a.Column, result.Columns)
	}
	return ""
}

// anyRowMatches reports whether some row carries every expected field.
func anyRowMatches(rows []map[string]any, expect map[string]any) bool {
	for _, row := range rows {
		if rowMatches(row, expect) {
			return true
		}
	}
	return false
}

// rowMatches reports whether the row carries every expected field. Expected
// values are normalized through the record layer first, so a YAML `42`
// compares equal to the int64 the store hands back.
func rowMatches(row map[string]any, expect map[string]any) bool {
	for name, want := range expect {
		got, ok := row[name]
		if !ok {
			return false
		}
		val, err := record.FromNative(want)
		if err != nil {
			return false
		}
		if !reflect.DeepEqual(record.ToNative(val), got) {
			return false
		}
	}
	return true
}
