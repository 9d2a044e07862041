// Package harness runs table conformance scenarios.
//
// A scenario is a YAML file describing a sequence of store operations
// against a fresh table plus assertions on the final state. Scenarios run
// against an in-memory database, so they are fast and fully isolated; the
// final table contents can additionally be compared against a golden
// snapshot for exact, reviewable expected output.
package harness

import (
	"context"
	"fmt"
	"sort"

	"github.com/roach88/flextable/internal/record"
	"github.com/roach88/flextable/internal/table"
)

// scenarioTable is the table name every scenario runs against.
const scenarioTable = "t"

// Result holds the outcome of running a scenario.
type Result struct {
	// Passed is true when every assertion held.
	Passed bool

	// Failures describes each assertion that did not hold.
	Failures []string

	// Columns is the final column list, sorted.
	Columns []string

	// Rows is the final table contents in insertion order, as native
	// values.
	Rows []map[string]any
}

// Run executes a scenario against a fresh in-memory table and returns the
// final state with assertion results. Step errors abort the run; assertion
// failures do not, they are collected in the result.
func Run(scenario *Scenario) (*Result, error) {
	tbl, err := table.Open(":memory:", scenarioTable, table.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory table: %w", err)
	}
	defer tbl.Close()

	ctx := context.Background()

	for i, step := range scenario.Steps {
		if err := executeStep(ctx, tbl, &step); err != nil {
			return nil, fmt.Errorf("steps[%d] (%s): %w", i, step.Op, err)
		}
	}

	result, err := snapshotState(ctx, tbl)
	if err != nil {
		return nil, err
	}

	result.Passed = true
	for i, assertion := range scenario.Assertions {
		if msg := checkAssertion(result, &assertion); msg != "" {
			result.Passed = false
			result.Failures = append(result.Failures,
				fmt.Sprintf("assertions[%d] (%s): %s", i, assertion.Type, msg))
		}
	}

	return result, nil
}

// executeStep applies one operation to the table.
func executeStep(ctx context.Context, tbl *table.Table, step *Step) error {
	rec, err := record.FromNativeMap(step.Record)
	if err != nil {
		return fmt.Errorf("record: %w", err)
	}
	match, err := record.FromNativeMap(step.Match)
	if err != nil {
		return fmt.Errorf("match: %w", err)
	}

	switch step.Op {
	case OpInsert:
		return tbl.Insert(ctx, rec)
	case OpUpdate:
		_, err := tbl.Update(ctx, match, rec)
		return err
	case OpDelete:
		_, err := tbl.Delete(ctx, match)
		return err
	case OpUpsert:
		return tbl.Upsert(ctx, match, rec)
	case OpIndex:
		return tbl.Index(ctx, step.Column)
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
}

// snapshotState reads the final column list and every row. Columns come
// back sorted so snapshots are stable.
func snapshotState(ctx context.Context, tbl *table.Table) (*Result, error) {
	colSet, err := tbl.Columns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	cols := make([]string, 0, len(colSet))
	for c := range colSet {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	rows, err := tbl.Get(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	defer rows.Close()

	recs, err := rows.All()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	native := make([]map[string]any, 0, len(recs))
	for _, rec := range recs {
		native = append(native, rec.ToNativeMap())
	}

	return &Result{Columns: cols, Rows: native}, nil
}
