package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a table conformance scenario: a sequence of store
// operations against a fresh table, followed by assertions on the final
// state.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden
	// snapshot file.
	Name string `yaml:"name"`

	// Description explains what this scenario exercises.
	Description string `yaml:"description"`

	// Steps are the operations to apply, in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final table state.
	// Supported types: row_count, contains, absent, column_exists
	Assertions []Assertion `yaml:"assertions"`
}

// Step is a single store operation.
type Step struct {
	// Op is one of: insert, update, delete, upsert, index.
	Op string `yaml:"op"`

	// Record holds the fields to write (insert, update, upsert).
	Record map[string]any `yaml:"record,omitempty"`

	// Match holds the criteria (update, delete, upsert).
	Match map[string]any `yaml:"match,omitempty"`

	// Column names the column to index (index).
	Column string `yaml:"column,omitempty"`
}

// Operation name constants.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
	OpUpsert = "upsert"
	OpIndex  = "index"
)

// Assertion validates the final table state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "row_count": the table holds exactly Count rows
	// - "contains": some row matches every field of Expect
	// - "absent": no row matches every field of Expect
	// - "column_exists": the table has a column named Column
	Type string `yaml:"type"`

	// Count is the expected row count (row_count).
	Count int `yaml:"count,omitempty"`

	// Expect holds expected field values; subset match against a row
	// (contains, absent).
	Expect map[string]any `yaml:"expect,omitempty"`

	// Column is the expected column name (column_exists).
	Column string `yaml:"column,omitempty"`
}

// Assertion type constants.
const (
	AssertRowCount     = "row_count"
	AssertContains     = "contains"
	AssertAbsent       = "absent"
	AssertColumnExists = "column_exists"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected, so a typo'd key fails loudly instead of silently skipping an
// assertion.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}
	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep validates a single step based on its op.
func validateStep(index int, s *Step) error {
	switch s.Op {
	case OpInsert:
		if s.Record == nil {
			return fmt.Errorf("steps[%d]: record is required for insert (use empty map for a row of defaults)", index)
		}
	case OpUpdate, OpUpsert:
		if len(s.Record) == 0 {
			return fmt.Errorf("steps[%d]: record is required for %s", index, s.Op)
		}
	case OpDelete:
		if len(s.Match) == 0 {
			return fmt.Errorf("steps[%d]: match is required for delete", index)
		}
	case OpIndex:
		if s.Column == "" {
			return fmt.Errorf("steps[%d]: column is required for index", index)
		}
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, s.Op)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertRowCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for row_count", index)
		}
	case AssertContains, AssertAbsent:
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for %s", index, a.Type)
		}
	case AssertColumnExists:
		if a.Column == "" {
			return fmt.Errorf("assertions[%d]: column is required for column_exists", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
