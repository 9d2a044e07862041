package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// StateSnapshot captures the final table state for golden comparison.
// Rows marshal with sorted keys, so the serialization is deterministic.
type StateSnapshot struct {
	ScenarioName string           `json:"scenario_name"`
	Columns      []string         `json:"columns"`
	Rows         []map[string]any `json:"rows"`
}

// RunWithGolden executes a scenario, requires every assertion to hold, and
// compares the final table state against a golden file stored in
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	for _, failure := range result.Failures {
		t.Error(failure)
	}

	snapshot := StateSnapshot{
		ScenarioName: scenario.Name,
		Columns:      result.Columns,
		Rows:         result.Rows,
	}
	stateJSON, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}
	stateJSON = append(stateJSON, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, stateJSON)

	return nil
}
