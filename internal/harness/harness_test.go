package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenariosGolden(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths, "no scenario files found")

	for _, path := range paths {
		scenario, err := LoadScenario(path)
		require.NoError(t, err, "loading %s", path)

		t.Run(scenario.Name, func(t *testing.T) {
			require.NoError(t, RunWithGolden(t, scenario))
		})
	}
}

func TestRun_AssertionFailureCollected(t *testing.T) {
	scenario := &Scenario{
		Name:        "failing",
		Description: "row_count mismatch is reported, not fatal",
		Steps: []Step{
			{Op: OpInsert, Record: map[string]any{"name": "bob"}},
		},
		Assertions: []Assertion{
			{Type: AssertRowCount, Count: 2},
			{Type: AssertContains, Expect: map[string]any{"name": "bob"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Passed)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0], "row_count")
}

func TestRun_StepErrorAborts(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad-step",
		Description: "a failing step aborts the run",
		Steps: []Step{
			{Op: OpInsert, Record: map[string]any{"name": "bob"}},
			{Op: OpIndex, Column: "does not exist"},
		},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps[1]")
}

func TestRun_IndexStep(t *testing.T) {
	scenario := &Scenario{
		Name:        "indexed",
		Description: "index step succeeds on an existing column",
		Steps: []Step{
			{Op: OpInsert, Record: map[string]any{"name": "bob"}},
			{Op: OpIndex, Column: "name"},
		},
		Assertions: []Assertion{
			{Type: AssertColumnExists, Column: "name"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Passed)
}
