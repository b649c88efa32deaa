package harness

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/qglitch/internal/circuit"
	"github.com/roach88/qglitch/internal/inject"
)

// Snapshot captures a scenario outcome for golden comparison.
// Serialization relies on struct field order for determinism; no map-keyed
// data participates.
type Snapshot struct {
	ScenarioName string           `json:"scenario_name"`
	Circuit      *circuit.Circuit `json:"circuit"`
	Records      []*inject.Record `json:"records,omitempty"`
}

// RunWithGolden executes a scenario and compares the outcome against a
// golden file at testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Only pin scenarios whose mutations are fully forced (every injection step
// has exactly one candidate); otherwise the golden bakes in incidental
// random draws.
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the outcome doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	snapshot := Snapshot{
		ScenarioName: scenario.Name,
		Circuit:      result.Final,
		Records:      result.Records,
	}
	data, err := json.MarshalIndent(&snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result, nil
}
