package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/graycode/internal/trace"
)

// Snapshot renders a scenario result as canonical JSON. Conversion IDs are
// left out; they are derived from fields that are already present.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	traceList := make([]any, len(result.Trace))
	for i, c := range result.Trace {
		traceList[i] = c.CanonicalMap()
	}

	snapshot := map[string]any{
		"scenario": scenarioName,
		"run_id":   result.RunID,
		"width":    result.Width,
		"trace":    traceList,
	}

	if len(result.Properties) > 0 {
		props := make([]any, len(result.Properties))
		for i, p := range result.Properties {
			m := map[string]any{
				"name":       p.Name,
				"pass":       p.Pass,
				"checked":    p.Checked,
				"exhaustive": p.Exhaustive,
			}
			if p.Failure != "" {
				m["failure"] = p.Failure
			}
			props[i] = m
		}
		snapshot["properties"] = props
	}

	return trace.MarshalCanonical(snapshot)
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	return result, AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an existing result against its golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}
