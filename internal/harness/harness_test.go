package harness

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/graycode/internal/trace"
)

func mustParse(t *testing.T, yaml string) *Scenario {
	t.Helper()
	scenario, err := ParseScenario([]byte(yaml))
	require.NoError(t, err)
	return scenario
}

func TestRun_Width8Examples(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/width8_examples.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "run-width8", result.RunID)
	assert.Equal(t, 8, result.Width)

	require.Len(t, result.Trace, 7)
	for i, c := range result.Trace {
		assert.Equal(t, int64(i+1), c.Seq)
		assert.Equal(t, "run-width8", c.RunID)
		assert.Len(t, c.ID, 64)
	}
	assert.Equal(t, trace.OpDecode, result.Trace[4].Op)
	assert.Equal(t, uint64(7), result.Trace[4].Output)
	assert.Equal(t, "OUT_OF_RANGE", result.Trace[6].ErrorCode)
}

func TestRun_ExpectationMismatch(t *testing.T) {
	scenario := mustParse(t, `
name: wrong
description: deliberately wrong expectations
steps:
  - encode: 0b00000111
    expect: 0b00000111
  - encode: 300
  - encode: 3
    expect_error: OUT_OF_RANGE
`)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, "steps[0]: encode(0b111): expected 0b00000111, got 0b00000100", result.Errors[0])
	assert.Equal(t, "steps[1]: encode(300): unexpected error OUT_OF_RANGE", result.Errors[1])
	assert.Equal(t, "steps[2]: encode(3): expected error OUT_OF_RANGE, got 2", result.Errors[2])
	assert.Len(t, result.Trace, 3, "failed steps are still recorded")
}

func TestRun_DefaultRunID(t *testing.T) {
	result, err := Run(mustParse(t, "name: n\ndescription: d\nsteps: [{encode: 1}]"))
	require.NoError(t, err)
	assert.Equal(t, "run-default", result.RunID)
}

func TestRun_Deterministic(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/width64_properties.yaml")
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	a, err := Snapshot(scenario.Name, first)
	require.NoError(t, err)
	b, err := Snapshot(scenario.Name, second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.True(t, first.Pass, "errors: %v", first.Errors)
}

func TestRunWithOptions_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	scenario := mustParse(t, "name: logged\ndescription: d\nsteps: [{decode: 4}]\nproperties: [top_bit]")
	result, err := RunWithOptions(context.Background(), scenario, Options{Logger: logger, Seed: 5})
	require.NoError(t, err)
	assert.True(t, result.Pass)

	out := buf.String()
	assert.Contains(t, out, "step executed")
	assert.Contains(t, out, "scenario=logged")
	assert.Contains(t, out, "property checked")
}

func TestRun_InvalidWidth(t *testing.T) {
	_, err := Run(&Scenario{Name: "bad", Width: 0})
	assert.ErrorContains(t, err, "INVALID_WIDTH")
}

func TestResult_AddError(t *testing.T) {
	r := NewResult()
	assert.True(t, r.Pass)
	r.AddError("boom")
	assert.False(t, r.Pass)
	assert.Equal(t, []string{"boom"}, r.Errors)
}
