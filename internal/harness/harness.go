package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/graycode/internal/gray"
	"github.com/roach88/graycode/internal/numfmt"
	"github.com/roach88/graycode/internal/store"
	"github.com/roach88/graycode/internal/testutil"
	"github.com/roach88/graycode/internal/trace"
)

// Options tune a harness run. The zero value is ready to use.
type Options struct {
	// Logger receives per-step debug logs. Defaults to a discarding logger.
	Logger *slog.Logger

	// Seed seeds property sampling for widths above ExhaustiveLimit.
	// Zero means DefaultSeed.
	Seed uint64
}

// Harness executes one scenario against a private store.
type Harness struct {
	store  *store.Store
	codec  *gray.Codec[uint64]
	clock  *testutil.SeqClock
	runID  string
	logger *slog.Logger
}

// Run executes a scenario with default options.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithOptions(context.Background(), scenario, Options{})
}

// RunWithOptions executes a scenario and returns its result.
//
// Execution flow:
//  1. Build the codec for the scenario width
//  2. Open a fresh in-memory store and record the run
//  3. Execute each step, recording a conversion and checking expectations
//  4. Read the trace back from the store
//  5. Run the requested property checks
//
// The returned error covers infrastructure failures only. Failed
// expectations and properties are reported through Result.
func RunWithOptions(ctx context.Context, scenario *Scenario, opts Options) (*Result, error) {
	codec, err := gray.New[uint64](scenario.Width)
	if err != nil {
		return nil, fmt.Errorf("building codec: %w", err)
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	seed := opts.Seed
	if seed == 0 {
		seed = DefaultSeed
	}

	gen := trace.NewFixedGenerator()
	if scenario.RunID != "" {
		gen = trace.NewFixedGenerator(scenario.RunID)
	}

	h := &Harness{
		store:  st,
		codec:  codec,
		clock:  testutil.NewSeqClock(),
		runID:  gen.Generate(),
		logger: logger.With("scenario", scenario.Name),
	}

	run := trace.Run{ID: h.runID, Width: codec.Width(), Label: scenario.Name, FormatVersion: trace.FormatVersion}
	if err := st.WriteRun(ctx, run); err != nil {
		return nil, err
	}

	result := NewResult()
	result.RunID = h.runID
	result.Width = codec.Width()

	for i, step := range scenario.Steps {
		if err := h.executeStep(ctx, i, step, result); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}

	result.Trace, err = st.ReadConversions(ctx, h.runID)
	if err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}

	for _, name := range scenario.Properties {
		pr, err := CheckProperty(codec, name, seed)
		if err != nil {
			return nil, err
		}
		h.logger.Debug("property checked", "property", name, "pass", pr.Pass, "checked", pr.Checked)
		result.Properties = append(result.Properties, pr)
		if !pr.Pass {
			result.AddError(fmt.Sprintf("property %s failed: %s", name, pr.Failure))
		}
	}

	return result, nil
}

// executeStep records one conversion and compares it with the step's
// expectation.
func (h *Harness) executeStep(ctx context.Context, index int, step Step, result *Result) error {
	op, input := step.Op()

	seq := h.clock.Next()
	c := store.Apply(h.codec, op, input.Value)
	id, err := trace.ConversionID(h.runID, op, h.codec.Width(), input.Value, seq)
	if err != nil {
		return err
	}
	c.ID, c.RunID, c.Seq = id, h.runID, seq

	if err := h.store.WriteConversion(ctx, c); err != nil {
		return err
	}
	h.logger.Debug("step executed", "seq", seq, "op", op, "input", input.Value, "output", c.Output, "error_code", c.ErrorCode)

	switch {
	case step.ExpectError != "":
		if c.ErrorCode != step.ExpectError {
			got := c.ErrorCode
			if got == "" {
				got = numfmt.Format(c.Output, input.Base, h.codec.Width())
			}
			result.AddError(fmt.Sprintf("steps[%d]: %s(%s): expected error %s, got %s", index, op, input, step.ExpectError, got))
		}
	case c.ErrorCode != "":
		result.AddError(fmt.Sprintf("steps[%d]: %s(%s): unexpected error %s", index, op, input, c.ErrorCode))
	case step.Expect != nil && c.Output != step.Expect.Value:
		result.AddError(fmt.Sprintf("steps[%d]: %s(%s): expected %s, got %s", index, op, input,
			numfmt.Format(step.Expect.Value, step.Expect.Base, h.codec.Width()),
			numfmt.Format(c.Output, step.Expect.Base, h.codec.Width())))
	}
	return nil
}
