package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/roach88/graycode/internal/gray"
	"github.com/roach88/graycode/internal/trace"
)

// Mismatch describes a recorded conversion that replays differently.
type Mismatch struct {
	Seq      int64    `json:"seq"`
	Op       trace.Op `json:"op"`
	Input    uint64   `json:"input"`
	Recorded string   `json:"recorded"`
	Replayed string   `json:"replayed"`
}

// ReplayResult summarizes the replay of one run.
type ReplayResult struct {
	RunID       string     `json:"run_id"`
	Width       int        `json:"width"`
	Conversions int        `json:"conversions"`
	Rejected    int        `json:"rejected"`
	Mismatches  []Mismatch `json:"mismatches,omitempty"`
}

// Deterministic reports whether every conversion replayed identically.
func (r ReplayResult) Deterministic() bool {
	return len(r.Mismatches) == 0
}

// Replay re-executes every conversion of a run through a fresh codec of the
// run's width and compares outputs and error codes with the log.
func (s *Store) Replay(ctx context.Context, runID string) (ReplayResult, error) {
	run, err := s.ReadRun(ctx, runID)
	if err != nil {
		return ReplayResult{}, err
	}

	conversions, err := s.ReadConversions(ctx, runID)
	if err != nil {
		return ReplayResult{}, err
	}

	result := ReplayResult{RunID: runID, Width: run.Width, Conversions: len(conversions)}
	for _, c := range conversions {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		codec, err := gray.New[uint64](c.Width)
		if err != nil {
			return result, fmt.Errorf("replay seq %d: %w", c.Seq, err)
		}

		replayed := Apply(codec, c.Op, c.Input)
		if c.ErrorCode != "" {
			result.Rejected++
		}
		if outcome(replayed) != outcome(c) {
			result.Mismatches = append(result.Mismatches, Mismatch{
				Seq:      c.Seq,
				Op:       c.Op,
				Input:    c.Input,
				Recorded: outcome(c),
				Replayed: outcome(replayed),
			})
		}
	}
	return result, nil
}

// Apply runs one conversion and reports its outcome in record form. The
// returned Conversion carries Op, Width, Input, Output and ErrorCode; the
// caller fills in identity fields.
func Apply(codec *gray.Codec[uint64], op trace.Op, input uint64) trace.Conversion {
	c := trace.Conversion{Op: op, Width: codec.Width(), Input: input}

	var err error
	switch op {
	case trace.OpEncode:
		c.Output, err = codec.Encode(input)
	case trace.OpDecode:
		c.Output, err = codec.Decode(input)
	default:
		err = fmt.Errorf("unknown op %q", op)
	}

	if err != nil {
		c.Output = 0
		c.ErrorCode = errorCode(err)
	}
	return c
}

// outcome renders the result of a conversion as either its output or its
// error code.
func outcome(c trace.Conversion) string {
	if c.ErrorCode != "" {
		return c.ErrorCode
	}
	return strconv.FormatUint(c.Output, 10)
}

func errorCode(err error) string {
	switch {
	case gray.IsRangeError(err):
		return string(gray.ErrCodeOutOfRange)
	case gray.IsConfigurationError(err):
		return string(gray.ErrCodeInvalidWidth)
	default:
		return "UNKNOWN_OP"
	}
}
