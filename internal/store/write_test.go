package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/graycode/internal/trace"
)

func conversion(t *testing.T, runID string, seq int64, op trace.Op, width int, in, out uint64) trace.Conversion {
	t.Helper()
	id, err := trace.ConversionID(runID, op, width, in, seq)
	require.NoError(t, err)
	return trace.Conversion{ID: id, RunID: runID, Seq: seq, Op: op, Width: width, Input: in, Output: out}
}

func TestWriteConversion_RoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	run := trace.Run{ID: "run-1", Width: 8, Label: "unit", FormatVersion: trace.FormatVersion}
	require.NoError(t, s.WriteRun(ctx, run))

	c1 := conversion(t, "run-1", 1, trace.OpEncode, 8, 7, 4)
	c2 := conversion(t, "run-1", 2, trace.OpDecode, 8, 4, 7)
	require.NoError(t, s.WriteConversion(ctx, c2))
	require.NoError(t, s.WriteConversion(ctx, c1))

	gotRun, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run, gotRun)

	got, err := s.ReadConversions(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, []trace.Conversion{c1, c2}, got, "ordered by seq regardless of insert order")
}

func TestWriteConversion_Idempotent(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.WriteRun(ctx, trace.Run{ID: "run-1", Width: 8, FormatVersion: trace.FormatVersion}))
	c := conversion(t, "run-1", 1, trace.OpEncode, 8, 7, 4)

	require.NoError(t, s.WriteConversion(ctx, c))
	require.NoError(t, s.WriteConversion(ctx, c))

	got, err := s.ReadConversions(ctx, "run-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestWriteConversion_RequiresRun(t *testing.T) {
	s := openTemp(t)
	c := conversion(t, "missing", 1, trace.OpEncode, 8, 1, 1)

	err := s.WriteConversion(context.Background(), c)
	assert.Error(t, err, "foreign key should reject unknown run")
}

func TestWriteConversion_RejectsUnknownOp(t *testing.T) {
	s := openTemp(t)
	err := s.WriteConversion(context.Background(), trace.Conversion{ID: "x", RunID: "r", Op: "invert"})
	assert.ErrorContains(t, err, "unknown op")
}

func TestWriteConversions_FullUint64Range(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.WriteRun(ctx, trace.Run{ID: "wide", Width: 64, FormatVersion: trace.FormatVersion}))
	batch := []trace.Conversion{
		conversion(t, "wide", 1, trace.OpEncode, 64, ^uint64(0), 1<<63),
		conversion(t, "wide", 2, trace.OpDecode, 64, 1<<63, ^uint64(0)),
	}
	require.NoError(t, s.WriteConversions(ctx, batch))

	got, err := s.ReadConversions(ctx, "wide")
	require.NoError(t, err)
	assert.Equal(t, batch, got)
}

func TestReadRun_NotFound(t *testing.T) {
	s := openTemp(t)
	_, err := s.ReadRun(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestReadConversions_EmptyRun(t *testing.T) {
	s := openTemp(t)
	got, err := s.ReadConversions(context.Background(), "nope")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListRuns(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	ids, err := s.ListRuns(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	for _, id := range []string{"b", "a", "c"} {
		require.NoError(t, s.WriteRun(ctx, trace.Run{ID: id, Width: 4, FormatVersion: trace.FormatVersion}))
	}
	ids, err = s.ListRuns(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}
