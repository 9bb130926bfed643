package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversionID_Deterministic(t *testing.T) {
	id1, err := ConversionID("run-1", OpEncode, 8, 7, 1)
	require.NoError(t, err)
	id2, err := ConversionID("run-1", OpEncode, 8, 7, 1)
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.Len(t, id1, 64)
}

func TestConversionID_DistinctInputs(t *testing.T) {
	base, _ := ConversionID("run-1", OpEncode, 8, 7, 1)

	variants := map[string]func() (string, error){
		"run":   func() (string, error) { return ConversionID("run-2", OpEncode, 8, 7, 1) },
		"op":    func() (string, error) { return ConversionID("run-1", OpDecode, 8, 7, 1) },
		"width": func() (string, error) { return ConversionID("run-1", OpEncode, 9, 7, 1) },
		"input": func() (string, error) { return ConversionID("run-1", OpEncode, 8, 6, 1) },
		"seq":   func() (string, error) { return ConversionID("run-1", OpEncode, 8, 7, 2) },
	}

	for name, fn := range variants {
		t.Run(name, func(t *testing.T) {
			id, err := fn()
			require.NoError(t, err)
			assert.NotEqual(t, base, id)
		})
	}
}

func TestOp_Valid(t *testing.T) {
	assert.True(t, OpEncode.Valid())
	assert.True(t, OpDecode.Valid())
	assert.False(t, Op("invert").Valid())
}

func TestConversion_CanonicalMap(t *testing.T) {
	ok := Conversion{Seq: 1, Op: OpEncode, Input: 7, Output: 4}
	got, err := MarshalCanonical(ok.CanonicalMap())
	require.NoError(t, err)
	assert.Equal(t, `{"input":7,"op":"encode","output":4,"seq":1}`, string(got))

	rejected := Conversion{Seq: 2, Op: OpDecode, Input: 256, ErrorCode: "OUT_OF_RANGE"}
	got, err = MarshalCanonical(rejected.CanonicalMap())
	require.NoError(t, err)
	assert.Equal(t, `{"error":"OUT_OF_RANGE","input":256,"op":"decode","seq":2}`, string(got))
}
