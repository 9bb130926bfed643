package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/graycode/internal/store"
	"github.com/roach88/graycode/internal/trace"
)

func TestEncode_Text(t *testing.T) {
	tests := []struct {
		name  string
		width int
		args  []string
		want  string
	}{
		{"decimal", 0, []string{"5"}, "7\n"},
		{"keeps input base", 0, []string{"0x0F", "0b101", "0o17"}, "0x08\n0b00000111\n0o010\n"},
		{"narrow binary", 4, []string{"0b1011"}, "0b1110\n"},
		{"narrow hex", 4, []string{"0xF"}, "0x8\n"},
		{"full 64-bit", 64, []string{"0xFFFFFFFFFFFFFFFF"}, "0x8000000000000000\n"},
		{"width 1", 1, []string{"0", "1"}, "0\n1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &RootOptions{Format: "text", Width: tt.width}
			out, _, err := execute(t, NewEncodeCommand(opts), tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestDecode_Text(t *testing.T) {
	opts := &RootOptions{Format: "text"}
	out, _, err := execute(t, NewDecodeCommand(opts), "0b00000111", "4", "0x80")
	require.NoError(t, err)
	assert.Equal(t, "0b00000101\n7\n0xff\n", out)
}

func TestEncode_BaseOverride(t *testing.T) {
	opts := &RootOptions{Format: "text"}
	out, _, err := execute(t, NewEncodeCommand(opts), "--base", "bin", "12")
	require.NoError(t, err)
	assert.Equal(t, "0b00001010\n", out)
}

func TestEncode_InvalidBase(t *testing.T) {
	opts := &RootOptions{Format: "text"}
	_, errOut, err := execute(t, NewEncodeCommand(opts), "--base", "b64", "12")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "Error [E002]")
}

func TestEncode_OutOfRangeRejected(t *testing.T) {
	opts := &RootOptions{Format: "text"}
	out, errOut, err := execute(t, NewEncodeCommand(opts), "1", "256")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, IsReported(err))
	assert.Empty(t, out, "no partial output before the rejected value")
	assert.Contains(t, errOut, "Error [E003]: value 256 does not fit in 8 bits")
}

func TestDecode_OutOfRangeRejected(t *testing.T) {
	opts := &RootOptions{Format: "text", Width: 3}
	_, errOut, err := execute(t, NewDecodeCommand(opts), "0b1000")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "does not fit in 3 bits")
}

func TestEncode_MalformedInput(t *testing.T) {
	for _, arg := range []string{"0xZZ", "-1", "1_", "18446744073709551616"} {
		t.Run(arg, func(t *testing.T) {
			opts := &RootOptions{Format: "text"}
			_, errOut, err := execute(t, NewEncodeCommand(opts), arg)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, errOut, "Error [E002]")
		})
	}
}

func TestEncode_InvalidWidth(t *testing.T) {
	opts := &RootOptions{Format: "text", Width: 65}
	_, errOut, err := execute(t, NewEncodeCommand(opts), "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "Error [E004]")
}

func TestEncode_MissingArgs(t *testing.T) {
	opts := &RootOptions{Format: "text"}
	_, _, err := execute(t, NewEncodeCommand(opts))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestEncode_JSON(t *testing.T) {
	opts := &RootOptions{Format: "json"}
	out, _, err := execute(t, NewEncodeCommand(opts), "0x05", "200")
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   ConvertResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, trace.OpEncode, resp.Data.Op)
	assert.Equal(t, 8, resp.Data.Width)
	assert.Empty(t, resp.Data.RunID)
	assert.Equal(t, []ConvertItem{
		{Input: "0x05", Output: "0x07", Value: 5, Result: 7},
		{Input: "200", Output: "172", Value: 200, Result: 172},
	}, resp.Data.Results)
}

func TestEncode_JSONError(t *testing.T) {
	opts := &RootOptions{Format: "json"}
	out, _, err := execute(t, NewEncodeCommand(opts), "300")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeOutOfRange, resp.Error.Code)
}

func TestEncode_RecordsRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "graycode.db")
	opts := &RootOptions{Format: "text", RunIDs: trace.NewFixedGenerator("run-1")}

	out, _, err := execute(t, NewEncodeCommand(opts), "--db", dbPath, "--label", "sensor", "3", "0b1")
	require.NoError(t, err)
	assert.Equal(t, "2\n0b00000001\n", out)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	run, err := st.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 8, run.Width)
	assert.Equal(t, "sensor", run.Label)
	assert.Equal(t, trace.FormatVersion, run.FormatVersion)

	conversions, err := st.ReadConversions(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, conversions, 2)
	assert.Equal(t, int64(1), conversions[0].Seq)
	assert.Equal(t, uint64(3), conversions[0].Input)
	assert.Equal(t, uint64(2), conversions[0].Output)
	assert.Equal(t, int64(2), conversions[1].Seq)
	assert.Equal(t, trace.OpEncode, conversions[1].Op)

	wantID, err := trace.ConversionID("run-1", trace.OpEncode, 8, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, wantID, conversions[0].ID)

	result, err := st.Replay(ctx, "run-1")
	require.NoError(t, err)
	assert.True(t, result.Deterministic())
}

func TestDecode_RecordsRunJSON(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "graycode.db")
	opts := &RootOptions{Format: "json", RunIDs: trace.NewFixedGenerator("run-json")}

	out, _, err := execute(t, NewDecodeCommand(opts), "--db", dbPath, "7")
	require.NoError(t, err)

	var resp struct {
		Data ConvertResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "run-json", resp.Data.RunID)
	assert.Equal(t, uint64(5), resp.Data.Results[0].Result)
}

func TestEncode_RejectedValueNotRecorded(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "graycode.db")
	opts := &RootOptions{Format: "text", RunIDs: trace.NewFixedGenerator("run-x")}

	_, _, err := execute(t, NewEncodeCommand(opts), "--db", dbPath, "1", "999")
	require.Error(t, err)
	assert.NoFileExists(t, dbPath)
}
