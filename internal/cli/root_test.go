package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs cmd with args and returns what it wrote to stdout and
// stderr.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "graycode", cmd.Use)
	assert.Contains(t, cmd.Long, "Gray")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"encode", "decode", "table", "verify", "test", "replay", "validate"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	widthFlag := cmd.PersistentFlags().Lookup("width")
	require.NotNil(t, widthFlag)
	assert.Equal(t, "w", widthFlag.Shorthand)
	assert.Equal(t, "0", widthFlag.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("codec"))
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, NewRootCommand(), "--format", "xml", "encode", "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRoot_WidthFlag(t *testing.T) {
	out, _, err := execute(t, NewRootCommand(), "--width", "4", "encode", "0b1011")
	require.NoError(t, err)
	assert.Equal(t, "0b1110\n", out)
}

func TestRoot_ExplicitZeroWidthRejected(t *testing.T) {
	out, errOut, err := execute(t, NewRootCommand(), "--width", "0", "encode", "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Error [E004]")
}

func TestRoot_VerboseLogsToStderr(t *testing.T) {
	out, errOut, err := execute(t, NewRootCommand(), "--verbose", "encode", "5")
	require.NoError(t, err)
	assert.Equal(t, "5 -> 7\n", out)
	assert.Contains(t, errOut, "level=DEBUG")
	assert.Contains(t, errOut, "codec ready")
}

func TestRootOptions_ProfileFromConfig(t *testing.T) {
	path := writeConfigFile(t, `
default: "wide"
codecs: {
	wide: {width: 16, base: "hex"}
	nibble: {width: 4}
}
`)

	opts := &RootOptions{ConfigPath: path}
	p, err := opts.profile()
	require.NoError(t, err)
	assert.Equal(t, "wide", p.Name)
	assert.Equal(t, 16, p.Width)

	opts = &RootOptions{ConfigPath: path, CodecName: "nibble", Width: 3}
	p, err = opts.profile()
	require.NoError(t, err)
	assert.Equal(t, "nibble", p.Name)
	assert.Equal(t, 3, p.Width)
}

func TestRootOptions_UnknownCodec(t *testing.T) {
	opts := &RootOptions{Format: "text", CodecName: "missing"}
	cmd := NewEncodeCommand(opts)
	_, errOut, err := execute(t, cmd, "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "Error [E005]")
}
