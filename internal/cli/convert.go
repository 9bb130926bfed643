package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/graycode/internal/gray"
	"github.com/roach88/graycode/internal/numfmt"
	"github.com/roach88/graycode/internal/store"
	"github.com/roach88/graycode/internal/trace"
)

// ConvertOptions holds flags for the encode and decode commands.
type ConvertOptions struct {
	*RootOptions
	Op       trace.Op
	Database string // record the run here when set
	Label    string // optional run label
	Base     string // output base; empty keeps each input's base
}

// ConvertItem is one converted value.
type ConvertItem struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Value  uint64 `json:"value"`
	Result uint64 `json:"result"`
}

// ConvertResult is the output of encode and decode.
type ConvertResult struct {
	Op      trace.Op      `json:"op"`
	Width   int           `json:"width"`
	RunID   string        `json:"run_id,omitempty"`
	Results []ConvertItem `json:"results"`
}

// NewEncodeCommand creates the encode command.
func NewEncodeCommand(rootOpts *RootOptions) *cobra.Command {
	return newConvertCommand(&ConvertOptions{RootOptions: rootOpts, Op: trace.OpEncode},
		"encode <value>...",
		"Convert binary values to Gray code",
		`Convert each value from standard binary to its Gray-code encoding.

Values may be written in decimal, hex (0x), binary (0b) or octal (0o) and
are printed back in the same notation, zero-padded to the codec width.
Values that do not fit in the codec width are rejected; nothing is masked.

Exit codes:
  0 - All values converted
  2 - Malformed or out-of-range value, invalid width or config

Examples:
  graycode encode 5
  graycode encode --width 4 0b1011 0xF
  graycode encode --db ./graycode.db --label sensor 12 13 14`)
}

// NewDecodeCommand creates the decode command.
func NewDecodeCommand(rootOpts *RootOptions) *cobra.Command {
	return newConvertCommand(&ConvertOptions{RootOptions: rootOpts, Op: trace.OpDecode},
		"decode <value>...",
		"Convert Gray-code values to binary",
		`Convert each value from Gray code back to standard binary.

Values may be written in decimal, hex (0x), binary (0b) or octal (0o) and
are printed back in the same notation, zero-padded to the codec width.
Values that do not fit in the codec width are rejected; nothing is masked.

Exit codes:
  0 - All values converted
  2 - Malformed or out-of-range value, invalid width or config

Examples:
  graycode decode 0b00000111
  graycode decode --codec sensor --format json 0x2C`)
}

func newConvertCommand(opts *ConvertOptions, use, short, long string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Long:          long,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database")
	cmd.Flags().StringVar(&opts.Label, "label", "", "label for the recorded run")
	cmd.Flags().StringVarP(&opts.Base, "base", "b", "", "output base (dec|hex|bin|oct); default is the input's base")

	return cmd
}

type parsedValue struct {
	literal string
	value   uint64
	base    numfmt.Base
}

func runConvert(ctx context.Context, opts *ConvertOptions, args []string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := opts.logger(cmd)

	codec, _, err := opts.codec(cmd, f)
	if err != nil {
		return err
	}

	var outBase *numfmt.Base
	if opts.Base != "" {
		b, err := numfmt.ParseBase(opts.Base)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeInvalidInput, err.Error(), nil)
		}
		outBase = &b
	}

	// Every value is validated before anything is printed or recorded.
	values := make([]parsedValue, 0, len(args))
	for _, arg := range args {
		v, base, err := numfmt.Parse(arg)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeInvalidInput, err.Error(), nil)
		}
		if err := codec.Check(v); err != nil {
			return f.Fail(ExitCommandError, ErrCodeOutOfRange, rangeMessage(err), map[string]any{
				"input": arg,
				"width": codec.Width(),
			})
		}
		values = append(values, parsedValue{literal: arg, value: v, base: base})
	}

	result := ConvertResult{
		Op:      opts.Op,
		Width:   codec.Width(),
		Results: make([]ConvertItem, 0, len(values)),
	}
	conversions := make([]trace.Conversion, 0, len(values))

	for _, pv := range values {
		c := store.Apply(codec, opts.Op, pv.value)
		if c.ErrorCode != "" {
			return f.Fail(ExitCommandError, ErrCodeInternal, fmt.Sprintf("%s(%s): %s", opts.Op, pv.literal, c.ErrorCode), nil)
		}
		conversions = append(conversions, c)

		base := pv.base
		if outBase != nil {
			base = *outBase
		}
		result.Results = append(result.Results, ConvertItem{
			Input:  pv.literal,
			Output: numfmt.Format(c.Output, base, codec.Width()),
			Value:  pv.value,
			Result: c.Output,
		})
		logger.Debug("converted", "op", opts.Op, "input", pv.value, "output", c.Output)
	}

	if opts.Database != "" {
		runID, err := recordRun(ctx, opts, codec, conversions)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeStore, err.Error(), map[string]string{"db": opts.Database})
		}
		result.RunID = runID
		logger.Info("run recorded", "run_id", runID, "db", opts.Database, "conversions", len(conversions))
	}

	if opts.Format == "json" {
		return f.Success(result)
	}

	w := cmd.OutOrStdout()
	for _, item := range result.Results {
		if opts.Verbose {
			fmt.Fprintf(w, "%s -> %s\n", item.Input, item.Output)
			continue
		}
		fmt.Fprintln(w, item.Output)
	}
	return nil
}

// recordRun writes the conversions as a new run and returns its ID.
func recordRun(ctx context.Context, opts *ConvertOptions, codec *gray.Codec[uint64], conversions []trace.Conversion) (string, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return "", err
	}
	defer st.Close()

	run := trace.Run{
		ID:            opts.runIDs().Generate(),
		Width:         codec.Width(),
		Label:         opts.Label,
		FormatVersion: trace.FormatVersion,
	}
	if err := st.WriteRun(ctx, run); err != nil {
		return "", err
	}

	for i := range conversions {
		c := &conversions[i]
		c.RunID = run.ID
		c.Seq = int64(i + 1)
		c.ID, err = trace.ConversionID(c.RunID, c.Op, c.Width, c.Input, c.Seq)
		if err != nil {
			return "", err
		}
	}
	if err := st.WriteConversions(ctx, conversions); err != nil {
		return "", err
	}
	return run.ID, nil
}

// rangeMessage strips the error code prefix from a codec range error.
func rangeMessage(err error) string {
	var ce *gray.CodecError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return err.Error()
}
