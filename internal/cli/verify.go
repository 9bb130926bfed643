package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/graycode/internal/harness"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	Properties []string // subset to check; empty means all
	Seed       uint64
}

// VerifyResult is the outcome of a property check run.
type VerifyResult struct {
	Width      int                      `json:"width"`
	Seed       uint64                   `json:"seed"`
	Pass       bool                     `json:"pass"`
	Properties []harness.PropertyResult `json:"properties"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check codec properties",
		Long: fmt.Sprintf(`Check the Gray code properties for the configured width:
round_trip, bijective, single_bit_change, top_bit and zero_fixed_point.

Widths up to %d are checked exhaustively. Wider codecs are checked on the
boundary values plus %d values drawn from a seeded generator.

Exit codes:
  0 - All properties hold
  1 - A property failed
  2 - Command error (invalid width, unknown property, etc.)

Examples:
  graycode verify
  graycode verify --width 64 --seed 42
  graycode verify --property round_trip --property bijective`, harness.ExhaustiveLimit, harness.DefaultSamples),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, cmd)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Properties, "property", "p", nil, "property to check (repeatable)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", harness.DefaultSeed, "seed for sampled widths")

	return cmd
}

func runVerify(opts *VerifyOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := opts.logger(cmd)

	codec, _, err := opts.codec(cmd, f)
	if err != nil {
		return err
	}

	names := opts.Properties
	if len(names) == 0 {
		names = harness.AllProperties
	}

	result := VerifyResult{
		Width:      codec.Width(),
		Seed:       opts.Seed,
		Pass:       true,
		Properties: make([]harness.PropertyResult, 0, len(names)),
	}
	for _, name := range names {
		r, err := harness.CheckProperty(codec, name, opts.Seed)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeInvalidInput, err.Error(), map[string][]string{"known": harness.AllProperties})
		}
		logger.Debug("property checked", "property", r.Name, "pass", r.Pass, "checked", r.Checked)
		result.Properties = append(result.Properties, r)
		if !r.Pass {
			result.Pass = false
		}
	}

	if opts.Format == "json" {
		if err := f.Success(result); err != nil {
			return err
		}
	} else {
		outputVerifyText(cmd, result)
	}

	if !result.Pass {
		return &ExitError{Code: ExitFailure, Message: "property check failed", Reported: true}
	}
	return nil
}

func outputVerifyText(cmd *cobra.Command, result VerifyResult) {
	w := cmd.OutOrStdout()

	for _, p := range result.Properties {
		mode := "sampled"
		if p.Exhaustive {
			mode = "exhaustive"
		}
		if p.Pass {
			fmt.Fprintf(w, "✓ %s (%d values, %s)\n", p.Name, p.Checked, mode)
			continue
		}
		fmt.Fprintf(w, "✗ %s (%d values, %s)\n", p.Name, p.Checked, mode)
		fmt.Fprintf(w, "  %s\n", p.Failure)
	}

	fmt.Fprintln(w)
	if result.Pass {
		fmt.Fprintf(w, "✓ All properties hold for width %d\n", result.Width)
		return
	}
	fmt.Fprintf(w, "✗ Property check failed for width %d\n", result.Width)
}
