package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/graycode/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	RunID    string // optional - specific run only
}

// ReplayRunResult holds the replay result for a single run.
type ReplayRunResult struct {
	store.ReplayResult
	Deterministic bool `json:"deterministic"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Runs             []ReplayRunResult `json:"runs"`
	TotalRuns        int               `json:"total_runs"`
	AllDeterministic bool              `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay recorded runs and verify determinism",
		Long: `Re-execute every conversion recorded by "encode --db" or "decode --db"
through a fresh codec of the recorded width, and compare the result with the
recorded output or error code.

Exit codes:
  0 - All runs replay identically
  1 - A conversion replayed differently
  2 - Command error (database not found, unknown run, etc.)

Examples:
  graycode replay --db ./graycode.db
  graycode replay --db ./graycode.db --run 01927c3e-...
  graycode replay --db ./graycode.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "replay specific run only")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	f := opts.formatter(cmd)
	logger := opts.logger(cmd)

	// store.Open would create a missing file; replaying one is a mistake.
	if _, err := os.Stat(opts.Database); err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, fmt.Sprintf("database not found: %s", opts.Database), nil)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, fmt.Sprintf("failed to open database: %v", err), nil)
	}
	defer st.Close()

	var runIDs []string
	if opts.RunID != "" {
		runIDs = []string{opts.RunID}
	} else {
		runIDs, err = st.ListRuns(ctx)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeStore, fmt.Sprintf("failed to list runs: %v", err), nil)
		}
	}

	result := ReplayResult{
		Runs:             make([]ReplayRunResult, 0, len(runIDs)),
		TotalRuns:        len(runIDs),
		AllDeterministic: true,
	}

	if len(runIDs) == 0 {
		if opts.Format == "json" {
			return f.Success(result)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No runs found in database.")
		return nil
	}

	for _, id := range runIDs {
		r, err := st.Replay(ctx, id)
		if errors.Is(err, store.ErrRunNotFound) {
			return f.Fail(ExitCommandError, ErrCodeStore, fmt.Sprintf("run not found: %s", id), nil)
		}
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeStore, fmt.Sprintf("failed to replay run %s: %v", id, err), nil)
		}
		logger.Debug("run replayed", "run_id", id, "conversions", r.Conversions, "mismatches", len(r.Mismatches))

		result.Runs = append(result.Runs, ReplayRunResult{ReplayResult: r, Deterministic: r.Deterministic()})
		if !r.Deterministic() {
			result.AllDeterministic = false
		}
	}

	if opts.Format == "json" {
		if err := f.Success(result); err != nil {
			return err
		}
	} else {
		outputReplayText(cmd, result)
	}

	if !result.AllDeterministic {
		// Determinism failure = exit code 1
		return &ExitError{Code: ExitFailure, Message: "determinism verification failed", Reported: true}
	}
	return nil
}

func outputReplayText(cmd *cobra.Command, result ReplayResult) {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Replay Summary: %d run(s)\n", result.TotalRuns)
	fmt.Fprintln(w)

	for _, run := range result.Runs {
		status := "✓"
		if !run.Deterministic {
			status = "✗"
		}

		fmt.Fprintf(w, "%s Run: %s (width %d)\n", status, run.RunID, run.Width)
		fmt.Fprintf(w, "  Conversions: %d, rejected: %d\n", run.Conversions, run.Rejected)
		for _, m := range run.Mismatches {
			fmt.Fprintf(w, "  seq %d %s(%d): recorded %s, replayed %s\n", m.Seq, m.Op, m.Input, m.Recorded, m.Replayed)
		}
		fmt.Fprintln(w)
	}

	if result.AllDeterministic {
		fmt.Fprintln(w, "✓ All runs replayed deterministically")
		return
	}
	fmt.Fprintln(w, "✗ Determinism verification failed")
}
