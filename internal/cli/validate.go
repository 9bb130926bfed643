package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/graycode/internal/config"
)

// ValidationError is one problem found in a configuration file.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// ProfileInfo describes a validated codec profile.
type ProfileInfo struct {
	Name  string `json:"name"`
	Width int    `json:"width"`
	Base  string `json:"base"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Default  string            `json:"default,omitempty"`
	Profiles []ProfileInfo     `json:"profiles,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config.cue>",
		Short: "Validate a codec configuration file",
		Long: `Validate a CUE configuration file of named codec profiles.

The file is unified with the built-in schema: every codec needs a width in
[1, 64] and a base of dec, hex, bin or oct, and the default must name a
declared codec.

Exit codes:
  0 - Configuration is valid
  1 - Configuration is invalid
  2 - Command error (file not found)

Examples:
  graycode validate ./graycode.cue
  graycode validate ./graycode.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := config.Load(path)
	if err != nil {
		var loadErr *config.LoadError
		if !errors.As(err, &loadErr) {
			return formatter.Fail(ExitCommandError, ErrCodeInternal, err.Error(), nil)
		}
		if loadErr.Code == config.ErrCodeNotFound {
			return formatter.Fail(ExitCommandError, loadErr.Code, loadErr.Message, nil)
		}
		return outputValidationError(formatter, loadErr)
	}

	result := ValidationResult{Valid: true, Default: cfg.Default}
	for _, name := range cfg.Names() {
		p := cfg.Profiles[name]
		formatter.VerboseLog("profile %s: width %d, base %s", p.Name, p.Width, p.Base)
		result.Profiles = append(result.Profiles, ProfileInfo{Name: p.Name, Width: p.Width, Base: p.Base.String()})
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(fmt.Sprintf("✓ %s: %d codec profile(s), default %q", path, len(result.Profiles), result.Default))
}

// outputValidationError reports an invalid configuration. Validation
// failures exit with ExitFailure.
func outputValidationError(formatter *OutputFormatter, loadErr *config.LoadError) error {
	verr := ValidationError{Code: loadErr.Code, Message: loadErr.Message}
	if loadErr.Pos.IsValid() {
		verr.Line = loadErr.Pos.Line()
		verr.Column = loadErr.Pos.Column()
	}

	if formatter.Format == "json" {
		if err := formatter.Encode(CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: []ValidationError{verr}},
			Error:  &CLIError{Code: verr.Code, Message: verr.Message},
		}); err != nil {
			return err
		}
		return &ExitError{Code: ExitFailure, Message: "validation failed", Reported: true}
	}

	message := loadErr.Message
	if loadErr.Pos.IsValid() {
		message = fmt.Sprintf("%s:%d:%d: %s", loadErr.Pos.Filename(), verr.Line, verr.Column, message)
	}
	return formatter.Fail(ExitFailure, loadErr.Code, message, nil)
}
