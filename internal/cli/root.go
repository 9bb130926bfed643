package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/graycode/internal/config"
	"github.com/roach88/graycode/internal/gray"
	"github.com/roach88/graycode/internal/trace"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string // CUE config file; empty means the builtin profile
	CodecName  string // profile name; empty means the config default
	Width      int    // overrides the profile width when set

	// WidthSet records that --width was given explicitly, so that
	// --width 0 is rejected instead of meaning "use the profile".
	WidthSet bool

	// Logger is built from Verbose on first use when nil.
	Logger *slog.Logger

	// RunIDs names recorded runs. Defaults to UUIDv7.
	RunIDs trace.RunIDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the graycode CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "graycode",
		Short: "graycode - binary/Gray code conversion",
		Long: `Convert fixed-width unsigned integers between standard binary and
reflected binary (Gray) code, print code tables, check codec properties and
run conformance scenarios.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			opts.WidthSet = cmd.Flags().Changed("width")
			opts.Logger = newLogger(cmd, opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "CUE configuration file")
	cmd.PersistentFlags().StringVar(&opts.CodecName, "codec", "", "codec profile name (default: the config default)")
	cmd.PersistentFlags().IntVarP(&opts.Width, "width", "w", 0, "codec width in bits, overrides the profile")

	// Add subcommands
	cmd.AddCommand(NewEncodeCommand(opts))
	cmd.AddCommand(NewDecodeCommand(opts))
	cmd.AddCommand(NewTableCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// newLogger writes text logs to the command's stderr, at debug level when
// verbose.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	return slog.New(handler)
}

func (o *RootOptions) logger(cmd *cobra.Command) *slog.Logger {
	if o.Logger == nil {
		o.Logger = newLogger(cmd, o.Verbose)
	}
	return o.Logger
}

func (o *RootOptions) runIDs() trace.RunIDGenerator {
	if o.RunIDs == nil {
		return trace.UUIDv7Generator{}
	}
	return o.RunIDs
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// profile resolves the active codec profile: the named (or default) profile
// of the config file, with --width applied on top.
func (o *RootOptions) profile() (config.Profile, error) {
	cfg := config.Builtin()
	if o.ConfigPath != "" {
		loaded, err := config.Load(o.ConfigPath)
		if err != nil {
			return config.Profile{}, err
		}
		cfg = loaded
	}

	p, err := cfg.Profile(o.CodecName)
	if err != nil {
		return config.Profile{}, err
	}
	if o.WidthSet || o.Width != 0 {
		p.Width = o.Width
	}
	return p, nil
}

// codec builds the codec of the active profile. Failures are reported
// through f and returned as command errors.
func (o *RootOptions) codec(cmd *cobra.Command, f *OutputFormatter) (*gray.Codec[uint64], config.Profile, error) {
	p, err := o.profile()
	if err != nil {
		return nil, config.Profile{}, f.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}

	codec, err := p.Codec()
	if err != nil {
		return nil, p, f.Fail(ExitCommandError, ErrCodeInvalidWidth, err.Error(), map[string]int{"width": p.Width})
	}

	o.logger(cmd).Debug("codec ready", "profile", p.Name, "width", p.Width, "base", p.Base.String())
	return codec, p, nil
}
