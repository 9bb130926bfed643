package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/graycode/internal/numfmt"
)

// MaxTableWidth is the widest codec the table command will print.
const MaxTableWidth = 16

// TableOptions holds flags for the table command.
type TableOptions struct {
	*RootOptions
	Base string // column base; empty means the profile base
}

// TableRow is one line of the code table.
type TableRow struct {
	Index      uint64 `json:"index"`
	Binary     string `json:"binary"`
	Gray       string `json:"gray"`
	Code       uint64 `json:"code"`
	ChangedBit int    `json:"changed_bit"`
}

// TableResult is the full code table for one width.
type TableResult struct {
	Width int        `json:"width"`
	Base  string     `json:"base"`
	Rows  []TableRow `json:"rows"`
}

// NewTableCommand creates the table command.
func NewTableCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TableOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the Gray code table",
		Long: fmt.Sprintf(`Print every N-bit value next to its Gray code, in counting order.

The changed_bit column gives the bit that flips between this code and the
next one (the last row wraps around to zero). Widths above %d are refused.

Exit codes:
  0 - Table printed
  2 - Width too large or invalid

Examples:
  graycode table --width 3 --base bin
  graycode table --codec sensor --format json`, MaxTableWidth),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Base, "base", "b", "", "column base (dec|hex|bin|oct); default is the profile base")

	return cmd
}

func runTable(opts *TableOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	codec, profile, err := opts.codec(cmd, f)
	if err != nil {
		return err
	}
	if codec.Width() > MaxTableWidth {
		return f.Fail(ExitCommandError, ErrCodeInvalidWidth,
			fmt.Sprintf("width %d too large for a table (max %d)", codec.Width(), MaxTableWidth), nil)
	}

	base := profile.Base
	if opts.Base != "" {
		base, err = numfmt.ParseBase(opts.Base)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeInvalidInput, err.Error(), nil)
		}
	}

	width := codec.Width()
	result := TableResult{
		Width: width,
		Base:  base.String(),
		Rows:  make([]TableRow, 0, codec.Max()+1),
	}
	for i := uint64(0); i <= codec.Max(); i++ {
		g, err := codec.Encode(i)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeInternal, err.Error(), nil)
		}
		bit, err := codec.ChangedBit(i)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeInternal, err.Error(), nil)
		}
		result.Rows = append(result.Rows, TableRow{
			Index:      i,
			Binary:     numfmt.Format(i, base, width),
			Gray:       numfmt.Format(g, base, width),
			Code:       g,
			ChangedBit: bit,
		})
	}

	if opts.Format == "json" {
		return f.Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "index\tbinary\tgray\tchanged_bit")
	for _, row := range result.Rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", row.Index, row.Binary, row.Gray, row.ChangedBit)
	}
	return nil
}
