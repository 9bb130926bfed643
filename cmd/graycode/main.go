// Command graycode converts fixed-width unsigned integers between binary
// and Gray code.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/roach88/graycode/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.NewRootCommand().ExecuteContext(ctx)
	if err == nil {
		return cli.ExitSuccess
	}
	if !cli.IsReported(err) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}

	// Errors cobra raises itself (unknown flags, wrong arg counts) are
	// usage errors.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		return cli.ExitCommandError
	}
	return exitErr.Code
}
