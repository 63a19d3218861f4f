// Command seed loads the site's articles into the row store and rewrites the
// JSON snapshot the static site reads at build time.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/content-publisher/internal/service"
)

// Process exit codes
const (
	exitOK                 = 0
	exitFailure            = 1
	exitValidation         = 2
	exitStorageUnavailable = 3
	exitStorageWrite       = 4
	exitExportWrite        = 5
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "seed: %v\n", err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, service.ErrValidation):
		return exitValidation
	case errors.Is(err, service.ErrStorageUnavailable):
		return exitStorageUnavailable
	case errors.Is(err, service.ErrStorageWrite):
		return exitStorageWrite
	case errors.Is(err, service.ErrExportWrite):
		return exitExportWrite
	default:
		return exitFailure
	}
}
