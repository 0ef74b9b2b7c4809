// Command gomask formats values against fixed-width input masks.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/yaklabco/gomask/internal/cli"
	"github.com/yaklabco/gomask/internal/logging"
	"github.com/yaklabco/gomask/internal/terminal"
)

// Set at build time with -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals // ldflags targets.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	root := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date})
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, terminal.ErrCancelled) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCode(err)
}
