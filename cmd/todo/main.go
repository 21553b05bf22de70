package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/idilsaglam/todo-client/internal/api"
	"github.com/idilsaglam/todo-client/internal/cli"
	"github.com/idilsaglam/todo-client/internal/config"
	"github.com/idilsaglam/todo-client/internal/logging"
	"github.com/idilsaglam/todo-client/internal/tui"
	"github.com/idilsaglam/todo-client/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	groupPending := fs.Bool("group", false, "group ls output by pending/done")
	fs.Usage = func() { cli.PrintHelp(fs.Output()) }

	cfg, err := config.Load(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		ui.Fail(os.Stderr, err.Error())
		return 2
	}
	ui.SetTheme(cfg.Theme)

	rest := fs.Args()
	interactive := len(rest) == 0 || rest[0] == "ui"

	// The TUI owns the terminal, so logs only go to a file there.
	var fallback io.Writer = os.Stderr
	if interactive {
		fallback = io.Discard
	}
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, Fallback: fallback})
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		return 1
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := api.New(cfg.BaseURL, api.WithLogger(logger.Logger))
	logger.Debug("starting", "api", client.BaseURL(), "theme", cfg.Theme, "interactive", interactive)

	if interactive {
		if err := tui.Run(ctx, client, logger.Logger); err != nil {
			logger.Error("ui exited", "err", err)
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	code := cli.Run(ctx, client, rest, cli.Options{
		Group:  *groupPending,
		Logger: logger.Logger,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}
