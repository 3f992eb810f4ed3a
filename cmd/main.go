package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/ytgate/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := newApp(runner).Run(ctx, os.Args); err != nil {
		stop()
		logger.Fatal("application error", "err", shared.PublicMessage(err, "unknown error"))
	}
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "ytgate",
		Usage:    "Serve simplified YouTube playlist, search and video records without exposing the API key",
		Version:  "0.1.0",
		Flags:    globalFlags(),
		Before:   r.Before,
		Commands: r.register(),
	}
}
