package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytgate/internal/services"
	"github.com/desertthunder/ytgate/internal/shared"
	"github.com/desertthunder/ytgate/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config   *shared.Config
	upstream services.Upstream
	lookup   func(string) (string, bool)
	logger   *log.Logger
	output   io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Upstream services.Upstream          // Built from config on first use when nil
	Lookup   func(string) (string, bool) // Environment lookup (default: [os.LookupEnv])
	Logger   *log.Logger
	Output   io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Lookup == nil {
		opts.Lookup = os.LookupEnv
	}

	return &Runner{
		config:   opts.Config,
		upstream: opts.Upstream,
		lookup:   opts.Lookup,
		logger:   opts.Logger,
		output:   opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, songsCommand, searchCommand, videoCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads the .env file and the config file, applies environment overrides and sets the log level.
//
// A missing config file is not an error: the embedded defaults are used.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if err := shared.LoadDotEnv(cmd.String("env-file")); err != nil {
		return ctx, err
	}

	path := cmd.String("config")
	config, err := shared.LoadConfig(path)
	switch {
	case errors.Is(err, shared.ErrMissingConfig):
		r.logger.Debug("config file not found, using defaults", "path", path)
		config = shared.DefaultConfig()
	case err != nil:
		return ctx, err
	}

	if err := config.ApplyEnv(r.lookup); err != nil {
		return ctx, err
	}
	if err := config.Validate(); err != nil {
		return ctx, err
	}

	level := config.Log.Level
	if cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}
	shared.SetLogLevel(r.logger, shared.ParseLogLevel(level))

	r.config = config
	return ctx, nil
}

// client returns the injected upstream, or builds the YouTube client from config.
func (r *Runner) client(ctx context.Context) (services.Upstream, error) {
	if r.upstream != nil {
		return r.upstream, nil
	}

	yt := r.config.YouTube
	client, err := services.NewYouTubeClient(ctx, services.YouTubeOpts{
		APIKey:            yt.APIKey,
		BaseURL:           yt.BaseURL,
		Timeout:           yt.Timeout(),
		RequestsPerSecond: yt.RequestsPerSecond,
	})
	if err != nil {
		return nil, err
	}
	r.upstream = client
	return client, nil
}

// catalog builds a [tasks.Catalog] over the upstream, reporting progress to progress when non-nil.
func (r *Runner) catalog(ctx context.Context, progress chan<- tasks.ProgressUpdate) (*tasks.Catalog, error) {
	upstream, err := r.client(ctx)
	if err != nil {
		return nil, err
	}
	if !upstream.Configured() {
		r.logger.Warn(shared.EnvAPIKey + " not configured")
	}
	return tasks.NewCatalog(upstream, tasks.CatalogOpts{
		MaxConcurrency: r.config.YouTube.MaxConcurrency,
		MaxPages:       r.config.YouTube.MaxPages,
		Progress:       progress,
	}), nil
}

// write writes data to the output, terminated by a newline.
func (r *Runner) write(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if len(data) > 0 && data[len(data)-1] == '\n' {
		return nil
	}
	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}
	return nil
}
