package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytgate/internal/shared"
	"github.com/urfave/cli/v3"
)

const redacted = "[redacted]"

// ConfigInit writes the embedded example configuration to --path.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.logger.Info("config file created", "path", path)
	return r.write(fmt.Appendf(nil, "Config written to %s", path))
}

// ConfigShow prints the effective configuration as JSON. The API key is never printed.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	cfg := *r.config
	if cfg.HasAPIKey() {
		cfg.YouTube.APIKey = redacted
	}
	data, err := shared.MarshalJSON(cfg, cmd.Bool("pretty"))
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return r.write(data)
}
