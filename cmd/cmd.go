// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.StringFlag{
			Name:  "env-file",
			Usage: "Path to a .env file with YOUTUBE_API_KEY",
			Value: ".env",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (debug, info, warn, error)",
		},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: json, csv, txt or table",
			Value:   "json",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
	}
}

// serveCommand runs the HTTP API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (overrides server.host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (overrides server.port and PORT)",
			},
		},
		Action: r.Serve,
	}
}

// songsCommand lists every song of a playlist
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "songs",
		Aliases:   []string{"playlist"},
		Usage:     "List every song of a playlist with durations",
		ArgsUsage: "<playlistId>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "playlistId"},
		},
		Flags:  outputFlags(),
		Action: r.Songs,
	}
}

// searchCommand finds playlists related to a query
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search playlists from the channels matching a query",
		ArgsUsage: "<query>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags:  outputFlags(),
		Action: r.Search,
	}
}

// videoCommand fetches a single video
func videoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "video",
		Usage:     "Show a single video as a song",
		ArgsUsage: "<videoId>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "videoId"},
		},
		Flags:  outputFlags(),
		Action: r.Video,
	}
}

// configCommand manages the configuration file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the example configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Destination path",
						Value: "config.toml",
					},
				},
				Action: r.ConfigInit,
			},
			{
				Name:  "show",
				Usage: "Print the effective configuration with the API key redacted",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.ConfigShow,
			},
		},
	}
}
