package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/ytgate/internal/formatter"
	"github.com/desertthunder/ytgate/internal/shared"
	"github.com/desertthunder/ytgate/internal/tasks"
	"github.com/urfave/cli/v3"
)

// withProgress runs fn with a catalog whose progress updates are logged at debug level.
func (r *Runner) withProgress(ctx context.Context, fn func(*tasks.Catalog) error) error {
	progress := make(chan tasks.ProgressUpdate, 32)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range progress {
			r.logger.Debug(u.Message, "phase", u.Phase, "step", u.Step, "total", u.Total)
		}
	}()

	catalog, err := r.catalog(ctx, progress)
	if err == nil {
		err = fn(catalog)
	}
	close(progress)
	<-done
	return err
}

func requiredArg(cmd *cli.Command, name, msg string) (string, error) {
	v := strings.TrimSpace(cmd.StringArg(name))
	if v == "" {
		return "", fmt.Errorf("%w: %s", shared.ErrInvalidInput, msg)
	}
	return v, nil
}

// Songs prints every song of a playlist.
func (r *Runner) Songs(ctx context.Context, cmd *cli.Command) error {
	id, err := requiredArg(cmd, "playlistId", "Playlist ID is required")
	if err != nil {
		return err
	}
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	return r.withProgress(ctx, func(c *tasks.Catalog) error {
		songs, err := c.ListPlaylistSongs(ctx, id)
		if err != nil {
			return err
		}
		r.logger.Info("fetched playlist", "playlist_id", id, "songs", len(songs))

		data, err := formatter.Songs(songs, format, cmd.Bool("pretty"))
		if err != nil {
			return err
		}
		return r.write(data)
	})
}

// Search prints the playlists related to a query.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query, err := requiredArg(cmd, "query", "Query parameter is required")
	if err != nil {
		return err
	}
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	return r.withProgress(ctx, func(c *tasks.Catalog) error {
		playlists, err := c.SearchPlaylists(ctx, query)
		if err != nil {
			return err
		}
		r.logger.Info("searched playlists", "query", query, "results", len(playlists))

		data, err := formatter.Playlists(playlists, format, cmd.Bool("pretty"))
		if err != nil {
			return err
		}
		return r.write(data)
	})
}

// Video prints a single video as a song.
func (r *Runner) Video(ctx context.Context, cmd *cli.Command) error {
	id, err := requiredArg(cmd, "videoId", "Video ID is required")
	if err != nil {
		return err
	}
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	return r.withProgress(ctx, func(c *tasks.Catalog) error {
		song, err := c.GetVideoInfo(ctx, id)
		if err != nil {
			return err
		}

		data, err := formatter.Video(song, format, cmd.Bool("pretty"))
		if err != nil {
			return err
		}
		return r.write(data)
	})
}
