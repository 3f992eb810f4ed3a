package tasks

import (
	"context"

	"github.com/desertthunder/ytgate/internal/formatter"
	"github.com/desertthunder/ytgate/internal/models"
	"github.com/desertthunder/ytgate/internal/services"
	"github.com/desertthunder/ytgate/internal/shared"
)

const (
	DefaultMaxConcurrency = 4
	DefaultMaxPages       = 200
)

// Engine defines the public catalog operations.
type Engine interface {
	// ListPlaylistSongs returns every song of a playlist in page order.
	ListPlaylistSongs(ctx context.Context, playlistID string) ([]models.Song, error)

	// SearchPlaylists returns up to 10 playlists related to query, newest first.
	SearchPlaylists(ctx context.Context, query string) ([]models.PlaylistSummary, error)

	// GetVideoInfo returns a single video as a song.
	GetVideoInfo(ctx context.Context, videoID string) (models.Song, error)
}

// CatalogOpts configures a [Catalog].
type CatalogOpts struct {
	MaxConcurrency int                   // Concurrent upstream calls per operation (default: 4)
	MaxPages       int                   // Page cap for a single playlist (default: 200)
	Progress       chan<- ProgressUpdate // Optional progress sink
}

// Catalog implements [Engine] over a [services.Upstream].
type Catalog struct {
	upstream       services.Upstream
	maxConcurrency int
	maxPages       int
	progress       chan<- ProgressUpdate
}

// NewCatalog creates a new Catalog with the provided upstream.
func NewCatalog(upstream services.Upstream, opts CatalogOpts) *Catalog {
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = DefaultMaxConcurrency
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = DefaultMaxPages
	}
	return &Catalog{
		upstream:       upstream,
		maxConcurrency: opts.MaxConcurrency,
		maxPages:       opts.MaxPages,
		progress:       opts.Progress,
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (c *Catalog) sendProgress(update ProgressUpdate) {
	if c.progress == nil {
		return
	}
	select {
	case c.progress <- update:
	default:
	}
}

// ready reports [shared.ErrNotConfigured] when no usable upstream is wired.
func (c *Catalog) ready() error {
	if c.upstream == nil || !c.upstream.Configured() {
		return shared.ErrNotConfigured
	}
	return nil
}

// ListPlaylistSongs collects every item of playlistID, looks up durations and normalizes each item in page order.
//
// Items without a video id are skipped. An empty playlist yields an empty, non-nil slice.
func (c *Catalog) ListPlaylistSongs(ctx context.Context, playlistID string) ([]models.Song, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	items, err := c.CollectAllItems(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	playable := make([]models.PlaylistItemRef, 0, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.VideoID == "" {
			continue
		}
		playable = append(playable, item)
		ids = append(ids, item.VideoID)
	}

	durations, err := c.FetchDurations(ctx, ids)
	if err != nil {
		return nil, err
	}

	songs := make([]models.Song, 0, len(playable))
	for _, item := range playable {
		songs = append(songs, formatter.ToSong(item, durations))
	}
	return songs, nil
}

// GetVideoInfo fetches videoID with a single call and normalizes it.
//
// An id the upstream does not know yields a [shared.NotFoundError].
func (c *Catalog) GetVideoInfo(ctx context.Context, videoID string) (models.Song, error) {
	if err := c.ready(); err != nil {
		return models.Song{}, err
	}

	c.sendProgress(videoUpdate(videoID))
	records, err := c.upstream.Videos(ctx, []string{videoID})
	if err != nil {
		return models.Song{}, err
	}
	return formatter.ToVideoInfo(records, videoID)
}
