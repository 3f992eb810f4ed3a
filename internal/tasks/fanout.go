package tasks

import (
	"context"
	"slices"
	"sync/atomic"

	"github.com/desertthunder/ytgate/internal/formatter"
	"github.com/desertthunder/ytgate/internal/models"
	"github.com/desertthunder/ytgate/internal/services"
	"golang.org/x/sync/errgroup"
)

const (
	SearchChannelLimit  = 3  // Channels resolved for a query
	ChannelsExpanded    = 2  // Channels whose playlists are listed
	PlaylistsPerChannel = 15 // Playlists listed per expanded channel
	MaxSearchResults    = 10 // Summaries returned by a search
)

// SearchPlaylists resolves query to channels, lists the newest playlists of the top channels, fetches their
// details and returns at most [MaxSearchResults] summaries sorted by publish time, newest first.
//
// No channels, or channels without playlists, yields an empty, non-nil slice.
func (c *Catalog) SearchPlaylists(ctx context.Context, query string) ([]models.PlaylistSummary, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	channels, err := c.upstream.SearchChannels(ctx, query, SearchChannelLimit)
	if err != nil {
		return nil, err
	}
	c.sendProgress(channelsUpdate(query, len(channels)))
	if len(channels) == 0 {
		return []models.PlaylistSummary{}, nil
	}

	ids, err := c.candidatePlaylists(ctx, channels[:min(len(channels), ChannelsExpanded)])
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.PlaylistSummary{}, nil
	}

	records, err := c.playlistDetails(ctx, ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.PlaylistSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, formatter.ToPlaylistSummary(rec))
	}
	SortByPublished(summaries)

	if len(summaries) > MaxSearchResults {
		summaries = summaries[:MaxSearchResults]
	}
	return summaries, nil
}

// candidatePlaylists lists playlists for each channel concurrently and returns their ids in channel order,
// keeping only the first occurrence of each id.
func (c *Catalog) candidatePlaylists(ctx context.Context, channels []models.ChannelRef) ([]string, error) {
	results := make([][]models.PlaylistRef, len(channels))
	var done atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConcurrency)
	for i, ch := range channels {
		g.Go(func() error {
			refs, err := c.upstream.SearchChannelPlaylists(gctx, ch.ChannelID, PlaylistsPerChannel)
			if err != nil {
				return err
			}
			results[i] = refs
			c.sendProgress(expandUpdate(int(done.Add(1)), len(channels)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	ids := []string{}
	for _, refs := range results {
		for _, ref := range refs {
			if _, dup := seen[ref.PlaylistID]; dup {
				continue
			}
			seen[ref.PlaylistID] = struct{}{}
			ids = append(ids, ref.PlaylistID)
		}
	}
	return ids, nil
}

// playlistDetails fetches detailed records for ids in chunks, merged in chunk order.
func (c *Catalog) playlistDetails(ctx context.Context, ids []string) ([]models.PlaylistRecord, error) {
	chunks := Chunk(ids, services.MaxIDsPerRequest)
	results := make([][]models.PlaylistRecord, len(chunks))
	var done atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConcurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			records, err := c.upstream.Playlists(gctx, chunk)
			if err != nil {
				return err
			}
			results[i] = records
			c.sendProgress(detailsUpdate(int(done.Add(1)), len(chunks)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slices.Concat(results...), nil
}

// SortByPublished orders summaries by publish time, newest first. The sort is stable and
// summaries whose timestamp does not parse go last.
func SortByPublished(summaries []models.PlaylistSummary) {
	slices.SortStableFunc(summaries, func(a, b models.PlaylistSummary) int {
		ta, tb := a.Published(), b.Published()
		switch {
		case ta.IsZero() && tb.IsZero():
			return 0
		case ta.IsZero():
			return 1
		case tb.IsZero():
			return -1
		}
		return tb.Compare(ta)
	})
}
