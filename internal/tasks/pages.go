package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytgate/internal/models"
	"github.com/desertthunder/ytgate/internal/services"
	"github.com/desertthunder/ytgate/internal/shared"
)

const msgPlaylist = "Failed to fetch playlist"

// CollectAllItems walks every page of playlistID, following continuation tokens, and returns the items in order.
//
// Collection stops at the first page without a token. A page with no items, or a token seen before, also ends
// it. Going past the page cap is an upstream error, and so is any failed page: no partial result is returned.
func (c *Catalog) CollectAllItems(ctx context.Context, playlistID string) ([]models.PlaylistItemRef, error) {
	items := []models.PlaylistItemRef{}
	seen := map[string]struct{}{}
	token := ""

	for page := 1; ; page++ {
		if page > c.maxPages {
			msg := fmt.Sprintf("Playlist has more than %d pages", c.maxPages)
			return nil, shared.NewUpstreamError(0, msg, msgPlaylist, fmt.Errorf("playlist %s exceeded page cap", playlistID))
		}

		resp, err := c.upstream.PlaylistItems(ctx, playlistID, token, services.MaxPageSize)
		if err != nil {
			return nil, err
		}

		items = append(items, resp.Items...)
		c.sendProgress(pageUpdate(page, len(items)))

		if resp.NextPageToken == "" || len(resp.Items) == 0 {
			return items, nil
		}
		if _, dup := seen[resp.NextPageToken]; dup {
			return items, nil
		}
		seen[resp.NextPageToken] = struct{}{}
		token = resp.NextPageToken
	}
}
