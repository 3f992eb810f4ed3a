// package services defines interface Upstream for calling the YouTube Data API
package services

import (
	"context"

	"github.com/desertthunder/ytgate/internal/models"
)

// Upstream request limits of the YouTube Data API.
const (
	MaxPageSize      int64 = 50 // maxResults ceiling for list endpoints
	MaxIDsPerRequest       = 50 // ids accepted by a single videos/playlists call
)

// Upstream issues one typed call per resource kind against the catalog API.
//
// Every method either returns parsed records or an error wrapping [shared.UpstreamError].
type Upstream interface {
	// Configured reports whether a credential was supplied. Callers must not issue requests otherwise.
	Configured() bool

	// SearchChannels resolves up to max channels matching a free-text query.
	SearchChannels(ctx context.Context, query string, max int64) ([]models.ChannelRef, error)

	// SearchChannelPlaylists lists up to max playlists of a channel, newest first.
	SearchChannelPlaylists(ctx context.Context, channelID string, max int64) ([]models.PlaylistRef, error)

	// PlaylistItems fetches one page of a playlist. An empty pageToken requests the first page.
	PlaylistItems(ctx context.Context, playlistID, pageToken string, pageSize int64) (*models.PlaylistItemsPage, error)

	// VideoDurations fetches contentDetails for at most [MaxIDsPerRequest] ids.
	VideoDurations(ctx context.Context, ids []string) ([]models.VideoDetail, error)

	// Videos fetches snippet and contentDetails for at most [MaxIDsPerRequest] ids.
	Videos(ctx context.Context, ids []string) ([]models.VideoRecord, error)

	// Playlists fetches snippet and contentDetails for at most [MaxIDsPerRequest] ids.
	Playlists(ctx context.Context, ids []string) ([]models.PlaylistRecord, error)
}
