// YouTube Data API v3 [Upstream] implementation
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/ytgate/internal/models"
	"github.com/desertthunder/ytgate/internal/shared"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const (
	defaultYTBaseURL = "https://youtube.googleapis.com/"
	defaultTimeout   = 10 * time.Second
	apiKeyHeader     = "X-Goog-Api-Key"
)

// Fallback messages used when the upstream does not declare one.
const (
	msgSearch   = "Failed to search YouTube"
	msgPlaylist = "Failed to fetch playlist"
	msgVideo    = "Failed to fetch video"
)

// YouTubeOpts configures a [YouTubeClient].
type YouTubeOpts struct {
	APIKey            string            // Data API key, never sent in URLs
	BaseURL           string            // Root of the API (default https://youtube.googleapis.com/)
	Timeout           time.Duration     // Per-call HTTP timeout (default 10s)
	RequestsPerSecond float64           // Outgoing call pacing, 0 disables
	Transport         http.RoundTripper // Base transport (default [http.DefaultTransport])
}

// YouTubeClient implements [Upstream] on top of the generated YouTube Data API client.
type YouTubeClient struct {
	service    *youtube.Service
	limiter    *rate.Limiter
	configured bool
}

// apiKeyTransport attaches the API key header to every outgoing request.
type apiKeyTransport struct {
	key  string
	base http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if t.key != "" {
		r.Header.Set(apiKeyHeader, t.key)
	}
	return t.base.RoundTrip(r)
}

// NewYouTubeClient creates a new YouTube Data API client.
//
// An empty API key still yields a client; [YouTubeClient.Configured] reports false so callers can refuse work
// before any request is made.
func NewYouTubeClient(ctx context.Context, opts YouTubeOpts) (*YouTubeClient, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultYTBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Transport == nil {
		opts.Transport = http.DefaultTransport
	}

	httpClient := &http.Client{
		Timeout:   opts.Timeout,
		Transport: &apiKeyTransport{key: opts.APIKey, base: opts.Transport},
	}

	service, err := youtube.NewService(ctx, option.WithHTTPClient(httpClient), option.WithEndpoint(opts.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	client := &YouTubeClient{service: service, configured: opts.APIKey != ""}
	if opts.RequestsPerSecond > 0 {
		client.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return client, nil
}

// Configured reports whether an API key was supplied.
func (c *YouTubeClient) Configured() bool {
	return c.configured
}

// wait blocks on the pacing limiter, if any.
func (c *YouTubeClient) wait(ctx context.Context, fallback string) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return shared.NewUpstreamError(0, "", fallback, err)
	}
	return nil
}

// upstreamError converts a client error into a [shared.UpstreamError].
func upstreamError(err error, fallback string) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return shared.NewUpstreamError(gerr.Code, gerr.Message, fallback, err)
	}
	return shared.NewUpstreamError(0, "", fallback, err)
}

// SearchChannels resolves up to max channels matching query.
func (c *YouTubeClient) SearchChannels(ctx context.Context, query string, max int64) ([]models.ChannelRef, error) {
	if err := c.wait(ctx, msgSearch); err != nil {
		return nil, err
	}

	resp, err := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("channel").
		MaxResults(max).
		Context(ctx).
		Do()
	if err != nil {
		return nil, upstreamError(err, msgSearch)
	}

	channels := make([]models.ChannelRef, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.ChannelId == "" {
			continue
		}
		ch := models.ChannelRef{ChannelID: item.Id.ChannelId}
		if item.Snippet != nil {
			ch.Title = item.Snippet.ChannelTitle
			if ch.Title == "" {
				ch.Title = item.Snippet.Title
			}
		}
		channels = append(channels, ch)
	}
	return channels, nil
}

// SearchChannelPlaylists lists up to max playlists published by channelID, newest first.
func (c *YouTubeClient) SearchChannelPlaylists(ctx context.Context, channelID string, max int64) ([]models.PlaylistRef, error) {
	if err := c.wait(ctx, msgSearch); err != nil {
		return nil, err
	}

	resp, err := c.service.Search.List([]string{"snippet"}).
		ChannelId(channelID).
		Type("playlist").
		Order("date").
		MaxResults(max).
		Context(ctx).
		Do()
	if err != nil {
		return nil, upstreamError(err, msgSearch)
	}

	playlists := make([]models.PlaylistRef, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.PlaylistId == "" {
			continue
		}
		ref := models.PlaylistRef{PlaylistID: item.Id.PlaylistId, ChannelID: channelID}
		if item.Snippet != nil {
			ref.Title = item.Snippet.Title
			ref.PublishedAt = item.Snippet.PublishedAt
		}
		playlists = append(playlists, ref)
	}
	return playlists, nil
}

// PlaylistItems fetches a single page of playlistID.
func (c *YouTubeClient) PlaylistItems(ctx context.Context, playlistID, pageToken string, pageSize int64) (*models.PlaylistItemsPage, error) {
	if err := c.wait(ctx, msgPlaylist); err != nil {
		return nil, err
	}

	call := c.service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(pageSize)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, upstreamError(err, msgPlaylist)
	}

	page := &models.PlaylistItemsPage{
		Items:         make([]models.PlaylistItemRef, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
	}
	for _, item := range resp.Items {
		ref := models.PlaylistItemRef{}
		if item.ContentDetails != nil {
			ref.VideoID = item.ContentDetails.VideoId
		}
		if s := item.Snippet; s != nil {
			ref.Title = s.Title
			ref.ChannelTitle = s.ChannelTitle
			ref.Thumbnails = thumbnails(s.Thumbnails)
			if ref.VideoID == "" && s.ResourceId != nil {
				ref.VideoID = s.ResourceId.VideoId
			}
		}
		page.Items = append(page.Items, ref)
	}
	return page, nil
}

// VideoDurations fetches the ISO 8601 duration of each id the upstream knows about.
func (c *YouTubeClient) VideoDurations(ctx context.Context, ids []string) ([]models.VideoDetail, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if err := c.wait(ctx, msgVideo); err != nil {
		return nil, err
	}

	resp, err := c.service.Videos.List([]string{"contentDetails"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, upstreamError(err, msgVideo)
	}

	details := make([]models.VideoDetail, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ContentDetails == nil {
			continue
		}
		details = append(details, models.VideoDetail{VideoID: item.Id, Duration: item.ContentDetails.Duration})
	}
	return details, nil
}

// Videos fetches full video records for ids.
func (c *YouTubeClient) Videos(ctx context.Context, ids []string) ([]models.VideoRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if err := c.wait(ctx, msgVideo); err != nil {
		return nil, err
	}

	resp, err := c.service.Videos.List([]string{"snippet", "contentDetails"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, upstreamError(err, msgVideo)
	}

	records := make([]models.VideoRecord, 0, len(resp.Items))
	for _, item := range resp.Items {
		rec := models.VideoRecord{VideoID: item.Id}
		if s := item.Snippet; s != nil {
			rec.Title = s.Title
			rec.ChannelTitle = s.ChannelTitle
			rec.Thumbnails = thumbnails(s.Thumbnails)
		}
		if item.ContentDetails != nil {
			rec.Duration = models.OptionalString(item.ContentDetails.Duration)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Playlists fetches detailed playlist records for ids.
func (c *YouTubeClient) Playlists(ctx context.Context, ids []string) ([]models.PlaylistRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if err := c.wait(ctx, msgSearch); err != nil {
		return nil, err
	}

	resp, err := c.service.Playlists.List([]string{"snippet", "contentDetails"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, upstreamError(err, msgSearch)
	}

	records := make([]models.PlaylistRecord, 0, len(resp.Items))
	for _, item := range resp.Items {
		rec := models.PlaylistRecord{ID: item.Id}
		if s := item.Snippet; s != nil {
			rec.Title = s.Title
			rec.Description = s.Description
			rec.ChannelID = s.ChannelId
			rec.ChannelTitle = s.ChannelTitle
			rec.PublishedAt = s.PublishedAt
			rec.Thumbnails = thumbnails(s.Thumbnails)
		}
		if item.ContentDetails != nil {
			rec.ItemCount = item.ContentDetails.ItemCount
		}
		records = append(records, rec)
	}
	return records, nil
}

func thumbnails(td *youtube.ThumbnailDetails) models.Thumbnails {
	if td == nil {
		return models.Thumbnails{}
	}
	return models.Thumbnails{
		Default: thumbnailURL(td.Default),
		Medium:  thumbnailURL(td.Medium),
		High:    thumbnailURL(td.High),
	}
}

func thumbnailURL(t *youtube.Thumbnail) models.Optional[string] {
	if t == nil {
		return models.None[string]()
	}
	return models.OptionalString(t.Url)
}
