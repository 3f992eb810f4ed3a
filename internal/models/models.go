// package models defines the data model for the catalog aggregation service
package models

import "time"

// Defaults applied during normalization.
const (
	ZeroDuration  = "PT0S"
	UnknownArtist = "Unknown Artist"
)

// Thumbnails holds the thumbnail URLs an upstream record may carry.
type Thumbnails struct {
	Default Optional[string]
	Medium  Optional[string]
	High    Optional[string]
}

// PlaylistItemRef is a single entry of a playlist page, in upstream order.
type PlaylistItemRef struct {
	VideoID      string
	Title        string
	ChannelTitle string
	Thumbnails   Thumbnails
}

// PlaylistItemsPage is one page of playlist items plus the continuation token.
//
// An empty NextPageToken marks the final page.
type PlaylistItemsPage struct {
	Items         []PlaylistItemRef
	NextPageToken string
}

// VideoDetail carries the ISO 8601 duration for a video id.
type VideoDetail struct {
	VideoID  string
	Duration string
}

// VideoRecord is a full video resource requested by id.
type VideoRecord struct {
	VideoID      string
	Title        string
	ChannelTitle string
	Thumbnails   Thumbnails
	Duration     Optional[string]
}

// ChannelRef is a channel candidate resolved from a free-text query.
type ChannelRef struct {
	ChannelID string
	Title     string
}

// PlaylistRef is a playlist candidate found by searching within a channel.
type PlaylistRef struct {
	PlaylistID  string
	ChannelID   string
	Title       string
	PublishedAt string
}

// PlaylistRecord is a detailed playlist resource returned by the playlists endpoint.
type PlaylistRecord struct {
	ID           string
	Title        string
	Description  string
	ChannelID    string
	ChannelTitle string
	PublishedAt  string
	Thumbnails   Thumbnails
	ItemCount    int64
}

// Song is the normalized output record for a playable video.
type Song struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Thumbnail string `json:"thumbnail"`
	Duration  string `json:"duration"`
}

// PlaylistSummary is the normalized output record for a playlist search result.
type PlaylistSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelID    string `json:"channelId"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
	Thumbnail    string `json:"thumbnail"`
	ItemCount    int64  `json:"itemCount"`
}

// Published parses PublishedAt as RFC 3339. Unparseable or empty values yield the zero time.
func (p PlaylistSummary) Published() time.Time {
	t, err := time.Parse(time.RFC3339, p.PublishedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
