// Package services defines the [Upstream] interface for the catalog API and implements it for the YouTube Data API v3.
//
// # YouTube Implementation
//
// [YouTubeClient] wraps the generated google.golang.org/api/youtube/v3 client. Each method maps to exactly one
// request:
//   - [YouTubeClient.SearchChannels] : search.list type=channel
//   - [YouTubeClient.SearchChannelPlaylists] : search.list type=playlist order=date
//   - [YouTubeClient.PlaylistItems] : playlistItems.list part=snippet,contentDetails
//   - [YouTubeClient.VideoDurations] : videos.list part=contentDetails
//   - [YouTubeClient.Videos] : videos.list part=snippet,contentDetails
//   - [YouTubeClient.Playlists] : playlists.list part=snippet,contentDetails
//
// # Credentials
//
// The API key is injected at construction and attached by a round tripper as the X-Goog-Api-Key header.
// It never appears in request URLs, so it cannot leak through access logs or error strings.
//
// # Pacing
//
// An optional [rate.Limiter] spaces outgoing calls to protect the daily quota. There is no retry: a failed call is
// reported immediately.
//
// # Error Handling
//
// Every failure is returned as a [shared.UpstreamError]. When the API declares an error object its message is kept;
// transport failures fall back to a fixed per-resource message.
package services
