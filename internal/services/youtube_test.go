package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/ytgate/internal/shared"
	th "github.com/desertthunder/ytgate/internal/testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *YouTubeClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewYouTubeClient(context.Background(), YouTubeOpts{
		APIKey:  "test-key",
		BaseURL: server.URL + "/",
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Errorf("failed to encode response: %v", err)
	}
}

func TestYouTubeClient(t *testing.T) {
	t.Run("NewYouTubeClient", func(t *testing.T) {
		t.Run("reports configured when a key is set", func(t *testing.T) {
			client, err := NewYouTubeClient(context.Background(), YouTubeOpts{APIKey: "k"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !client.Configured() {
				t.Error("expected client to be configured")
			}
			if client.limiter != nil {
				t.Error("expected no limiter without requests_per_second")
			}
		})

		t.Run("reports unconfigured without a key", func(t *testing.T) {
			client, err := NewYouTubeClient(context.Background(), YouTubeOpts{RequestsPerSecond: 2})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if client.Configured() {
				t.Error("expected client to be unconfigured")
			}
			if client.limiter == nil {
				t.Error("expected limiter to be created")
			}
		})
	})

	t.Run("sends the API key as a header, never in the URL", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get(apiKeyHeader); got != "test-key" {
				t.Errorf("expected %s header test-key, got %q", apiKeyHeader, got)
			}
			if strings.Contains(r.URL.RawQuery, "test-key") {
				t.Errorf("API key leaked into query string: %s", r.URL.RawQuery)
			}
			writeJSON(t, w, http.StatusOK, map[string]any{"items": []any{}})
		})

		if _, err := client.SearchChannels(context.Background(), "lofi", 3); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("SearchChannels", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/youtube/v3/search" {
				t.Errorf("expected path /youtube/v3/search, got %s", r.URL.Path)
			}
			q := r.URL.Query()
			if q.Get("type") != "channel" || q.Get("maxResults") != "3" || q.Get("q") != "lofi beats" {
				t.Errorf("unexpected query: %s", r.URL.RawQuery)
			}
			writeJSON(t, w, http.StatusOK, map[string]any{
				"items": []map[string]any{
					{"id": map[string]any{"kind": "youtube#channel", "channelId": "UC1"}, "snippet": map[string]any{"channelTitle": "Lofi Girl"}},
					{"id": map[string]any{"kind": "youtube#channel"}},
					{"id": map[string]any{"kind": "youtube#channel", "channelId": "UC2"}, "snippet": map[string]any{"title": "Chillhop"}},
				},
			})
		})

		channels, err := client.SearchChannels(context.Background(), "lofi beats", 3)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(channels) != 2 {
			t.Fatalf("expected 2 channels, got %d", len(channels))
		}
		if channels[0].ChannelID != "UC1" || channels[0].Title != "Lofi Girl" {
			t.Errorf("unexpected first channel: %+v", channels[0])
		}
		if channels[1].Title != "Chillhop" {
			t.Errorf("expected title fallback to snippet.title, got %q", channels[1].Title)
		}
	})

	t.Run("SearchChannelPlaylists", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("channelId") != "UC1" || q.Get("type") != "playlist" || q.Get("order") != "date" || q.Get("maxResults") != "15" {
				t.Errorf("unexpected query: %s", r.URL.RawQuery)
			}
			writeJSON(t, w, http.StatusOK, map[string]any{
				"items": []map[string]any{
					{"id": map[string]any{"playlistId": "PL1"}, "snippet": map[string]any{"title": "Mix", "publishedAt": "2024-01-01T00:00:00Z"}},
				},
			})
		})

		playlists, err := client.SearchChannelPlaylists(context.Background(), "UC1", 15)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(playlists) != 1 || playlists[0].PlaylistID != "PL1" || playlists[0].ChannelID != "UC1" {
			t.Errorf("unexpected playlists: %+v", playlists)
		}
	})

	t.Run("PlaylistItems", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/youtube/v3/playlistItems" {
				t.Errorf("expected path /youtube/v3/playlistItems, got %s", r.URL.Path)
			}
			q := r.URL.Query()
			if q.Get("playlistId") != "PL1" || q.Get("maxResults") != "50" {
				t.Errorf("unexpected query: %s", r.URL.RawQuery)
			}
			if q.Get("pageToken") != "tok1" {
				t.Errorf("expected pageToken tok1, got %q", q.Get("pageToken"))
			}
			writeJSON(t, w, http.StatusOK, map[string]any{
				"nextPageToken": "tok2",
				"items": []map[string]any{
					{
						"contentDetails": map[string]any{"videoId": "vid1"},
						"snippet": map[string]any{
							"title":        "Song 1",
							"channelTitle": "Artist",
							"thumbnails":   map[string]any{"default": map[string]any{"url": "http://img/default"}},
						},
					},
					{
						"snippet": map[string]any{
							"title":      "Song 2",
							"resourceId": map[string]any{"videoId": "vid2"},
						},
					},
				},
			})
		})

		page, err := client.PlaylistItems(context.Background(), "PL1", "tok1", MaxPageSize)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if page.NextPageToken != "tok2" {
			t.Errorf("expected next token tok2, got %q", page.NextPageToken)
		}
		if len(page.Items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(page.Items))
		}
		first := page.Items[0]
		if first.VideoID != "vid1" || first.ChannelTitle != "Artist" {
			t.Errorf("unexpected first item: %+v", first)
		}
		if first.Thumbnails.Medium.Present() {
			t.Error("expected medium thumbnail to be absent")
		}
		if url, ok := first.Thumbnails.Default.Get(); !ok || url != "http://img/default" {
			t.Errorf("expected default thumbnail, got %q", url)
		}
		if page.Items[1].VideoID != "vid2" {
			t.Errorf("expected resourceId fallback vid2, got %q", page.Items[1].VideoID)
		}
	})

	t.Run("VideoDurations", func(t *testing.T) {
		t.Run("joins ids into one request", func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/youtube/v3/videos" {
					t.Errorf("expected path /youtube/v3/videos, got %s", r.URL.Path)
				}
				if got := joined(r, "part"); got != "contentDetails" {
					t.Errorf("expected part=contentDetails, got %q", got)
				}
				if got := joined(r, "id"); got != "vid1,gone" {
					t.Errorf("expected ids vid1,gone in one request, got %q", got)
				}
				writeJSON(t, w, http.StatusOK, map[string]any{
					"items": []map[string]any{
						{"id": "vid1", "contentDetails": map[string]any{"duration": "PT3M27S"}},
					},
				})
			})

			details, err := client.VideoDurations(context.Background(), []string{"vid1", "gone"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(details) != 1 || details[0].VideoID != "vid1" || details[0].Duration != "PT3M27S" {
				t.Errorf("unexpected details: %+v", details)
			}
		})

		t.Run("empty input issues no request", func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				t.Error("expected no request for empty ids")
			})
			details, err := client.VideoDurations(context.Background(), nil)
			if err != nil || len(details) != 0 {
				t.Errorf("expected empty result, got %v, %v", details, err)
			}
		})
	})

	t.Run("Videos", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if got := joined(r, "part"); got != "snippet,contentDetails" {
				t.Errorf("expected part=snippet,contentDetails, got %q", got)
			}
			writeJSON(t, w, http.StatusOK, map[string]any{
				"items": []map[string]any{
					{
						"id":             "vid1",
						"snippet":        map[string]any{"title": "Song", "channelTitle": "Artist"},
						"contentDetails": map[string]any{},
					},
				},
			})
		})

		records, err := client.Videos(context.Background(), []string{"vid1"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(records) != 1 || records[0].Title != "Song" {
			t.Fatalf("unexpected records: %+v", records)
		}
		if records[0].Duration.Present() {
			t.Error("expected missing duration to be absent")
		}
	})

	t.Run("Playlists", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/youtube/v3/playlists" {
				t.Errorf("expected path /youtube/v3/playlists, got %s", r.URL.Path)
			}
			writeJSON(t, w, http.StatusOK, map[string]any{
				"items": []map[string]any{
					{
						"id": "PL1",
						"snippet": map[string]any{
							"title":        "Mix",
							"channelId":    "UC1",
							"channelTitle": "Chan",
							"publishedAt":  "2024-01-01T00:00:00Z",
							"thumbnails":   map[string]any{"high": map[string]any{"url": "http://img/high"}},
						},
						"contentDetails": map[string]any{"itemCount": 12},
					},
				},
			})
		})

		records, err := client.Playlists(context.Background(), []string{"PL1"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		rec := records[0]
		if rec.ItemCount != 12 || rec.ChannelTitle != "Chan" || rec.PublishedAt != "2024-01-01T00:00:00Z" {
			t.Errorf("unexpected record: %+v", rec)
		}
		if !rec.Thumbnails.High.Present() {
			t.Error("expected high thumbnail")
		}
	})

	t.Run("upstream error payload", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusForbidden, map[string]any{
				"error": map[string]any{"code": 403, "message": "The request cannot be completed because you have exceeded your quota."},
			})
		})

		_, err := client.PlaylistItems(context.Background(), "PL1", "", MaxPageSize)
		if !errors.Is(err, shared.ErrUpstream) {
			t.Fatalf("expected upstream error, got %v", err)
		}

		var upstream *shared.UpstreamError
		if !errors.As(err, &upstream) {
			t.Fatalf("expected *shared.UpstreamError, got %T", err)
		}
		if upstream.Status != http.StatusForbidden {
			t.Errorf("expected status 403, got %d", upstream.Status)
		}
		if !strings.Contains(upstream.Message, "exceeded your quota") {
			t.Errorf("expected upstream message to be kept, got %q", upstream.Message)
		}
	})

	t.Run("non-JSON failure falls back to default message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad gateway", http.StatusBadGateway)
		})

		_, err := client.Videos(context.Background(), []string{"vid1"})
		var upstream *shared.UpstreamError
		if !errors.As(err, &upstream) {
			t.Fatalf("expected *shared.UpstreamError, got %v", err)
		}
		if upstream.Status != http.StatusBadGateway {
			t.Errorf("expected status 502, got %d", upstream.Status)
		}
	})

	t.Run("transport failure", func(t *testing.T) {
		client, err := NewYouTubeClient(context.Background(), YouTubeOpts{
			APIKey:    "k",
			BaseURL:   "http://upstream.invalid/",
			Transport: th.NewMockRoundTripper(nil, errors.New("dial failed")),
		})
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}

		_, err = client.SearchChannels(context.Background(), "q", 3)
		var upstream *shared.UpstreamError
		if !errors.As(err, &upstream) {
			t.Fatalf("expected *shared.UpstreamError, got %v", err)
		}
		if upstream.Message != msgSearch {
			t.Errorf("expected fallback message %q, got %q", msgSearch, upstream.Message)
		}
	})

	t.Run("cancelled context aborts before the call", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("expected no request after cancellation")
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := client.SearchChannels(ctx, "q", 3); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled in chain, got %v", err)
		}
	})
}

// joined returns every value of a repeated query parameter, comma separated.
func joined(r *http.Request, key string) string {
	return strings.Join(r.URL.Query()[key], ",")
}
