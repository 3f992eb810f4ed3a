package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytgate/internal/shared"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	msgMethodNotAllowed = "Method Not Allowed"
	msgPlaylistRequired = "Playlist ID is required"
	msgQueryRequired    = "Query parameter is required"
	msgVideoRequired    = "Video ID is required"
)

// Fallback messages for failures that carry no message of their own.
const (
	msgPlaylistFailed = "Failed to fetch playlist"
	msgSearchFailed   = "Failed to search YouTube"
	msgVideoFailed    = "Failed to fetch video info"
)

const maxBodyBytes = 64 << 10

// Operation is a POST-only endpoint that reads one required string field and runs a catalog call with it.
type Operation struct {
	path     string
	field    string
	required string
	fallback string
	run      func(ctx context.Context, value string) (any, error)
	logger   *log.Logger
}

// Operations returns the three catalog endpoints mounted under prefix.
func Operations(catalog Catalog, prefix string, logger *log.Logger) []*Operation {
	return []*Operation{
		{
			path:     prefix + "/youtube-playlist",
			field:    "playlistId",
			required: msgPlaylistRequired,
			fallback: msgPlaylistFailed,
			run: func(ctx context.Context, id string) (any, error) {
				return catalog.ListPlaylistSongs(ctx, id)
			},
			logger: logger,
		},
		{
			path:     prefix + "/youtube-search",
			field:    "query",
			required: msgQueryRequired,
			fallback: msgSearchFailed,
			run: func(ctx context.Context, q string) (any, error) {
				return catalog.SearchPlaylists(ctx, q)
			},
			logger: logger,
		},
		{
			path:     prefix + "/youtube-video-info",
			field:    "videoId",
			required: msgVideoRequired,
			fallback: msgVideoFailed,
			run: func(ctx context.Context, id string) (any, error) {
				return catalog.GetVideoInfo(ctx, id)
			},
			logger: logger,
		},
	}
}

func (o *Operation) Routes() []string {
	return []string{o.path}
}

// ServeHTTP checks the method, then the input, then runs the operation.
//
// A body that is not a JSON object with the field as a non-empty string is a 400.
// Configuration, upstream and not-found failures are a 500 carrying their message.
func (o *Operation) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r)
		return
	}

	value, ok := o.decode(r)
	if !ok {
		writeError(w, http.StatusBadRequest, o.required)
		return
	}

	result, err := o.run(r.Context(), value)
	if err != nil {
		l := shared.WithLogger(o.logger, "request_id", middleware.GetReqID(r.Context()), "path", o.path)
		if errors.Is(err, shared.ErrNotConfigured) {
			l.Error("YOUTUBE_API_KEY not configured")
		} else {
			l.Error("operation failed", "err", err)
		}
		writeError(w, http.StatusInternalServerError, shared.PublicMessage(err, o.fallback))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (o *Operation) decode(r *http.Request) (string, bool) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		return "", false
	}

	var value string
	raw, ok := body[o.field]
	if !ok || json.Unmarshal(raw, &value) != nil || value == "" {
		return "", false
	}
	return value, true
}

// HandleHealth reports liveness. It makes no upstream call.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": ServiceName,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		data = []byte(`{"error":"Internal Server Error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
