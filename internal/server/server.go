// package server contains the routing, middleware and handlers of the catalog HTTP API
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytgate/internal/models"
)

const ServiceName = "ytgate"

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the catalog service.
// Implementations handle specific endpoints.
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// Catalog is the set of operations the HTTP API exposes.
type Catalog interface {
	ListPlaylistSongs(ctx context.Context, playlistID string) ([]models.Song, error)
	SearchPlaylists(ctx context.Context, query string) ([]models.PlaylistSummary, error)
	GetVideoInfo(ctx context.Context, videoID string) (models.Song, error)
}

// Opts configures [New].
type Opts struct {
	Prefix         string        // Path prefix of the operation routes
	RequestTimeout time.Duration // Deadline applied to every request, 0 disables
	Logger         *log.Logger
}

// New builds the HTTP API for catalog: the three POST operations under opts.Prefix and GET /health.
func New(catalog Catalog, opts Opts) *BasicRouter {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	prefix := "/" + strings.Trim(opts.Prefix, "/")
	if prefix == "/" {
		prefix = ""
	}

	r := NewBasicRouter()
	r.Use(RequestID, RealIP, AccessLog(logger), Recover(logger), JSONHeaders)
	if opts.RequestTimeout > 0 {
		r.Use(Timeout(opts.RequestTimeout))
	}

	r.Handle(http.MethodGet, "/health", http.HandlerFunc(HandleHealth))
	for _, h := range Operations(catalog, prefix, logger) {
		r.Handler(h)
	}
	return r
}
