// Package server provides the HTTP API: routing, middleware and the catalog operation handlers.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses a chi mux internally with method filtering and JSON 404/405 bodies.
//
// # Operations
//
// [New] mounts three POST endpoints under a configurable prefix (default /.netlify/functions):
//
//	POST {prefix}/youtube-playlist    {"playlistId": "..."} -> [Song, ...]
//	POST {prefix}/youtube-search      {"query": "..."}      -> [PlaylistSummary, ...]
//	POST {prefix}/youtube-video-info  {"videoId": "..."}    -> Song
//	GET  /health                                             -> {"status": "ok", "service": "ytgate"}
//
// Requests are checked in order: method (405), input (400), then the operation runs. A missing
// credential or any upstream failure is a 500 with {"error": message}. Every response is JSON and
// carries Access-Control-Allow-Origin: * and an X-Request-Id.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
// [Operation] is the implementation used for catalog endpoints.
package server
