// Package tasks aggregates catalog calls into client-ready songs and playlists.
//
// # Operations
//
// [Catalog] exposes three operations:
//
//  1. [Catalog.ListPlaylistSongs] : every song of a playlist
//     - Walks every page of the playlist ([Catalog.CollectAllItems])
//     - Looks up durations in batches of at most 50 ids ([Catalog.FetchDurations])
//     - Normalizes each item in page order
//
//  2. [Catalog.SearchPlaylists] : playlists related to a free-text query
//     - Resolves the query to channels, expands the top channels into their newest playlists
//     - Deduplicates candidates and fetches their details in batches
//     - Returns at most 10 summaries, newest first
//
//  3. [Catalog.GetVideoInfo] : a single video as a song
//
// Each operation refuses to run when the upstream has no credential, before any call is made.
//
// # Concurrency
//
// Pagination is sequential. Duration batches, channel expansions and detail batches run through
// an errgroup bounded by [CatalogOpts.MaxConcurrency]. Results are stored by index and merged in
// input order, so output never depends on arrival order. The first failure cancels the rest.
//
// # Progress Reporting
//
// A [Catalog] built with a progress channel emits [ProgressUpdate] values as pages and batches
// complete. Sends never block; updates are dropped when the channel is full.
package tasks
