// Package models defines the request-scoped records that flow between the upstream client, the aggregation tasks and the
// HTTP/CLI layers.
//
// The package contains two categories of types:
//
// 1. Upstream records: what the YouTube Data API returned, with absent fields modelled as [Optional] values
//   - [PlaylistItemRef] and [PlaylistItemsPage] : one page of playlist items
//   - [VideoDetail] : per-video duration from the id-batched videos endpoint
//   - [VideoRecord] : a full single video (title, channel, thumbnails, duration)
//   - [ChannelRef], [PlaylistRef], [PlaylistRecord] : search fan-out stages
//
// 2. Output records: the simplified, client-ready schema
//   - [Song] : {id, title, artist, thumbnail, duration}
//   - [PlaylistSummary] : one detailed playlist card
//
// Nothing here is persisted. Every value is built during one invocation and discarded with the response.
package models
