package tasks

import (
	"context"
	"sync/atomic"

	"github.com/desertthunder/ytgate/internal/models"
	"github.com/desertthunder/ytgate/internal/services"
	"golang.org/x/sync/errgroup"
)

// Chunk splits ids by position into consecutive slices of at most size elements. Duplicates are kept.
func Chunk(ids []string, size int) [][]string {
	if size <= 0 {
		size = services.MaxIDsPerRequest
	}
	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// FetchDurations looks up the duration of every id, one upstream call per chunk of at most 50 ids.
//
// Ids the upstream does not return are absent from the map. Empty input makes no call.
// Any failed chunk fails the whole lookup.
func (c *Catalog) FetchDurations(ctx context.Context, ids []string) (map[string]string, error) {
	chunks := Chunk(ids, services.MaxIDsPerRequest)
	durations := make(map[string]string, len(ids))
	if len(chunks) == 0 {
		return durations, nil
	}

	results := make([][]models.VideoDetail, len(chunks))
	var done atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConcurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			details, err := c.upstream.VideoDurations(gctx, chunk)
			if err != nil {
				return err
			}
			results[i] = details
			c.sendProgress(durationsUpdate(int(done.Add(1)), len(chunks)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, details := range results {
		for _, d := range details {
			durations[d.VideoID] = d.Duration
		}
	}
	return durations, nil
}
