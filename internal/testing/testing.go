// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/ytgate/internal/models"
)

// Method names recorded by [FakeUpstream].
const (
	CallSearchChannels         = "SearchChannels"
	CallSearchChannelPlaylists = "SearchChannelPlaylists"
	CallPlaylistItems          = "PlaylistItems"
	CallVideoDurations         = "VideoDurations"
	CallVideos                 = "Videos"
	CallPlaylists              = "Playlists"
)

// FakeUpstream is an in-memory test double for [services.Upstream] that counts every call.
//
// Pages are served by (playlist, token); the first page of a playlist is stored under the empty token.
type FakeUpstream struct {
	Unconfigured bool
	Delay        time.Duration // Sleep inside each call, used to observe concurrency

	Channels         map[string][]models.ChannelRef   // by query
	ChannelPlaylists map[string][]models.PlaylistRef  // by channel id
	Pages            map[string]map[string]*models.PlaylistItemsPage
	Durations        map[string]string                // by video id
	VideoRecords     map[string]models.VideoRecord    // by video id
	PlaylistRecords  map[string]models.PlaylistRecord // by playlist id
	Errors           map[string]error                 // by method name

	mu         sync.Mutex
	calls      map[string]int
	batches    map[string][]int
	tokens     []string
	inFlight   int
	peakFlight int
}

// NewFakeUpstream creates an empty, configured fake.
func NewFakeUpstream() *FakeUpstream {
	return &FakeUpstream{
		Channels:         map[string][]models.ChannelRef{},
		ChannelPlaylists: map[string][]models.PlaylistRef{},
		Pages:            map[string]map[string]*models.PlaylistItemsPage{},
		Durations:        map[string]string{},
		VideoRecords:     map[string]models.VideoRecord{},
		PlaylistRecords:  map[string]models.PlaylistRecord{},
		Errors:           map[string]error{},
		calls:            map[string]int{},
		batches:          map[string][]int{},
	}
}

// AddPlaylist registers a playlist split into pages of the given sizes and returns its video ids in order.
//
// Every video gets a duration of PT{n}S where n is its position.
func (f *FakeUpstream) AddPlaylist(playlistID string, pageSizes ...int) []string {
	pages := map[string]*models.PlaylistItemsPage{}
	ids := []string{}
	token := ""
	for p, size := range pageSizes {
		page := &models.PlaylistItemsPage{Items: []models.PlaylistItemRef{}}
		for range size {
			n := len(ids) + 1
			id := fmt.Sprintf("%s-v%d", playlistID, n)
			ids = append(ids, id)
			page.Items = append(page.Items, models.PlaylistItemRef{
				VideoID:      id,
				Title:        fmt.Sprintf("Track %d", n),
				ChannelTitle: "Artist",
				Thumbnails:   models.Thumbnails{Medium: models.Some(id + ".jpg")},
			})
			f.Durations[id] = fmt.Sprintf("PT%dS", n)
		}
		if p < len(pageSizes)-1 {
			page.NextPageToken = fmt.Sprintf("page-%d", p+2)
		}
		pages[token] = page
		token = page.NextPageToken
	}
	f.Pages[playlistID] = pages
	return ids
}

func (f *FakeUpstream) enter(method string, batch int) error {
	f.mu.Lock()
	f.calls[method]++
	if batch >= 0 {
		f.batches[method] = append(f.batches[method], batch)
	}
	f.inFlight++
	if f.inFlight > f.peakFlight {
		f.peakFlight = f.inFlight
	}
	err := f.Errors[method]
	f.mu.Unlock()

	if f.Delay > 0 {
		time.Sleep(f.Delay)
	}
	return err
}

func (f *FakeUpstream) leave() {
	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()
}

// Calls returns how many times method was invoked.
func (f *FakeUpstream) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// TotalCalls returns the number of upstream calls of any kind.
func (f *FakeUpstream) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

// BatchSizes returns the id count of each batched call to method, in call order.
func (f *FakeUpstream) BatchSizes(method string) []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.batches[method]...)
}

// Tokens returns the page tokens passed to PlaylistItems, in call order.
func (f *FakeUpstream) Tokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tokens...)
}

// PeakConcurrency returns the highest number of calls observed in flight at once.
func (f *FakeUpstream) PeakConcurrency() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.peakFlight
}

func (f *FakeUpstream) Configured() bool { return !f.Unconfigured }

func (f *FakeUpstream) SearchChannels(ctx context.Context, query string, max int64) ([]models.ChannelRef, error) {
	defer f.leave()
	if err := f.enter(CallSearchChannels, -1); err != nil {
		return nil, err
	}
	channels := f.Channels[query]
	if int64(len(channels)) > max {
		channels = channels[:max]
	}
	return channels, nil
}

func (f *FakeUpstream) SearchChannelPlaylists(ctx context.Context, channelID string, max int64) ([]models.PlaylistRef, error) {
	defer f.leave()
	if err := f.enter(CallSearchChannelPlaylists, -1); err != nil {
		return nil, err
	}
	playlists := f.ChannelPlaylists[channelID]
	if int64(len(playlists)) > max {
		playlists = playlists[:max]
	}
	return playlists, nil
}

func (f *FakeUpstream) PlaylistItems(ctx context.Context, playlistID, pageToken string, pageSize int64) (*models.PlaylistItemsPage, error) {
	defer f.leave()
	f.mu.Lock()
	f.tokens = append(f.tokens, pageToken)
	f.mu.Unlock()
	if err := f.enter(CallPlaylistItems, -1); err != nil {
		return nil, err
	}

	page, ok := f.Pages[playlistID][pageToken]
	if !ok {
		return nil, fmt.Errorf("fake: no page %q for playlist %q", pageToken, playlistID)
	}
	return page, nil
}

func (f *FakeUpstream) VideoDurations(ctx context.Context, ids []string) ([]models.VideoDetail, error) {
	defer f.leave()
	if err := f.enter(CallVideoDurations, len(ids)); err != nil {
		return nil, err
	}
	details := []models.VideoDetail{}
	for _, id := range ids {
		if d, ok := f.Durations[id]; ok {
			details = append(details, models.VideoDetail{VideoID: id, Duration: d})
		}
	}
	return details, nil
}

func (f *FakeUpstream) Videos(ctx context.Context, ids []string) ([]models.VideoRecord, error) {
	defer f.leave()
	if err := f.enter(CallVideos, len(ids)); err != nil {
		return nil, err
	}
	records := []models.VideoRecord{}
	for _, id := range ids {
		if r, ok := f.VideoRecords[id]; ok {
			records = append(records, r)
		}
	}
	return records, nil
}

func (f *FakeUpstream) Playlists(ctx context.Context, ids []string) ([]models.PlaylistRecord, error) {
	defer f.leave()
	if err := f.enter(CallPlaylists, len(ids)); err != nil {
		return nil, err
	}
	records := []models.PlaylistRecord{}
	for _, id := range ids {
		if r, ok := f.PlaylistRecords[id]; ok {
			records = append(records, r)
		}
	}
	return records, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}
