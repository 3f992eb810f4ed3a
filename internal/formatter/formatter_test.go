package formatter

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/ytgate/internal/models"
	"github.com/desertthunder/ytgate/internal/shared"
)

var (
	songs = []models.Song{
		{ID: "vid1", Title: "Song One", Artist: "Artist One", Thumbnail: "m1.jpg", Duration: "PT3M"},
		{ID: "vid2", Title: "Song, Two", Artist: "Artist Two", Thumbnail: "", Duration: "PT1H2M3S"},
	}
	playlists = []models.PlaylistSummary{
		{
			ID:           "PL1",
			Title:        "Newest",
			ChannelTitle: "Channel A",
			PublishedAt:  "2024-05-01T00:00:00Z",
			Thumbnail:    "h1.jpg",
			ItemCount:    12,
		},
		{
			ID:           "PL2",
			Title:        "Older",
			ChannelTitle: "Channel B",
			PublishedAt:  "2023-01-01T00:00:00Z",
			ItemCount:    3,
		},
	}
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatJSON},
		{"json", FormatJSON},
		{"CSV", FormatCSV},
		{" txt ", FormatText},
		{"table", FormatTable},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseFormat("markdown")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestHumanDuration(t *testing.T) {
	tests := map[string]string{
		"PT0S":      "0:00",
		"PT3M27S":   "3:27",
		"PT45S":     "0:45",
		"PT1H2M3S":  "1:02:03",
		"PT2H":      "2:00:00",
		"P1DT1M":    "24:01:00",
		"not-a-dur": "not-a-dur",
		"":          "",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			if got := HumanDuration(in); got != want {
				t.Errorf("HumanDuration(%q) = %q, want %q", in, got, want)
			}
		})
	}
}

func TestExporters(t *testing.T) {
	t.Run("SongsToCSV", func(t *testing.T) {
		data, err := SongsToCSV(songs)
		if err != nil {
			t.Fatalf("SongsToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "ID,Title,Artist,Duration,Thumbnail\n") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "vid1,Song One,Artist One,PT3M,m1.jpg") {
			t.Errorf("CSV missing first song, got: %s", output)
		}
		if !strings.Contains(output, `vid2,"Song, Two",Artist Two,PT1H2M3S,`) {
			t.Errorf("CSV did not quote title with comma, got: %s", output)
		}
	})

	t.Run("PlaylistsToCSV", func(t *testing.T) {
		data, err := PlaylistsToCSV(playlists)
		if err != nil {
			t.Fatalf("PlaylistsToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d", len(lines))
		}
		if lines[1] != "PL1,Newest,Channel A,2024-05-01T00:00:00Z,12,h1.jpg" {
			t.Errorf("unexpected row: %s", lines[1])
		}
	})

	t.Run("SongsToText", func(t *testing.T) {
		output := string(SongsToText(songs))

		if !strings.Contains(output, "Songs: 2") {
			t.Errorf("Text missing song count")
		}
		if !strings.Contains(output, "1. Artist One - Song One [3:00]") {
			t.Errorf("Text missing song1, got: %s", output)
		}
		if !strings.Contains(output, "2. Artist Two - Song, Two [1:02:03]") {
			t.Errorf("Text missing song2, got: %s", output)
		}
	})

	t.Run("PlaylistsToText", func(t *testing.T) {
		output := string(PlaylistsToText(playlists))

		if !strings.Contains(output, "Playlists: 2") {
			t.Errorf("Text missing playlist count")
		}
		if !strings.Contains(output, "1. Newest (PL1)") {
			t.Errorf("Text missing playlist1, got: %s", output)
		}
		if !strings.Contains(output, "Channel B, 3 items") {
			t.Errorf("Text missing playlist2 details, got: %s", output)
		}
	})

	t.Run("Tables", func(t *testing.T) {
		out := SongsTable(songs)
		for _, want := range []string{"Title", "Artist", "Song One", "3:00", "vid2"} {
			if !strings.Contains(out, want) {
				t.Errorf("songs table missing %q", want)
			}
		}

		out = PlaylistsTable(playlists)
		for _, want := range []string{"Published", "Newest", "2024-05-01", "Channel B"} {
			if !strings.Contains(out, want) {
				t.Errorf("playlists table missing %q", want)
			}
		}
	})
}

func TestRender(t *testing.T) {
	t.Run("songs json is a bare array", func(t *testing.T) {
		data, err := Songs(songs, FormatJSON, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var body []models.Song
		if err := json.Unmarshal(data, &body); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if len(body) != 2 || body[1].Duration != "PT1H2M3S" {
			t.Errorf("unexpected songs: %+v", body)
		}
	})

	t.Run("empty list is an array", func(t *testing.T) {
		data, err := Playlists(nil, FormatJSON, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `[]` {
			t.Errorf("got %s", data)
		}
	})

	t.Run("pretty json", func(t *testing.T) {
		data, err := Video(songs[0], FormatJSON, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(data), "\n  \"id\": \"vid1\"") {
			t.Errorf("expected indented output, got %s", data)
		}
	})

	t.Run("video in other formats", func(t *testing.T) {
		data, err := Video(songs[0], FormatText, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(data), "1. Artist One - Song One [3:00]") {
			t.Errorf("got %s", data)
		}
	})

	t.Run("playlists csv", func(t *testing.T) {
		data, err := Playlists(playlists, FormatCSV, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(string(data), "ID,Title,Channel") {
			t.Errorf("got %s", data)
		}
	})
}
