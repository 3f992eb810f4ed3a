// package formatter normalizes upstream records into songs and playlist summaries, and renders them for the CLI
// (JSON, CSV, plain text, table)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/ytgate/internal/models"
	"github.com/desertthunder/ytgate/internal/shared"
)

// Format is a CLI output format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatText  Format = "txt"
	FormatTable Format = "table"
)

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = cellStyle.Foreground(lipgloss.Color("#626262"))
)

// ParseFormat validates a format name. Empty selects JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCSV, FormatText, FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want json, csv, txt or table)", shared.ErrInvalidInput, s)
	}
}

// HumanDuration renders an ISO 8601 duration such as PT1H2M3S as 1:02:03.
//
// Values that do not parse are returned unchanged.
func HumanDuration(iso string) string {
	m := isoDuration.FindStringSubmatch(iso)
	if m == nil {
		return iso
	}

	part := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}
	hours := part(m[1])*24 + part(m[2])
	minutes, seconds := part(m[3]), part(m[4])

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// SongsToCSV renders songs with columns: ID, Title, Artist, Duration, Thumbnail
func SongsToCSV(songs []models.Song) ([]byte, error) {
	rows := make([][]string, 0, len(songs))
	for _, s := range songs {
		rows = append(rows, []string{s.ID, s.Title, s.Artist, s.Duration, s.Thumbnail})
	}
	return writeCSV([]string{"ID", "Title", "Artist", "Duration", "Thumbnail"}, rows)
}

// PlaylistsToCSV renders summaries with columns: ID, Title, Channel, Published, Items, Thumbnail
func PlaylistsToCSV(playlists []models.PlaylistSummary) ([]byte, error) {
	rows := make([][]string, 0, len(playlists))
	for _, p := range playlists {
		rows = append(rows, []string{
			p.ID, p.Title, p.ChannelTitle, p.PublishedAt, strconv.FormatInt(p.ItemCount, 10), p.Thumbnail,
		})
	}
	return writeCSV([]string{"ID", "Title", "Channel", "Published", "Items", "Thumbnail"}, rows)
}

func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write CSV records: %w", err)
	}
	return buf.Bytes(), nil
}

// SongsToText renders a numbered "Artist - Title [m:ss]" listing.
func SongsToText(songs []models.Song) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Songs: %d\n\n", len(songs))
	for i, s := range songs {
		fmt.Fprintf(&buf, "%d. %s - %s [%s]\n", i+1, s.Artist, s.Title, HumanDuration(s.Duration))
	}
	return buf.Bytes()
}

// PlaylistsToText renders a numbered listing of playlist summaries.
func PlaylistsToText(playlists []models.PlaylistSummary) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Playlists: %d\n\n", len(playlists))
	for i, p := range playlists {
		fmt.Fprintf(&buf, "%d. %s (%s)\n", i+1, p.Title, p.ID)
		fmt.Fprintf(&buf, "   %s, %d items, published %s\n", p.ChannelTitle, p.ItemCount, p.PublishedAt)
	}
	return buf.Bytes()
}

// SongsTable renders songs as a bordered terminal table.
func SongsTable(songs []models.Song) string {
	rows := make([][]string, 0, len(songs))
	for i, s := range songs {
		rows = append(rows, []string{strconv.Itoa(i + 1), s.Title, s.Artist, HumanDuration(s.Duration), s.ID})
	}
	return renderTable([]string{"#", "Title", "Artist", "Length", "ID"}, rows)
}

// PlaylistsTable renders playlist summaries as a bordered terminal table.
func PlaylistsTable(playlists []models.PlaylistSummary) string {
	rows := make([][]string, 0, len(playlists))
	for i, p := range playlists {
		published := p.PublishedAt
		if t := p.Published(); !t.IsZero() {
			published = t.Format("2006-01-02")
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1), p.Title, p.ChannelTitle, published, strconv.FormatInt(p.ItemCount, 10), p.ID,
		})
	}
	return renderTable([]string{"#", "Title", "Channel", "Published", "Items", "ID"}, rows)
}

func renderTable(headers []string, rows [][]string) string {
	last := len(headers) - 1
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == last:
				return dimStyle
			default:
				return cellStyle
			}
		}).
		String()
}

// Songs renders songs in the given format.
func Songs(songs []models.Song, format Format, pretty bool) ([]byte, error) {
	switch format {
	case FormatCSV:
		return SongsToCSV(songs)
	case FormatText:
		return SongsToText(songs), nil
	case FormatTable:
		return []byte(SongsTable(songs) + "\n"), nil
	default:
		return shared.MarshalJSON(nonNil(songs), pretty)
	}
}

// Playlists renders playlist summaries in the given format.
func Playlists(playlists []models.PlaylistSummary, format Format, pretty bool) ([]byte, error) {
	switch format {
	case FormatCSV:
		return PlaylistsToCSV(playlists)
	case FormatText:
		return PlaylistsToText(playlists), nil
	case FormatTable:
		return []byte(PlaylistsTable(playlists) + "\n"), nil
	default:
		return shared.MarshalJSON(nonNil(playlists), pretty)
	}
}

// Video renders a single song in the given format.
func Video(song models.Song, format Format, pretty bool) ([]byte, error) {
	if format == FormatJSON {
		return shared.MarshalJSON(song, pretty)
	}
	return Songs([]models.Song{song}, format, pretty)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
