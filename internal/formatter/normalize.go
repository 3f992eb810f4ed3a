package formatter

import (
	"github.com/desertthunder/ytgate/internal/models"
	"github.com/desertthunder/ytgate/internal/shared"
)

const msgVideoNotFound = "Video not found"

// Coalesce returns the first present value, or an absent one when none is set.
func Coalesce[T any](opts ...models.Optional[T]) models.Optional[T] {
	for _, o := range opts {
		if o.Present() {
			return o
		}
	}
	return models.None[T]()
}

// SongThumbnail resolves a song thumbnail: medium, then default, then "".
func SongThumbnail(t models.Thumbnails) string {
	return Coalesce(t.Medium, t.Default).OrElse("")
}

// PlaylistThumbnail resolves a playlist card thumbnail: high, then medium, then default, then "".
func PlaylistThumbnail(t models.Thumbnails) string {
	return Coalesce(t.High, t.Medium, t.Default).OrElse("")
}

func artist(channelTitle string) string {
	return models.OptionalString(channelTitle).OrElse(models.UnknownArtist)
}

// ToSong normalizes a playlist item, taking its duration from durations or [models.ZeroDuration].
func ToSong(item models.PlaylistItemRef, durations map[string]string) models.Song {
	return models.Song{
		ID:        item.VideoID,
		Title:     item.Title,
		Artist:    artist(item.ChannelTitle),
		Thumbnail: SongThumbnail(item.Thumbnails),
		Duration:  models.OptionalString(durations[item.VideoID]).OrElse(models.ZeroDuration),
	}
}

// ToVideoInfo normalizes the first record of a single-video lookup.
//
// Zero records means the id matched nothing and yields a [shared.NotFoundError]. The returned id is the requested one.
func ToVideoInfo(records []models.VideoRecord, videoID string) (models.Song, error) {
	if len(records) == 0 {
		return models.Song{}, &shared.NotFoundError{Message: msgVideoNotFound}
	}

	v := records[0]
	return models.Song{
		ID:        videoID,
		Title:     v.Title,
		Artist:    artist(v.ChannelTitle),
		Thumbnail: SongThumbnail(v.Thumbnails),
		Duration:  v.Duration.OrElse(models.ZeroDuration),
	}, nil
}

// ToPlaylistSummary normalizes a detailed playlist record.
func ToPlaylistSummary(p models.PlaylistRecord) models.PlaylistSummary {
	return models.PlaylistSummary{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		ChannelID:    p.ChannelID,
		ChannelTitle: p.ChannelTitle,
		PublishedAt:  p.PublishedAt,
		Thumbnail:    PlaylistThumbnail(p.Thumbnails),
		ItemCount:    p.ItemCount,
	}
}
