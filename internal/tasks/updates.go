package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase, 0 when unknown
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	CollectPages Phase = iota
	FetchDurations
	SearchChannels
	ExpandChannels
	FetchDetails
	FetchVideo
)

func (p Phase) String() string {
	switch p {
	case CollectPages:
		return "collect_pages"
	case FetchDurations:
		return "fetch_durations"
	case SearchChannels:
		return "search_channels"
	case ExpandChannels:
		return "expand_channels"
	case FetchDetails:
		return "fetch_details"
	case FetchVideo:
		return "fetch_video"
	default:
		return ""
	}
}

func pageUpdate(page, items int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CollectPages,
		Step:    page,
		Message: fmt.Sprintf("Fetched page %d (%d items so far)", page, items),
	}
}

func durationsUpdate(done, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchDurations,
		Step:    done,
		Total:   total,
		Message: fmt.Sprintf("Fetched durations batch %d/%d", done, total),
	}
}

func channelsUpdate(query string, found int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchChannels,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d channels for %q", found, query),
	}
}

func expandUpdate(done, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExpandChannels,
		Step:    done,
		Total:   total,
		Message: fmt.Sprintf("Listed playlists for channel %d/%d", done, total),
	}
}

func detailsUpdate(done, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchDetails,
		Step:    done,
		Total:   total,
		Message: fmt.Sprintf("Fetched playlist details batch %d/%d", done, total),
	}
}

func videoUpdate(id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchVideo,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching video %s", id),
	}
}
