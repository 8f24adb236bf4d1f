package tasks

import (
	"fmt"

	"github.com/desertthunder/lyricbook/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	SearchSongs Phase = iota
	FetchLyrics
	SaveLyric
	AddToPlaylist
	LoadLibrary
	ExportPlaylist
)

func (p Phase) String() string {
	switch p {
	case SearchSongs:
		return "search_songs"
	case FetchLyrics:
		return "fetch_lyrics"
	case SaveLyric:
		return "save_lyric"
	case AddToPlaylist:
		return "add_to_playlist"
	case LoadLibrary:
		return "load_library"
	case ExportPlaylist:
		return "export_playlist"
	default:
		return ""
	}
}

// sendProgress sends without blocking; a nil channel or a full buffer drops the update.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func searchingUpdate(source, query string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchSongs,
		Step:    1,
		Total:   2,
		Message: fmt.Sprintf("Searching %s for %q...", source, query),
	}
}

func foundResultsUpdate(results []models.SearchResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchSongs,
		Step:    2,
		Total:   2,
		Message: fmt.Sprintf("Found %d songs", len(results)),
		Data:    results,
	}
}

func fetchingLyricsUpdate(r models.SearchResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchLyrics,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching lyrics: %s - %s", r.Artist, r.Title),
		Data:    r,
	}
}

func savedLyricUpdate(l models.Lyric) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SaveLyric,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Saved lyric: %s (ID: %s)", l.Title, l.ID),
		Data:    l,
	}
}

func addedToPlaylistUpdate(p models.Playlist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddToPlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Added to playlist: %s", p.Name),
		Data:    p,
	}
}

func loadingLibraryUpdate(playlists int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadLibrary,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Loaded %d playlists", playlists),
	}
}

func exportingPlaylistUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, name),
	}
}

func exportCompletedUpdate(step, total int, name, file string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%s)", step, total, name, file),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
