// Package catalog holds the read-side helpers that join lyrics, genres, playlists, favorites and tags.
//
// Deleting a genre or a lyric never touches the entities that point at it. Dangling references are
// resolved lazily here: a missing genre reads as [models.UnknownGenre] and a missing lyric is skipped.
// [Audit] and [Repair] exist for an explicit cleanup pass and are never run implicitly.
package catalog

import (
	"strings"

	"github.com/desertthunder/lyricbook/internal/models"
)

// GenreName resolves genreID against genres, falling back to [models.UnknownGenre].
func GenreName(genreID models.ID, genres []models.Genre) string {
	if genreID.IsZero() {
		return models.UnknownGenre
	}
	if g, ok := models.Find(genres, genreID); ok {
		return g.Name
	}
	return models.UnknownGenre
}

// Filter narrows a lyric list. Zero fields match everything.
type Filter struct {
	Artist        string           // case-insensitive substring of the artist
	GenreID       models.ID        // exact genre id
	FavoritesOnly bool             // restrict to Favorites
	Favorites     []models.ID      // favorite lyric ids
	TagID         models.ID        // exact tag id, looked up in Tags
	Tags          models.LyricTags // lyric to tag assignments
}

// Apply returns the lyrics matching f, preserving order.
func (f Filter) Apply(lyrics []models.Lyric) []models.Lyric {
	artist := strings.ToLower(strings.TrimSpace(f.Artist))
	out := []models.Lyric{}
	for _, l := range lyrics {
		if artist != "" && !strings.Contains(strings.ToLower(l.Artist), artist) {
			continue
		}
		if !f.GenreID.IsZero() && l.GenreID != f.GenreID {
			continue
		}
		if f.FavoritesOnly && !models.ContainsID(f.Favorites, l.ID) {
			continue
		}
		if !f.TagID.IsZero() && !models.ContainsID(f.Tags[l.ID], f.TagID) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Resolve returns the lyrics a playlist points at, in playlist order, skipping ids that no longer exist.
func Resolve(p models.Playlist, lyrics []models.Lyric) []models.Lyric {
	out := make([]models.Lyric, 0, len(p.LyricsIDs))
	for _, id := range p.LyricsIDs {
		if l, ok := models.Find(lyrics, id); ok {
			out = append(out, l)
		}
	}
	return out
}

// Entry is a lyric joined with its resolved genre name and favorite flag.
type Entry struct {
	models.Lyric
	GenreName string `json:"genreName"`
	Favorite  bool   `json:"favorite"`
}

// Entries joins each lyric with its genre name and favorite flag
func Entries(lyrics []models.Lyric, genres []models.Genre, favorites []models.ID) []Entry {
	out := make([]Entry, len(lyrics))
	for i, l := range lyrics {
		out[i] = Entry{Lyric: l, GenreName: GenreName(l.GenreID, genres), Favorite: models.ContainsID(favorites, l.ID)}
	}
	return out
}
