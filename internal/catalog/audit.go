package catalog

import (
	"cmp"
	"slices"

	"github.com/desertthunder/lyricbook/internal/models"
)

// Snapshot is everything [Audit] looks at.
//
// Unreadable names the keys whose stored value could not be decoded; their collections are empty
// and every reference into them looks dangling.
type Snapshot struct {
	Genres     []models.Genre
	Lyrics     []models.Lyric
	Playlists  []models.Playlist
	Favorites  []models.ID
	Tags       []models.Tag
	LyricTags  models.LyricTags
	Unreadable []string
}

// Dangling is a reference from Owner to a Target that no longer exists.
type Dangling struct {
	Kind   string    `json:"kind"`
	Owner  models.ID `json:"owner"`
	Target models.ID `json:"target"`
}

// Dangling reference kinds
const (
	DanglingGenre         = "lyric-genre"
	DanglingPlaylistEntry = "playlist-lyric"
	DanglingFavorite      = "favorite"
	DanglingTagLyric      = "tag-lyric"
	DanglingTagAssignment = "tag-assignment"
)

// Report lists every dangling reference found by [Audit].
type Report struct {
	Dangling   []Dangling `json:"dangling"`
	Unreadable []string   `json:"unreadable,omitempty"`
}

// Clean reports whether every key was readable and nothing dangles.
func (r Report) Clean() bool { return len(r.Dangling) == 0 && len(r.Unreadable) == 0 }

// Count returns the number of references of kind
func (r Report) Count(kind string) int {
	n := 0
	for _, d := range r.Dangling {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Audit finds every reference to a genre, lyric or tag that no longer exists.
func Audit(s Snapshot) Report {
	r := Report{Unreadable: s.Unreadable}
	add := func(kind string, owner, target models.ID) {
		r.Dangling = append(r.Dangling, Dangling{Kind: kind, Owner: owner, Target: target})
	}

	for _, l := range s.Lyrics {
		if !l.GenreID.IsZero() && models.IndexOf(s.Genres, l.GenreID) < 0 {
			add(DanglingGenre, l.ID, l.GenreID)
		}
	}
	for _, p := range s.Playlists {
		for _, id := range p.LyricsIDs {
			if models.IndexOf(s.Lyrics, id) < 0 {
				add(DanglingPlaylistEntry, p.ID, id)
			}
		}
	}
	for _, id := range s.Favorites {
		if models.IndexOf(s.Lyrics, id) < 0 {
			add(DanglingFavorite, "", id)
		}
	}
	for lyricID, tagIDs := range s.LyricTags {
		if models.IndexOf(s.Lyrics, lyricID) < 0 {
			add(DanglingTagLyric, lyricID, lyricID)
			continue
		}
		for _, tagID := range tagIDs {
			if models.IndexOf(s.Tags, tagID) < 0 {
				add(DanglingTagAssignment, lyricID, tagID)
			}
		}
	}

	slices.SortStableFunc(r.Dangling, func(a, b Dangling) int {
		return cmp.Or(cmp.Compare(a.Kind, b.Kind), cmp.Compare(a.Owner, b.Owner), cmp.Compare(a.Target, b.Target))
	})
	return r
}

// Repair returns a copy of s with every dangling reference removed.
// Lyrics with a missing genre have their genre unset.
func Repair(s Snapshot) Snapshot {
	out := s

	out.Lyrics = make([]models.Lyric, len(s.Lyrics))
	for i, l := range s.Lyrics {
		if !l.GenreID.IsZero() && models.IndexOf(s.Genres, l.GenreID) < 0 {
			l.GenreID = ""
		}
		out.Lyrics[i] = l
	}

	out.Playlists = make([]models.Playlist, len(s.Playlists))
	for i, p := range s.Playlists {
		kept := make([]models.ID, 0, len(p.LyricsIDs))
		for _, id := range p.LyricsIDs {
			if models.IndexOf(s.Lyrics, id) >= 0 {
				kept = append(kept, id)
			}
		}
		p.LyricsIDs = kept
		out.Playlists[i] = p
	}

	out.Favorites = []models.ID{}
	for _, id := range s.Favorites {
		if models.IndexOf(s.Lyrics, id) >= 0 {
			out.Favorites = append(out.Favorites, id)
		}
	}

	out.LyricTags = models.LyricTags{}
	for lyricID, tagIDs := range s.LyricTags {
		if models.IndexOf(s.Lyrics, lyricID) < 0 {
			continue
		}
		for _, tagID := range tagIDs {
			if models.IndexOf(s.Tags, tagID) >= 0 {
				out.LyricTags.Assign(lyricID, tagID)
			}
		}
	}
	return out
}
