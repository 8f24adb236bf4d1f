package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// UntitledPlaylist is the name given to a stored playlist that has none.
const UntitledPlaylist = "Untitled Playlist"

// Playlist is an ordered list of lyric ids. [Playlist.AddLyric] never adds an id twice;
// stored lists are kept as they are.
//
// Fields other than the known ones are kept in Extra and written back unchanged.
type Playlist struct {
	ID        ID
	Name      string
	LyricsIDs []ID
	CreatedAt Timestamp
	UpdatedAt Timestamp
	Extra     map[string]json.RawMessage
}

var playlistFields = []string{"id", "name", "lyricsIds", "createdAt", "updatedAt"}

// NewPlaylist creates an empty playlist stamped with now.
func NewPlaylist(id ID, name string, now time.Time) Playlist {
	ts := At(now)
	return Playlist{ID: id, Name: strings.TrimSpace(name), LyricsIDs: []ID{}, CreatedAt: ts, UpdatedAt: ts}
}

// SamplePlaylist is the playlist seeded into an empty store.
func SamplePlaylist(now time.Time) Playlist {
	return NewPlaylist(ID(fmt.Sprintf("sample-%d", now.UnixMilli())), "My First Playlist", now)
}

func (p Playlist) Identity() ID { return p.ID }

func (p Playlist) Validate() error {
	if p.ID.IsZero() {
		return NewValidationError("id", "is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return NewValidationError("name", "is required")
	}
	return nil
}

// Contains reports whether lyricID is a member
func (p Playlist) Contains(lyricID ID) bool {
	return ContainsID(p.LyricsIDs, lyricID)
}

// AddLyric appends lyricID and bumps UpdatedAt.
//
// When lyricID is already a member it returns [ErrDuplicateMembership] and leaves the playlist unchanged.
func (p *Playlist) AddLyric(lyricID ID, now time.Time) error {
	if p.Contains(lyricID) {
		return fmt.Errorf("%w: %s", ErrDuplicateMembership, lyricID)
	}
	ids := make([]ID, len(p.LyricsIDs), len(p.LyricsIDs)+1)
	copy(ids, p.LyricsIDs)
	p.LyricsIDs = append(ids, lyricID)
	p.UpdatedAt = At(now)
	return nil
}

// RemoveLyric drops lyricID, bumping UpdatedAt only when something was removed.
func (p *Playlist) RemoveLyric(lyricID ID, now time.Time) bool {
	ids, removed := RemoveID(p.LyricsIDs, lyricID)
	if removed {
		p.LyricsIDs = ids
		p.UpdatedAt = At(now)
	}
	return removed
}

// Rename sets the name and bumps UpdatedAt.
func (p *Playlist) Rename(name string, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewValidationError("name", "is required")
	}
	p.Name = name
	p.UpdatedAt = At(now)
	return nil
}

// Normalize fills in the fields a stored playlist may be missing:
// an id from mint, [UntitledPlaylist], an empty lyric list, and now for timestamps.
// It reports whether an id was minted.
func (p *Playlist) Normalize(now time.Time, mint func() ID) bool {
	minted := p.ID.IsZero()
	if minted {
		p.ID = mint()
	}
	if p.Name == "" {
		p.Name = UntitledPlaylist
	}
	if p.LyricsIDs == nil {
		p.LyricsIDs = []ID{}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = At(now)
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = At(now)
	}
	return minted
}

// UnmarshalJSON decodes leniently: an unusable field is left at its zero value for [Playlist.Normalize].
// Only lyricsIds items that are neither strings nor numbers are skipped.
func (p *Playlist) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%w: playlist must be an object", ErrValidation)
	}

	*p = Playlist{}
	if raw, ok := fields["id"]; ok {
		var id ID
		if err := json.Unmarshal(raw, &id); err == nil {
			p.ID = id
		}
	}
	if raw, ok := fields["name"]; ok {
		var name string
		if err := json.Unmarshal(raw, &name); err == nil {
			p.Name = name
		}
	}
	if raw, ok := fields["lyricsIds"]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err == nil && items != nil {
			p.LyricsIDs = make([]ID, 0, len(items))
			for _, item := range items {
				var id ID
				if err := json.Unmarshal(item, &id); err == nil {
					p.LyricsIDs = append(p.LyricsIDs, id)
				}
			}
		}
	}
	if raw, ok := fields["createdAt"]; ok {
		p.CreatedAt.Time = parseTimestamp(raw)
	}
	if raw, ok := fields["updatedAt"]; ok {
		p.UpdatedAt.Time = parseTimestamp(raw)
	}

	for _, k := range playlistFields {
		delete(fields, k)
	}
	if len(fields) > 0 {
		p.Extra = fields
	}
	return nil
}

func (p Playlist) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Extra)+len(playlistFields))
	for k, v := range p.Extra {
		out[k] = v
	}
	ids := p.LyricsIDs
	if ids == nil {
		ids = []ID{}
	}
	out["id"] = p.ID
	out["name"] = p.Name
	out["lyricsIds"] = ids
	out["createdAt"] = p.CreatedAt
	out["updatedAt"] = p.UpdatedAt
	return json.Marshal(out)
}
