package models

import "strings"

// Tag is a free form label.
type Tag struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

func (t Tag) Identity() ID { return t.ID }

func (t Tag) Validate() error {
	if t.ID.IsZero() {
		return NewValidationError("id", "is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return NewValidationError("name", "is required")
	}
	return nil
}

// LyricTags maps a lyric id to the ids of the tags assigned to it.
type LyricTags map[ID][]ID

// Assign adds tagID to lyricID, reporting whether anything changed.
func (lt LyricTags) Assign(lyricID, tagID ID) bool {
	if ContainsID(lt[lyricID], tagID) {
		return false
	}
	lt[lyricID] = append(lt[lyricID], tagID)
	return true
}

// Unassign removes tagID from lyricID, dropping the entry once it is empty.
func (lt LyricTags) Unassign(lyricID, tagID ID) bool {
	ids, removed := RemoveID(lt[lyricID], tagID)
	if !removed {
		return false
	}
	if len(ids) == 0 {
		delete(lt, lyricID)
	} else {
		lt[lyricID] = ids
	}
	return true
}

// DropTag removes tagID from every lyric, returning how many assignments were removed.
func (lt LyricTags) DropTag(tagID ID) int {
	n := 0
	for lyricID := range lt {
		if lt.Unassign(lyricID, tagID) {
			n++
		}
	}
	return n
}
