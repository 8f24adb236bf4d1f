package models

import (
	"fmt"
	"strings"
)

// Lyric is a single song text.
type Lyric struct {
	ID      ID        `json:"id"`
	Title   string    `json:"title"`
	Artist  string    `json:"artist"`
	Content string    `json:"content"`
	GenreID ID        `json:"genreId,omitempty"`
	Date    Timestamp `json:"date"`
	Source  string    `json:"source,omitempty"` // Source is the page a lyric was imported from, if any
}

func (l Lyric) Identity() ID { return l.ID }

// Validate enforces the rules of the lyric form: title, artist, content and genre are required.
func (l Lyric) Validate() error {
	switch {
	case l.ID.IsZero():
		return NewValidationError("id", "is required")
	case strings.TrimSpace(l.Title) == "":
		return NewValidationError("title", "is required")
	case strings.TrimSpace(l.Artist) == "":
		return NewValidationError("artist", "is required")
	case strings.TrimSpace(l.Content) == "":
		return NewValidationError("content", "is required")
	case l.GenreID.IsZero():
		return NewValidationError("genreId", "please select a genre")
	}
	return nil
}

// ShareText formats the lyric the way it is shared: "<title> by <artist>", a blank line, then the content.
func (l Lyric) ShareText() string {
	return fmt.Sprintf("%s by %s\n\n%s", l.Title, l.Artist, l.Content)
}

// Trimmed returns a copy with surrounding whitespace removed from the text fields.
func (l Lyric) Trimmed() Lyric {
	l.Title = strings.TrimSpace(l.Title)
	l.Artist = strings.TrimSpace(l.Artist)
	l.Content = strings.TrimSpace(l.Content)
	return l
}
