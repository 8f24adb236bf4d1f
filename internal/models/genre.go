package models

import "strings"

// UnknownGenre is shown for a lyric whose genre is unset or no longer exists.
const UnknownGenre = "Unknown Genre"

// Genre is a named category.
type Genre struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

func (g Genre) Identity() ID { return g.ID }

func (g Genre) Validate() error {
	if g.ID.IsZero() {
		return NewValidationError("id", "is required")
	}
	if strings.TrimSpace(g.Name) == "" {
		return NewValidationError("name", "is required")
	}
	return nil
}

// DefaultGenres returns the genres seeded into an empty store.
func DefaultGenres() []Genre {
	names := []string{"Pop", "Rock", "Hip Hop", "R&B", "Country", "Jazz", "Classical", "Folk", "Electronic", "Other"}
	genres := make([]Genre, len(names))
	for i, name := range names {
		genres[i] = Genre{ID: NewID(int64(i + 1)), Name: name}
	}
	return genres
}
