// package services defines interface LyricsSource for finding lyrics online
//
// Genius (search API + lyrics pages)
package services

import (
	"context"

	"github.com/desertthunder/lyricbook/internal/models"
)

// LyricsSource finds songs online and fetches their lyrics.
type LyricsSource interface {
	// Authenticate configures the access token the source sends with API requests.
	// Returns an error if the token is missing.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// Search returns the songs matching query. No hits is an empty slice, not an error.
	Search(ctx context.Context, query string) ([]models.SearchResult, error)

	// FetchLyrics downloads the page at url and extracts its lyrics.
	// Extraction failures are reported in the text as a sentinel, never as an error.
	FetchLyrics(ctx context.Context, url string) (string, error)

	// Name returns the name of the source (e.g., "Genius")
	Name() string
}
