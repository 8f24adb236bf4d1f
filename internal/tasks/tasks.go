package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/lyricbook/internal/extract"
	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/repositories"
	"github.com/desertthunder/lyricbook/internal/services"
	"github.com/desertthunder/lyricbook/internal/shared"
)

// ImportRequest describes one online import.
type ImportRequest struct {
	Query      string               // Search terms; ignored when Result is set
	Pick       int                  // Zero-based index into the search results
	Result     *models.SearchResult // Skip the search and import this hit
	GenreID    models.ID            // Genre of the new lyric
	PlaylistID models.ID            // Optional playlist to append the new lyric to
}

// ImportResult is what [Importer.Import] produced.
type ImportResult struct {
	Results  []models.SearchResult // Search hits, empty when Result was given
	Picked   models.SearchResult
	Lyric    models.Lyric
	Playlist *models.Playlist
}

// Importer turns an online search hit into a stored lyric.
type Importer struct {
	source services.LyricsSource
	repos  *repositories.Repositories
	logger *log.Logger
}

// NewImporter creates an Importer. A nil logger writes to stderr.
func NewImporter(source services.LyricsSource, repos *repositories.Repositories, logger *log.Logger) *Importer {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Importer{source: source, repos: repos, logger: logger}
}

// Search records query in the search history and returns the source's hits.
//
// The history is updated before the request so failed searches are remembered too.
func (im *Importer) Search(ctx context.Context, progress chan<- ProgressUpdate, query string) ([]models.SearchResult, error) {
	if im.source == nil {
		return nil, fmt.Errorf("%w: no lyrics source configured", shared.ErrServiceUnavailable)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	if _, err := im.repos.SearchHistory.Add(ctx, query); err != nil {
		im.logger.Warn("failed to record search", "query", query, "error", err)
	}

	sendProgress(progress, searchingUpdate(im.source.Name(), query))
	results, err := im.source.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	sendProgress(progress, foundResultsUpdate(results))
	return results, nil
}

// Import searches (unless req.Result is set), fetches the picked song's lyrics and saves them.
//
// Nothing is written when the page yields no lyrics.
func (im *Importer) Import(ctx context.Context, progress chan<- ProgressUpdate, req ImportRequest) (*ImportResult, error) {
	if im.source == nil {
		return nil, fmt.Errorf("%w: no lyrics source configured", shared.ErrServiceUnavailable)
	}
	if req.GenreID.IsZero() {
		return nil, fmt.Errorf("%w: genre", shared.ErrMissingArgument)
	}
	if _, err := im.repos.Genres.Get(ctx, req.GenreID); err != nil {
		return nil, err
	}

	result := &ImportResult{}
	if req.Result != nil {
		result.Picked = *req.Result
	} else {
		hits, err := im.Search(ctx, progress, req.Query)
		if err != nil {
			return nil, err
		}
		result.Results = hits
		if len(hits) == 0 {
			return result, fmt.Errorf("%w: no songs match %q", shared.ErrNotFound, req.Query)
		}
		if req.Pick < 0 || req.Pick >= len(hits) {
			return result, fmt.Errorf("%w: pick %d of %d results", shared.ErrInvalidArgument, req.Pick+1, len(hits))
		}
		result.Picked = hits[req.Pick]
	}

	sendProgress(progress, fetchingLyricsUpdate(result.Picked))
	text, err := im.source.FetchLyrics(ctx, result.Picked.URL)
	if err != nil {
		return result, err
	}
	if !extract.Found(text) {
		return result, fmt.Errorf("%w: %s", shared.ErrLyricNotFound, extract.Describe(text))
	}

	lyric, err := im.repos.Lyrics.Create(ctx, models.Lyric{
		Title:   result.Picked.Title,
		Artist:  result.Picked.Artist,
		Content: text,
		GenreID: req.GenreID,
		Source:  result.Picked.URL,
	})
	if err != nil {
		return result, err
	}
	result.Lyric = lyric
	sendProgress(progress, savedLyricUpdate(lyric))
	im.logger.Info("imported lyric", "id", lyric.ID, "title", lyric.Title, "source", im.source.Name())

	if !req.PlaylistID.IsZero() {
		p, err := im.repos.Playlists.AddLyric(ctx, req.PlaylistID, lyric.ID)
		if err != nil {
			return result, fmt.Errorf("lyric saved but not added to playlist: %w", err)
		}
		result.Playlist = &p
		sendProgress(progress, addedToPlaylistUpdate(p))
	}
	return result, nil
}
