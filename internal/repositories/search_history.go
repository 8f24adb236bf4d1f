package repositories

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/shared"
	"github.com/desertthunder/lyricbook/internal/store"
)

// SearchHistoryRepository stores recent search terms under [KeySearchHistory], most recent first.
type SearchHistoryRepository struct {
	base
}

// NewSearchHistoryRepository creates a new SearchHistoryRepository
func NewSearchHistoryRepository(s store.Store, logger *log.Logger) *SearchHistoryRepository {
	return &SearchHistoryRepository{base: newBase(s, logger, KeySearchHistory, nil)}
}

// List returns the stored terms, most recent first
func (r *SearchHistoryRepository) List(ctx context.Context) []string {
	terms, _ := readList[string](ctx, r.base)
	return terms
}

// Add moves term to the front, dropping an identical earlier entry and anything past
// [models.MaxSearchHistory]. Matching is exact and case sensitive.
//
// The new history is returned even when saving fails.
func (r *SearchHistoryRepository) Add(ctx context.Context, term string) ([]string, error) {
	if strings.TrimSpace(term) == "" {
		return r.List(ctx), shared.ErrMissingArgument
	}

	history := []string{term}
	for _, t := range r.List(ctx) {
		if t != term {
			history = append(history, t)
		}
	}
	if len(history) > models.MaxSearchHistory {
		history = history[:models.MaxSearchHistory]
	}
	return history, r.write(ctx, history)
}

// Clear writes an empty history
func (r *SearchHistoryRepository) Clear(ctx context.Context) error {
	return r.write(ctx, []string{})
}
