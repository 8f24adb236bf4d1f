package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/store"
)

// ThemeRepository stores the theme under [KeyTheme] as a bare string.
type ThemeRepository struct {
	base
}

// NewThemeRepository creates a new ThemeRepository
func NewThemeRepository(s store.Store, logger *log.Logger) *ThemeRepository {
	return &ThemeRepository{base: newBase(s, logger, KeyTheme, nil)}
}

// Get returns the stored theme. The boolean is false when nothing usable is stored.
func (r *ThemeRepository) Get(ctx context.Context) (models.Theme, bool) {
	raw, err := r.store.Get(ctx, r.key)
	if errors.Is(err, store.ErrNotFound) {
		return "", false
	}
	if err != nil {
		r.logger.Warn("failed to read from store", "error", err)
		return "", false
	}

	theme, err := models.ParseTheme(raw)
	if err != nil {
		r.logger.Warn("discarding malformed value", "error", err)
		return "", false
	}
	return theme, true
}

// Set stores theme
func (r *ThemeRepository) Set(ctx context.Context, theme models.Theme) error {
	if _, err := models.ParseTheme(string(theme)); err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.key, string(theme)); err != nil {
		return fmt.Errorf("%w %s: %w", ErrStoreWrite, r.key, err)
	}
	return nil
}
