package repositories

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/store"
)

// FavoritesRepository stores favorite lyric ids under [KeyFavorites].
type FavoritesRepository struct {
	base
}

// NewFavoritesRepository creates a new FavoritesRepository
func NewFavoritesRepository(s store.Store, logger *log.Logger) *FavoritesRepository {
	return &FavoritesRepository{base: newBase(s, logger, KeyFavorites, nil)}
}

// List returns the favorite lyric ids
func (r *FavoritesRepository) List(ctx context.Context) []models.ID {
	ids, _ := readList[models.ID](ctx, r.base)
	return ids
}

// Read is [FavoritesRepository.List] that reports an unreadable value as [ErrUnreadable].
func (r *FavoritesRepository) Read(ctx context.Context) ([]models.ID, error) {
	ids, state := readList[models.ID](ctx, r.base)
	return ids, r.check(state)
}

// Save overwrites the stored favorites
func (r *FavoritesRepository) Save(ctx context.Context, ids []models.ID) error {
	return r.write(ctx, ids)
}

// Contains reports whether lyricID is a favorite
func (r *FavoritesRepository) Contains(ctx context.Context, lyricID models.ID) bool {
	return models.ContainsID(r.List(ctx), lyricID)
}

// Toggle adds or removes lyricID, returning whether it is now a favorite.
func (r *FavoritesRepository) Toggle(ctx context.Context, lyricID models.ID) (bool, error) {
	ids := r.List(ctx)
	if remaining, removed := models.RemoveID(ids, lyricID); removed {
		return false, r.Save(ctx, remaining)
	}
	return true, r.Save(ctx, append(ids, lyricID))
}
