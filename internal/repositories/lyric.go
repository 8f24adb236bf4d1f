package repositories

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/shared"
	"github.com/desertthunder/lyricbook/internal/store"
)

// LyricRepository stores every lyric under [KeyLyrics].
type LyricRepository struct {
	base
}

// NewLyricRepository creates a new LyricRepository
func NewLyricRepository(s store.Store, logger *log.Logger, now Clock) *LyricRepository {
	return &LyricRepository{base: newBase(s, logger, KeyLyrics, now)}
}

// List returns every stored lyric, or none when the stored value is absent or unreadable.
func (r *LyricRepository) List(ctx context.Context) []models.Lyric {
	lyrics, _ := readList[models.Lyric](ctx, r.base)
	return lyrics
}

// Read is [LyricRepository.List] that reports an unreadable value as [ErrUnreadable].
func (r *LyricRepository) Read(ctx context.Context) ([]models.Lyric, error) {
	lyrics, state := readList[models.Lyric](ctx, r.base)
	return lyrics, r.check(state)
}

// Save overwrites the stored lyrics
func (r *LyricRepository) Save(ctx context.Context, lyrics []models.Lyric) error {
	return r.write(ctx, lyrics)
}

// Get finds a lyric by id
func (r *LyricRepository) Get(ctx context.Context, id models.ID) (models.Lyric, error) {
	l, ok := models.Find(r.List(ctx), id)
	if !ok {
		return l, fmt.Errorf("%w: %s", shared.ErrLyricNotFound, id)
	}
	return l, nil
}

// Create assigns an id and date to lyric, validates it and appends it.
func (r *LyricRepository) Create(ctx context.Context, lyric models.Lyric) (models.Lyric, error) {
	lyric = lyric.Trimmed()
	lyric.ID = mintID()
	lyric.Date = models.At(r.now())
	if err := lyric.Validate(); err != nil {
		return lyric, err
	}

	if err := r.Save(ctx, append(r.List(ctx), lyric)); err != nil {
		return lyric, err
	}
	return lyric, nil
}

// Update replaces the stored lyric with the same id, keeping its original date.
func (r *LyricRepository) Update(ctx context.Context, lyric models.Lyric) (models.Lyric, error) {
	lyrics := r.List(ctx)
	i := models.IndexOf(lyrics, lyric.ID)
	if i < 0 {
		return lyric, fmt.Errorf("%w: %s", shared.ErrLyricNotFound, lyric.ID)
	}

	lyric = lyric.Trimmed()
	lyric.Date = lyrics[i].Date
	if err := lyric.Validate(); err != nil {
		return lyric, err
	}
	lyrics[i] = lyric
	return lyric, r.Save(ctx, lyrics)
}

// Delete removes lyric id. Playlists and favorites that reference it are left alone.
func (r *LyricRepository) Delete(ctx context.Context, id models.ID) error {
	remaining, removed := models.Without(r.List(ctx), id)
	if !removed {
		return fmt.Errorf("%w: %s", shared.ErrLyricNotFound, id)
	}
	return r.Save(ctx, remaining)
}
