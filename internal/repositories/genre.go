package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/shared"
	"github.com/desertthunder/lyricbook/internal/store"
)

// GenreRepository stores the genre list under [KeyGenres].
type GenreRepository struct {
	base
}

// NewGenreRepository creates a new GenreRepository
func NewGenreRepository(s store.Store, logger *log.Logger, now Clock) *GenreRepository {
	return &GenreRepository{base: newBase(s, logger, KeyGenres, now)}
}

// LoadOrDefault returns the stored genres, or [models.DefaultGenres] when the key is absent or empty.
//
// The boolean reports whether defaults were substituted. Nothing is written.
func (r *GenreRepository) LoadOrDefault(ctx context.Context) ([]models.Genre, bool) {
	genres, defaulted, _ := r.readOrDefault(ctx)
	return genres, defaulted
}

// Read is [GenreRepository.LoadOrDefault] that reports an unreadable value as [ErrUnreadable].
func (r *GenreRepository) Read(ctx context.Context) ([]models.Genre, error) {
	genres, _, err := r.readOrDefault(ctx)
	return genres, err
}

func (r *GenreRepository) readOrDefault(ctx context.Context) ([]models.Genre, bool, error) {
	genres, state := readList[models.Genre](ctx, r.base)
	if state == stateFailed {
		return genres, false, r.check(state)
	}
	if len(genres) == 0 {
		return models.DefaultGenres(), true, nil
	}
	return genres, false, nil
}

// EnsurePersisted writes genres
func (r *GenreRepository) EnsurePersisted(ctx context.Context, genres []models.Genre) error {
	return r.Save(ctx, genres)
}

// Load returns the genres, persisting the defaults on first use.
//
// The genres are returned even when persisting them fails.
func (r *GenreRepository) Load(ctx context.Context) ([]models.Genre, error) {
	genres, defaulted := r.LoadOrDefault(ctx)
	if defaulted {
		r.logger.Info("seeding default genres", "count", len(genres))
		if err := r.EnsurePersisted(ctx, genres); err != nil {
			return genres, err
		}
	}
	return genres, nil
}

// Save overwrites the stored genres
func (r *GenreRepository) Save(ctx context.Context, genres []models.Genre) error {
	return r.write(ctx, genres)
}

// Get finds a genre by id
func (r *GenreRepository) Get(ctx context.Context, id models.ID) (models.Genre, error) {
	genres, _ := r.Load(ctx)
	g, ok := models.Find(genres, id)
	if !ok {
		return g, fmt.Errorf("%w: %s", shared.ErrGenreNotFound, id)
	}
	return g, nil
}

// Add appends a genre named name
func (r *GenreRepository) Add(ctx context.Context, name string) (models.Genre, error) {
	g := models.Genre{ID: mintID(), Name: strings.TrimSpace(name)}
	if err := g.Validate(); err != nil {
		return g, err
	}

	genres, _ := r.Load(ctx)
	if err := r.Save(ctx, append(genres, g)); err != nil {
		return g, err
	}
	return g, nil
}

// Rename changes the name of genre id
func (r *GenreRepository) Rename(ctx context.Context, id models.ID, name string) (models.Genre, error) {
	genres, _ := r.Load(ctx)
	i := models.IndexOf(genres, id)
	if i < 0 {
		return models.Genre{}, fmt.Errorf("%w: %s", shared.ErrGenreNotFound, id)
	}

	renamed := models.Genre{ID: id, Name: strings.TrimSpace(name)}
	if err := renamed.Validate(); err != nil {
		return renamed, err
	}
	genres[i] = renamed
	return renamed, r.Save(ctx, genres)
}

// Delete removes genre id. Lyrics that reference it are left alone.
func (r *GenreRepository) Delete(ctx context.Context, id models.ID) error {
	genres, _ := r.Load(ctx)
	remaining, removed := models.Without(genres, id)
	if !removed {
		return fmt.Errorf("%w: %s", shared.ErrGenreNotFound, id)
	}
	return r.Save(ctx, remaining)
}
