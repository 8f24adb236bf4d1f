package repositories

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/shared"
	"github.com/desertthunder/lyricbook/internal/store"
)

// PlaylistRepository stores every playlist under [KeyPlaylists].
//
// Playlists are normalized as they are read, so callers never see a missing id, name, lyric list or timestamp.
// Unlike the other repositories, save failures also wrap [ErrPlaylistSave].
type PlaylistRepository struct {
	base
	mint func() models.ID
}

// NewPlaylistRepository creates a new PlaylistRepository
func NewPlaylistRepository(s store.Store, logger *log.Logger, now Clock) *PlaylistRepository {
	return &PlaylistRepository{base: newBase(s, logger, KeyPlaylists, now), mint: mintID}
}

// LoadOrDefault returns the stored playlists, or a single sample playlist when the key is absent or empty.
//
// The boolean reports whether the sample was substituted. Nothing is written, so an id minted for a
// stored playlist that lacks one changes on every call until [PlaylistRepository.Load] persists it.
func (r *PlaylistRepository) LoadOrDefault(ctx context.Context) ([]models.Playlist, bool) {
	playlists, seeded, _, _ := r.readOrDefault(ctx)
	return playlists, seeded
}

// Read is [PlaylistRepository.LoadOrDefault] that reports an unreadable value as [ErrUnreadable].
func (r *PlaylistRepository) Read(ctx context.Context) ([]models.Playlist, error) {
	playlists, _, _, err := r.readOrDefault(ctx)
	return playlists, err
}

func (r *PlaylistRepository) readOrDefault(ctx context.Context) (playlists []models.Playlist, seeded, minted bool, err error) {
	playlists, state := readList[models.Playlist](ctx, r.base)
	if state == stateFailed {
		return playlists, false, false, r.check(state)
	}
	if len(playlists) == 0 {
		return []models.Playlist{models.SamplePlaylist(r.now())}, true, false, nil
	}

	now := r.now()
	for i := range playlists {
		if playlists[i].Normalize(now, r.mint) {
			minted = true
		}
	}
	return playlists, false, minted, nil
}

// EnsurePersisted writes playlists
func (r *PlaylistRepository) EnsurePersisted(ctx context.Context, playlists []models.Playlist) error {
	return r.Save(ctx, playlists)
}

// Load returns the playlists, persisting the sample playlist on first use and any id minted
// for a stored playlist that had none.
//
// The playlists are returned even when persisting them fails.
func (r *PlaylistRepository) Load(ctx context.Context) ([]models.Playlist, error) {
	playlists, seeded, minted, _ := r.readOrDefault(ctx)
	switch {
	case seeded:
		r.logger.Info("seeding sample playlist", "id", playlists[0].ID)
	case minted:
		r.logger.Warn("persisting ids minted for stored playlists")
	default:
		return playlists, nil
	}
	if err := r.EnsurePersisted(ctx, playlists); err != nil {
		return playlists, err
	}
	return playlists, nil
}

// Save overwrites the stored playlists
func (r *PlaylistRepository) Save(ctx context.Context, playlists []models.Playlist) error {
	if err := r.write(ctx, playlists); err != nil {
		r.logger.Error("failed to save playlists", "error", err)
		return fmt.Errorf("%w: %w", ErrPlaylistSave, err)
	}
	return nil
}

// Get finds a playlist by id
func (r *PlaylistRepository) Get(ctx context.Context, id models.ID) (models.Playlist, error) {
	playlists, _ := r.Load(ctx)
	p, ok := models.Find(playlists, id)
	if !ok {
		return p, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}
	return p, nil
}

// Create appends an empty playlist named name
func (r *PlaylistRepository) Create(ctx context.Context, name string) (models.Playlist, error) {
	p := models.NewPlaylist(r.mint(), name, r.now())
	if err := p.Validate(); err != nil {
		return p, err
	}

	playlists, _ := r.Load(ctx)
	return p, r.Save(ctx, append(playlists, p))
}

// update loads the playlists, applies fn to playlist id and saves when fn succeeds.
func (r *PlaylistRepository) update(ctx context.Context, id models.ID, fn func(*models.Playlist) (bool, error)) (models.Playlist, error) {
	playlists, _ := r.Load(ctx)
	i := models.IndexOf(playlists, id)
	if i < 0 {
		return models.Playlist{}, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}

	changed, err := fn(&playlists[i])
	if err != nil || !changed {
		return playlists[i], err
	}
	return playlists[i], r.Save(ctx, playlists)
}

// Rename changes the name of playlist id
func (r *PlaylistRepository) Rename(ctx context.Context, id models.ID, name string) (models.Playlist, error) {
	return r.update(ctx, id, func(p *models.Playlist) (bool, error) {
		return true, p.Rename(name, r.now())
	})
}

// AddLyric appends lyricID to playlist id.
//
// Adding a lyric twice returns [models.ErrDuplicateMembership] and stores nothing.
func (r *PlaylistRepository) AddLyric(ctx context.Context, id, lyricID models.ID) (models.Playlist, error) {
	return r.update(ctx, id, func(p *models.Playlist) (bool, error) {
		if err := p.AddLyric(lyricID, r.now()); err != nil {
			return false, err
		}
		return true, nil
	})
}

// RemoveLyric drops lyricID from playlist id, reporting whether it was a member.
func (r *PlaylistRepository) RemoveLyric(ctx context.Context, id, lyricID models.ID) (models.Playlist, bool, error) {
	var removed bool
	p, err := r.update(ctx, id, func(p *models.Playlist) (bool, error) {
		removed = p.RemoveLyric(lyricID, r.now())
		return removed, nil
	})
	return p, removed, err
}

// Delete removes playlist id
func (r *PlaylistRepository) Delete(ctx context.Context, id models.ID) error {
	playlists, _ := r.Load(ctx)
	remaining, removed := models.Without(playlists, id)
	if !removed {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}
	return r.Save(ctx, remaining)
}
