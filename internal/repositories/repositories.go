// package repositories provides the entity collections stored in a [store.Store].
package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/shared"
	"github.com/desertthunder/lyricbook/internal/store"
)

// Keys owned by the repositories. Each repository reads and writes exactly one of them,
// except [TagRepository], which owns both tag keys.
const (
	KeyGenres        = "genres"
	KeyLyrics        = "lyrics"
	KeyPlaylists     = "playlists"
	KeyFavorites     = "favorites"
	KeySearchHistory = "searchHistory"
	KeyTheme         = "theme"
	KeyPreferences   = "lyricsPreferences"
	KeyTags          = "tags"
	KeyLyricTags     = "lyricsTags"
)

var (
	// ErrStoreWrite wraps every failed save.
	ErrStoreWrite = errors.New("failed to write to store")
	// ErrPlaylistSave additionally wraps failed playlist saves.
	ErrPlaylistSave = errors.New("failed to save playlists")
	// ErrUnreadable is returned by the Read methods when a stored value exists but cannot be read or decoded.
	ErrUnreadable = errors.New("stored value is unreadable")
)

// Clock returns the current time. Tests replace it for stable timestamps.
type Clock func() time.Time

// readState is the outcome of a fail-soft read.
type readState int

const (
	stateAbsent readState = iota
	stateFound
	stateFailed
)

// base holds what every repository needs to reach its key.
type base struct {
	store  store.Store
	logger *log.Logger
	key    string
	now    Clock
}

func newBase(s store.Store, logger *log.Logger, key string, now Clock) base {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if now == nil {
		now = time.Now
	}
	return base{store: s, logger: shared.WithLogger(logger, "key", key), key: key, now: now}
}

// read decodes the key into v. Store failures and malformed values are logged, never returned.
func (b base) read(ctx context.Context, v any) readState {
	raw, err := b.store.Get(ctx, b.key)
	if errors.Is(err, store.ErrNotFound) {
		return stateAbsent
	}
	if err != nil {
		b.logger.Warn("failed to read from store", "error", err)
		return stateFailed
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		b.logger.Warn("discarding malformed value", "error", err)
		return stateFailed
	}
	return stateFound
}

// UnreadableError names the key behind an [ErrUnreadable].
type UnreadableError struct {
	Key string
}

func (e *UnreadableError) Error() string { return fmt.Sprintf("%v: %s", ErrUnreadable, e.Key) }

func (e *UnreadableError) Unwrap() error { return ErrUnreadable }

// check turns a failed read into an [*UnreadableError].
func (b base) check(state readState) error {
	if state == stateFailed {
		return &UnreadableError{Key: b.key}
	}
	return nil
}

// write encodes v and overwrites the key.
func (b base) write(ctx context.Context, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrStoreWrite, b.key, err)
	}
	if err := b.store.Set(ctx, b.key, string(data)); err != nil {
		return fmt.Errorf("%w %s: %w", ErrStoreWrite, b.key, err)
	}
	b.logger.Debug("saved", "bytes", len(data))
	return nil
}

// readList is read for sequence valued keys; the result is never nil.
func readList[T any](ctx context.Context, b base) ([]T, readState) {
	var items []T
	state := b.read(ctx, &items)
	if state != stateFound || items == nil {
		items = []T{}
	}
	return items, state
}

// mintID returns a new random identifier
func mintID() models.ID {
	return models.ID(shared.GenerateID())
}

// Repositories bundles one repository per key over a shared store.
type Repositories struct {
	store store.Store

	Genres        *GenreRepository
	Lyrics        *LyricRepository
	Playlists     *PlaylistRepository
	Favorites     *FavoritesRepository
	SearchHistory *SearchHistoryRepository
	Theme         *ThemeRepository
	Preferences   *PreferencesRepository
	Tags          *TagRepository
}

// Options configures [New].
type Options struct {
	Logger *log.Logger
	Clock  Clock
}

// New creates every repository over s.
func New(s store.Store, opts Options) *Repositories {
	return &Repositories{
		store:         s,
		Genres:        NewGenreRepository(s, opts.Logger, opts.Clock),
		Lyrics:        NewLyricRepository(s, opts.Logger, opts.Clock),
		Playlists:     NewPlaylistRepository(s, opts.Logger, opts.Clock),
		Favorites:     NewFavoritesRepository(s, opts.Logger),
		SearchHistory: NewSearchHistoryRepository(s, opts.Logger),
		Theme:         NewThemeRepository(s, opts.Logger),
		Preferences:   NewPreferencesRepository(s, opts.Logger),
		Tags:          NewTagRepository(s, opts.Logger),
	}
}

// Wipe removes every stored key. Defaults are seeded again on the next load.
func (r *Repositories) Wipe(ctx context.Context) error {
	if err := r.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear storage: %w", err)
	}
	return nil
}

// Snapshot returns the raw stored value of every key, for backups and diagnostics.
func (r *Repositories) Snapshot(ctx context.Context) (map[string]string, error) {
	keys, err := r.store.Keys(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		v, err := r.store.Get(ctx, k)
		if err != nil {
			return nil, fmt.Errorf("failed to read key %s: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

// Restore writes every key of snapshot, overwriting what is stored.
func (r *Repositories) Restore(ctx context.Context, snapshot map[string]string) error {
	for k, v := range snapshot {
		if err := r.store.Set(ctx, k, v); err != nil {
			return fmt.Errorf("%w %s: %w", ErrStoreWrite, k, err)
		}
	}
	return nil
}
