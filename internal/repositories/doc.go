// Package repositories implements persistence for every domain collection on top of a [store.Store].
//
// Each collection is one JSON document under a fixed key (see [KeyGenres] and friends). A repository
// reads the whole document, changes it in memory and writes it back; the last write wins.
//
// Reads fail soft: a missing or unreadable value yields the empty collection (or the defaults for
// genres and playlists) and is logged. Writes fail loudly and wrap [ErrStoreWrite].
//
// Key Implementations:
//   - [GenreRepository] : genres, seeded with [models.DefaultGenres] on first load
//   - [LyricRepository] : lyrics, with ids and dates assigned on create
//   - [PlaylistRepository] : playlists, seeded with a sample playlist on first load
//   - [FavoritesRepository] : favorite lyric ids
//   - [SearchHistoryRepository] : the most recent search terms, newest first
//   - [ThemeRepository] and [PreferencesRepository] : display settings
//   - [TagRepository] : tags and their assignments to lyrics
//
// Deleting a genre or a lyric never cascades. Stale references are tolerated on read and can be
// removed explicitly with catalog.Fix.
package repositories
