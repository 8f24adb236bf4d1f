// Package models defines the entities of the lyrics notebook and the rules they carry.
//
// Entities are plain JSON documents stored as whole collections:
//   - [Genre] : a named category lyrics point at
//   - [Lyric] : a song text with title, artist, genre and creation date
//   - [Playlist] : an ordered list of lyric ids, unique per playlist
//   - [Tag] : a free form label, assigned through [LyricTags]
//   - [Preferences] : display settings for rendering lyrics
//   - [Theme] : light or dark
//   - [SearchResult] : one hit from online lyrics search
//
// Identifiers are [ID] values. Stored data may carry them as JSON numbers or strings;
// both decode to the same [ID] and are always written back as strings.
//
// Every entity implements [Entity], which the repositories use for lookups by id.
package models
