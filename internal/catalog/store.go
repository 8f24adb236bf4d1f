package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/lyricbook/internal/repositories"
)

// ErrUnsafeRepair is returned by [Fix] when part of the snapshot could not be read.
var ErrUnsafeRepair = errors.New("refusing to repair with unreadable keys")

// Load reads a [Snapshot] through the repositories. Nothing is written.
func Load(ctx context.Context, repos *repositories.Repositories) Snapshot {
	var s Snapshot
	note := func(err error) {
		if ue := (*repositories.UnreadableError)(nil); errors.As(err, &ue) {
			s.Unreadable = append(s.Unreadable, ue.Key)
		}
	}

	var err error
	s.Genres, err = repos.Genres.Read(ctx)
	note(err)
	s.Lyrics, err = repos.Lyrics.Read(ctx)
	note(err)
	s.Playlists, err = repos.Playlists.Read(ctx)
	note(err)
	s.Favorites, err = repos.Favorites.Read(ctx)
	note(err)
	s.Tags, err = repos.Tags.Read(ctx)
	note(err)
	s.LyricTags, err = repos.Tags.ReadAssignments(ctx)
	note(err)
	return s
}

// Fix repairs what [Audit] reports and saves only the collections that changed.
//
// Nothing is saved when any key was unreadable, since references into it cannot be told apart
// from dangling ones.
func Fix(ctx context.Context, repos *repositories.Repositories, s Snapshot) (Report, error) {
	report := Audit(s)
	if len(report.Unreadable) > 0 {
		return report, fmt.Errorf("%w: %s", ErrUnsafeRepair, strings.Join(report.Unreadable, ", "))
	}
	if report.Clean() {
		return report, nil
	}
	fixed := Repair(s)

	if report.Count(DanglingGenre) > 0 {
		if err := repos.Lyrics.Save(ctx, fixed.Lyrics); err != nil {
			return report, fmt.Errorf("failed to repair lyrics: %w", err)
		}
	}
	if report.Count(DanglingPlaylistEntry) > 0 {
		if err := repos.Playlists.Save(ctx, fixed.Playlists); err != nil {
			return report, fmt.Errorf("failed to repair playlists: %w", err)
		}
	}
	if report.Count(DanglingFavorite) > 0 {
		if err := repos.Favorites.Save(ctx, fixed.Favorites); err != nil {
			return report, fmt.Errorf("failed to repair favorites: %w", err)
		}
	}
	if report.Count(DanglingTagLyric)+report.Count(DanglingTagAssignment) > 0 {
		if err := repos.Tags.SaveAssignments(ctx, fixed.LyricTags); err != nil {
			return report, fmt.Errorf("failed to repair tag assignments: %w", err)
		}
	}
	return report, nil
}
