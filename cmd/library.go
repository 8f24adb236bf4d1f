package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/lyricbook/internal/catalog"
	"github.com/desertthunder/lyricbook/internal/formatter"
	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/shared"
)

// requireArg returns the named positional argument or [shared.ErrMissingArgument].
func requireArg(cmd *cli.Command, name string) (string, error) {
	v := strings.TrimSpace(cmd.StringArg(name))
	if v == "" {
		return "", fmt.Errorf("%w: <%s>", shared.ErrMissingArgument, name)
	}
	return v, nil
}

func requireID(cmd *cli.Command, name string) (models.ID, error) {
	v, err := requireArg(cmd, name)
	return models.ID(v), err
}

// GenreList prints every genre, creating the defaults on first use.
func (r *Runner) GenreList(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}
	genres, err := r.repos.Genres.Load(ctx)
	if err != nil {
		r.logger.Warn("genres could not be saved", "error", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(genres, cmd.Bool("pretty"))
	}
	r.writePlainHeader(fmt.Sprintf("Genres (%d)", len(genres)))
	for _, g := range genres {
		r.writePlain("%-6s %s\n", g.ID, g.Name)
	}
	return nil
}

// GenreAdd creates a genre
func (r *Runner) GenreAdd(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "name")
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}
	g, err := r.repos.Genres.Add(ctx, name)
	if err != nil {
		return err
	}
	r.logger.Info("genre added", "id", g.ID, "name", g.Name)
	return r.writePlain("✓ Added genre %s (%s)\n", g.Name, g.ID)
}

// GenreRename renames a genre
func (r *Runner) GenreRename(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd, "id")
	if err != nil {
		return err
	}
	name, err := requireArg(cmd, "name")
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}
	g, err := r.repos.Genres.Rename(ctx, id, name)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Renamed genre %s to %s\n", g.ID, g.Name)
}

// GenreDelete removes a genre. Lyrics keep the id and show as [models.UnknownGenre].
func (r *Runner) GenreDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd, "id")
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}
	if err := r.repos.Genres.Delete(ctx, id); err != nil {
		return err
	}

	orphaned := 0
	for _, l := range r.repos.Lyrics.List(ctx) {
		if l.GenreID == id {
			orphaned++
		}
	}
	r.writePlain("✓ Deleted genre %s\n", id)
	if orphaned > 0 {
		r.writePlain("%d lyrics now show as %s; run 'lyricbook doctor' to review\n", orphaned, models.UnknownGenre)
	}
	return nil
}

// entries joins lyrics with genre names and favorite flags.
func (r *Runner) entries(ctx context.Context, lyrics []models.Lyric) []catalog.Entry {
	genres, _ := r.repos.Genres.LoadOrDefault(ctx)
	return catalog.Entries(lyrics, genres, r.repos.Favorites.List(ctx))
}

func (r *Runner) printEntries(entries []catalog.Entry) {
	for _, e := range entries {
		mark := " "
		if e.Favorite {
			mark = "★"
		}
		r.writePlain("%s %-6s %s - %s [%s]\n", mark, e.ID, e.Title, e.Artist, e.GenreName)
	}
}

// LyricList prints lyrics, narrowed by the filter flags.
func (r *Runner) LyricList(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}

	filter := catalog.Filter{
		Artist:        cmd.String("artist"),
		GenreID:       models.ID(cmd.String("genre")),
		FavoritesOnly: cmd.Bool("favorites"),
		Favorites:     r.repos.Favorites.List(ctx),
		TagID:         models.ID(cmd.String("tag")),
		Tags:          r.repos.Tags.Assignments(ctx),
	}
	entries := r.entries(ctx, filter.Apply(r.repos.Lyrics.List(ctx)))

	if cmd.Bool("json") {
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}
	if len(entries) == 0 {
		return r.writePlain("No lyrics found\n")
	}
	r.writePlainHeader(fmt.Sprintf("Lyrics (%d)", len(entries)))
	r.printEntries(entries)
	return nil
}

// LyricShow prints one lyric using the stored display preferences.
func (r *Runner) LyricShow(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd, "id")
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}
	l, err := r.repos.Lyrics.Get(ctx, id)
	if err != nil {
		return err
	}
	entry := r.entries(ctx, []models.Lyric{l})[0]
	tags := r.repos.Tags.For(ctx, id)

	if cmd.Bool("json") {
		return r.writeJSON(struct {
			catalog.Entry
			Tags []models.Tag `json:"tags"`
		}{entry, tags}, cmd.Bool("pretty"))
	}

	prefs := r.repos.Preferences.Load(ctx)
	r.writePlainHeader(fmt.Sprintf("%s by %s", entry.Title, entry.Artist))
	r.writePlain("Genre: %s\n", entry.GenreName)
	r.writePlain("Date:  %s\n", entry.Date.Format("2006-01-02"))
	if entry.Favorite {
		r.writePlain("★ Favorite\n")
	}
	if len(tags) > 0 {
		names := make([]string, len(tags))
		for i, t := range tags {
			names[i] = t.Name
		}
		r.writePlain("Tags:  %s\n", strings.Join(names, ", "))
	}
	if entry.Source != "" {
		r.writePlain("Source: %s\n", entry.Source)
	}
	r.writePlain("\n%s\n", formatter.LyricBody(entry.Content, prefs, int(cmd.Int("width"))))
	return nil
}

// lyricContent reads --content, or the file named by --file.
func lyricContent(cmd *cli.Command) (string, error) {
	if path := cmd.String("file"); path != "" {
		if cmd.IsSet("content") {
			return "", fmt.Errorf("%w: cannot specify both --content and --file", shared.ErrInvalidArgument)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read lyric file: %w", err)
		}
		return string(data), nil
	}
	return cmd.String("content"), nil
}

// LyricAdd creates a lyric from flags.
func (r *Runner) LyricAdd(ctx context.Context, cmd *cli.Command) error {
	content, err := lyricContent(cmd)
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}

	genreID := models.ID(cmd.String("genre"))
	if !genreID.IsZero() {
		if _, err := r.repos.Genres.Get(ctx, genreID); err != nil {
			return err
		}
	}

	l, err := r.repos.Lyrics.Create(ctx, models.Lyric{
		Title:   cmd.String("title"),
		Artist:  cmd.String("artist"),
		Content: content,
		GenreID: genreID,
	})
	if err != nil {
		return err
	}
	r.logger.Info("lyric added", "id", l.ID, "title", l.Title)
	return r.writePlain("✓ Added %s by %s (%s)\n", l.Title, l.Artist, l.ID)
}

// LyricEdit changes the fields whose flags are set.
func (r *Runner) LyricEdit(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd, "id")
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}
	l, err := r.repos.Lyrics.Get(ctx, id)
	if err != nil {
		return err
	}

	changed := false
	if cmd.IsSet("title") {
		l.Title, changed = cmd.String("title"), true
	}
	if cmd.IsSet("artist") {
		l.Artist, changed = cmd.String("artist"), true
	}
	if cmd.IsSet("genre") {
		genreID := models.ID(cmd.String("genre"))
		if _, err := r.repos.Genres.Get(ctx, genreID); err != nil {
			return err
		}
		l.GenreID, changed = genreID, true
	}
	if cmd.IsSet("content") || cmd.IsSet("file") {
		content, err := lyricContent(cmd)
		if err != nil {
			return err
		}
		l.Content, changed = content, true
	}
	if !changed {
		return fmt.Errorf("%w: nothing to change; pass --title, --artist, --genre, --content or --file", shared.ErrMissingArgument)
	}

	if l, err = r.repos.Lyrics.Update(ctx, l); err != nil {
		return err
	}
	return r.writePlain("✓ Updated %s by %s\n", l.Title, l.Artist)
}

// LyricDelete removes a lyric. Playlists and favorites keep the id until doctor --fix.
func (r *Runner) LyricDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd, "id")
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}
	if err := r.repos.Lyrics.Delete(ctx, id); err != nil {
		return err
	}
	r.logger.Info("lyric deleted", "id", id)
	return r.writePlain("✓ Deleted lyric %s\n", id)
}

// LyricShare prints the share text of a lyric.
func (r *Runner) LyricShare(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd, "id")
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}
	l, err := r.repos.Lyrics.Get(ctx, id)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", l.ShareText())
}

// LyricImportFile creates a lyric from an audio file's embedded tags.
func (r *Runner) LyricImportFile(ctx context.Context, cmd *cli.Command) error {
	path, err := requireArg(cmd, "path")
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}
	l, err := r.importer.ImportAudio(ctx, nil, path, models.ID(cmd.String("genre")))
	if err != nil {
		return err
	}
	return r.writePlain("✓ Imported %s by %s (%s)\n", l.Title, l.Artist, l.ID)
}

// FavoriteList prints the favorite lyrics.
func (r *Runner) FavoriteList(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}
	filter := catalog.Filter{FavoritesOnly: true, Favorites: r.repos.Favorites.List(ctx)}
	entries := r.entries(ctx, filter.Apply(r.repos.Lyrics.List(ctx)))

	if cmd.Bool("json") {
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}
	if len(entries) == 0 {
		return r.writePlain("No favorites yet\n")
	}
	r.writePlainHeader(fmt.Sprintf("Favorites (%d)", len(entries)))
	r.printEntries(entries)
	return nil
}

// FavoriteToggle adds or removes a lyric from the favorites.
func (r *Runner) FavoriteToggle(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd, "lyric")
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}
	l, err := r.repos.Lyrics.Get(ctx, id)
	if err != nil {
		return err
	}
	on, err := r.repos.Favorites.Toggle(ctx, id)
	if err != nil {
		return err
	}
	if on {
		return r.writePlain("★ %s added to favorites\n", l.Title)
	}
	return r.writePlain("☆ %s removed from favorites\n", l.Title)
}

// TagList prints every tag with how many lyrics carry it.
func (r *Runner) TagList(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}
	tags := r.repos.Tags.List(ctx)
	if cmd.Bool("json") {
		return r.writeJSON(tags, cmd.Bool("pretty"))
	}
	if len(tags) == 0 {
		return r.writePlain("No tags yet\n")
	}

	counts := map[models.ID]int{}
	for _, ids := range r.repos.Tags.Assignments(ctx) {
		for _, id := range ids {
			counts[id]++
		}
	}
	r.writePlainHeader(fmt.Sprintf("Tags (%d)", len(tags)))
	for _, t := range tags {
		r.writePlain("%-6s %s (%d)\n", t.ID, t.Name, counts[t.ID])
	}
	return nil
}

// TagAdd creates a tag
func (r *Runner) TagAdd(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "name")
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}
	t, err := r.repos.Tags.Add(ctx, name)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Added tag %s (%s)\n", t.Name, t.ID)
}

// TagDelete removes a tag along with its assignments.
func (r *Runner) TagDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd, "id")
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}
	if err := r.repos.Tags.Delete(ctx, id); err != nil {
		return err
	}
	return r.writePlain("✓ Deleted tag %s\n", id)
}

// TagAssign tags a lyric
func (r *Runner) TagAssign(ctx context.Context, cmd *cli.Command) error {
	lyricID, err := requireID(cmd, "lyric")
	if err != nil {
		return err
	}
	tagID, err := requireID(cmd, "tag")
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}
	if _, err := r.repos.Lyrics.Get(ctx, lyricID); err != nil {
		return err
	}
	if err := r.repos.Tags.Assign(ctx, lyricID, tagID); err != nil {
		return err
	}
	return r.writePlain("✓ Tagged lyric %s with %s\n", lyricID, tagID)
}

// TagUnassign removes a tag from a lyric
func (r *Runner) TagUnassign(ctx context.Context, cmd *cli.Command) error {
	lyricID, err := requireID(cmd, "lyric")
	if err != nil {
		return err
	}
	tagID, err := requireID(cmd, "tag")
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}
	removed, err := r.repos.Tags.Unassign(ctx, lyricID, tagID)
	if err != nil {
		return err
	}
	if !removed {
		return r.writePlain("Lyric %s was not tagged with %s\n", lyricID, tagID)
	}
	return r.writePlain("✓ Removed tag %s from lyric %s\n", tagID, lyricID)
}
