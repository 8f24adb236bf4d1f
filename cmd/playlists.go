package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/lyricbook/internal/catalog"
	"github.com/desertthunder/lyricbook/internal/formatter"
	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/tasks"
)

// followProgress prints updates until the returned stop func is called.
func (r *Runner) followProgress() (chan<- tasks.ProgressUpdate, func()) {
	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.SearchSongs:
				r.writePlain("🔍 %s\n", update.Message)
			case tasks.FetchLyrics, tasks.LoadLibrary:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.ExportPlaylist:
				r.writePlain("[%d/%d] %s\n", update.Step, update.Total, update.Message)
			default:
				r.writePlain("%s\n", update.Message)
			}
		}
	}()
	return progressCh, func() {
		close(progressCh)
		<-done
	}
}

// PlaylistList prints every playlist, creating the sample playlist on first use.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}
	playlists, err := r.repos.Playlists.Load(ctx)
	if err != nil {
		r.logger.Warn("playlists could not be saved", "error", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}
	r.writePlainHeader(fmt.Sprintf("Playlists (%d)", len(playlists)))
	for _, p := range playlists {
		r.writePlain("%-6s %s (%d lyrics)\n", p.ID, p.Name, len(p.LyricsIDs))
	}
	return nil
}

// PlaylistCreate creates an empty playlist
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "name")
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}
	p, err := r.repos.Playlists.Create(ctx, name)
	if err != nil {
		return err
	}
	r.logger.Info("playlist created", "id", p.ID, "name", p.Name)
	return r.writePlain("✓ Created playlist %s (%s)\n", p.Name, p.ID)
}

// PlaylistShow prints a playlist and the lyrics it resolves to.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd, "id")
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}
	p, err := r.repos.Playlists.Get(ctx, id)
	if err != nil {
		return err
	}
	entries := r.entries(ctx, catalog.Resolve(p, r.repos.Lyrics.List(ctx)))

	if cmd.Bool("json") {
		return r.writeJSON(struct {
			models.Playlist
			Entries []catalog.Entry `json:"entries"`
		}{p, entries}, cmd.Bool("pretty"))
	}

	r.writePlainHeader(p.Name)
	r.writePlain("ID:      %s\n", p.ID)
	r.writePlain("Created: %s\n", p.CreatedAt.Format("2006-01-02 15:04"))
	r.writePlain("Updated: %s\n", p.UpdatedAt.Format("2006-01-02 15:04"))
	r.writePlain("Lyrics:  %d\n\n", len(entries))
	r.printEntries(entries)
	if missing := len(p.LyricsIDs) - len(entries); missing > 0 {
		r.writePlain("\n%d entries point at deleted lyrics; run 'lyricbook doctor --fix' to drop them\n", missing)
	}
	return nil
}

// PlaylistAdd appends a lyric to a playlist
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd, "id")
	if err != nil {
		return err
	}
	lyricID, err := requireID(cmd, "lyric")
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}
	l, err := r.repos.Lyrics.Get(ctx, lyricID)
	if err != nil {
		return err
	}
	p, err := r.repos.Playlists.AddLyric(ctx, id, lyricID)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Added %s to %s (%d lyrics)\n", l.Title, p.Name, len(p.LyricsIDs))
}

// PlaylistRemove drops a lyric from a playlist
func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd, "id")
	if err != nil {
		return err
	}
	lyricID, err := requireID(cmd, "lyric")
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}
	p, removed, err := r.repos.Playlists.RemoveLyric(ctx, id, lyricID)
	if err != nil {
		return err
	}
	if !removed {
		return r.writePlain("Lyric %s is not in %s\n", lyricID, p.Name)
	}
	return r.writePlain("✓ Removed lyric %s from %s\n", lyricID, p.Name)
}

// PlaylistRename renames a playlist
func (r *Runner) PlaylistRename(ctx context.Context, cmd *cli.Command) error {
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
	p, err := r.repos.Playlists.Rename(ctx, id, name)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Renamed playlist %s to %s\n", p.ID, p.Name)
}

// PlaylistDelete removes a playlist; its lyrics are untouched.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd, "id")
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}
	if err := r.repos.Playlists.Delete(ctx, id); err != nil {
		return err
	}
	r.logger.Info("playlist deleted", "id", id)
	return r.writePlain("✓ Deleted playlist %s\n", id)
}

// PlaylistExport writes one playlist in the requested format.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd, "id")
	if err != nil {
		return err
	}
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}

	export, err := r.exporter.Playlist(ctx, id)
	if err != nil {
		return err
	}
	path, err := formatter.WriteExport(export, format, cmd.String("output"))
	if err != nil {
		return err
	}
	r.logger.Info("playlist exported", "id", id, "format", format, "path", path)
	return r.writePlain("✓ Exported %s (%d lyrics) to %s\n", export.Name, len(export.Lyrics), path)
}

// PlaylistExportAll writes every playlist into one directory along with a manifest.
func (r *Runner) PlaylistExportAll(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}

	progress, stop := r.followProgress()
	result, err := r.exporter.BulkExport(ctx, progress, nil, tasks.BulkExportOpts{
		Format:     format,
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
	})
	stop()
	if err != nil {
		return err
	}

	r.writePlainln("Exported %d of %d playlists to %s", result.SuccessfulExports, result.TotalPlaylists, result.OutputDirectory)
	for _, res := range result.Results {
		if !res.Success {
			r.writePlain("  ✗ %s: %s\n", res.PlaylistName, res.ErrorMessage)
		}
	}
	r.writePlain("Manifest: %s\n", result.ManifestPath)
	return nil
}
