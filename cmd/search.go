package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/lyricbook/internal/extract"
	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/shared"
	"github.com/desertthunder/lyricbook/internal/tasks"
)

// SearchOnline prints the songs matching a query.
func (r *Runner) SearchOnline(ctx context.Context, cmd *cli.Command) error {
	query, err := requireArg(cmd, "query")
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}

	results, err := r.importer.Search(ctx, nil, query)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(results, cmd.Bool("pretty"))
	}
	if len(results) == 0 {
		return r.writePlain("No songs match %q\n", query)
	}
	r.writePlainHeader(fmt.Sprintf("Results for %q (%d)", query, len(results)))
	for i, res := range results {
		r.writePlain("%2d. %s - %s\n    %s\n", i+1, res.Title, res.Artist, res.URL)
	}
	return nil
}

// SearchFetch fetches the lyrics of one search result, saving them with --save.
func (r *Runner) SearchFetch(ctx context.Context, cmd *cli.Command) error {
	query, err := requireArg(cmd, "query")
	if err != nil {
		return err
	}
	pick := int(cmd.Int("pick")) - 1
	if err := r.ready(ctx); err != nil {
		return err
	}

	if cmd.Bool("save") {
		progress, stop := r.followProgress()
		result, err := r.importer.Import(ctx, progress, tasks.ImportRequest{
			Query:      query,
			Pick:       pick,
			GenreID:    models.ID(cmd.String("genre")),
			PlaylistID: models.ID(cmd.String("playlist")),
		})
		stop()
		if err != nil {
			return err
		}
		r.writePlain("✓ Saved %s by %s (%s)\n", result.Lyric.Title, result.Lyric.Artist, result.Lyric.ID)
		if result.Playlist != nil {
			r.writePlain("✓ Added to %s\n", result.Playlist.Name)
		}
		return nil
	}

	results, err := r.importer.Search(ctx, nil, query)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("%w: no songs match %q", shared.ErrNotFound, query)
	}
	if pick < 0 || pick >= len(results) {
		return fmt.Errorf("%w: pick %d of %d results", shared.ErrInvalidArgument, pick+1, len(results))
	}

	picked := results[pick]
	text, err := r.source.FetchLyrics(ctx, picked.URL)
	if err != nil {
		return err
	}
	r.writePlainHeader(fmt.Sprintf("%s by %s", picked.Title, picked.Artist))
	r.writePlain("%s\n", text)
	if !extract.Found(text) {
		return fmt.Errorf("%w: %s", shared.ErrLyricNotFound, picked.URL)
	}
	return nil
}

// SearchOpen opens a result page in the default browser.
func (r *Runner) SearchOpen(ctx context.Context, cmd *cli.Command) error {
	raw, err := requireArg(cmd, "url")
	if err != nil {
		return err
	}
	u, err := shared.ParseWebURL(raw)
	if err != nil {
		return err
	}
	if err := r.openURL(u.String()); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return r.writePlain("Opened %s\n", u)
}

// SearchHistoryList prints the recent search terms, most recent first.
func (r *Runner) SearchHistoryList(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}
	terms := r.repos.SearchHistory.List(ctx)
	if cmd.Bool("json") {
		return r.writeJSON(terms, cmd.Bool("pretty"))
	}
	if len(terms) == 0 {
		return r.writePlain("No recent searches\n")
	}
	for i, term := range terms {
		r.writePlain("%2d. %s\n", i+1, term)
	}
	return nil
}

// SearchHistoryClear forgets every recent search.
func (r *Runner) SearchHistoryClear(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}
	if err := r.repos.SearchHistory.Clear(ctx); err != nil {
		return err
	}
	return r.writePlain("✓ Search history cleared\n")
}
