package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/services"
	"github.com/desertthunder/lyricbook/internal/shared"
	"github.com/desertthunder/lyricbook/internal/tasks"
	"github.com/desertthunder/lyricbook/internal/ui"
)

// TUI launches the interactive lyrics browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, closer, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return err
	}
	defer closer.Close()
	fileLogger.SetLevel(r.logger.GetLevel())

	prev := r.logger
	r.SetLogger(fileLogger)
	defer r.SetLogger(prev)

	if err := r.ready(ctx); err != nil {
		return err
	}

	var importer *tasks.Importer
	if g, ok := r.source.(*services.GeniusService); !ok || g.Authenticated() {
		importer = r.importer
	} else {
		r.logger.Info("no genius token; online search disabled")
	}

	opts := ui.Options{
		Repos:    r.repos,
		Themes:   r.themes,
		Importer: importer,
		GenreID:  models.ID(cmd.String("genre")),
	}
	if err := ui.Run(ctx, opts); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
