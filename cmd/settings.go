package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/lyricbook/internal/models"
)

// PrefsShow prints the display preferences.
func (r *Runner) PrefsShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}
	prefs := r.repos.Preferences.Load(ctx)
	if cmd.Bool("json") {
		return r.writeJSON(prefs, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Preferences")
	r.writePlain("fontSize    %d\n", prefs.FontSize)
	r.writePlain("lineHeight  %g\n", prefs.LineHeight)
	r.writePlain("showChords  %t\n", prefs.ShowChords)
	r.writePlain("fontFamily  %s\n", prefs.FontFamily)
	r.writePlain("alignment   %s\n", prefs.Alignment)
	return nil
}

// PrefsSet changes one preference, validating the result before saving.
func (r *Runner) PrefsSet(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "name")
	if err != nil {
		return err
	}
	value, err := requireArg(cmd, "value")
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}

	prefs, err := r.repos.Preferences.Load(ctx).With(name, value)
	if err != nil {
		return err
	}
	if err := r.repos.Preferences.Save(ctx, prefs); err != nil {
		return err
	}
	return r.writePlain("✓ %s set to %s\n", name, value)
}

// ThemeShow prints the current theme.
func (r *Runner) ThemeShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}
	th := r.themes.Get()
	p := r.themes.Palette()

	_, stored := r.repos.Theme.Get(ctx)
	origin := "detected"
	if stored {
		origin = "saved"
	}
	return r.writePlain("%s (%s)\n", p.Title.Render(th.String()), origin)
}

// ThemeToggle switches between light and dark.
func (r *Runner) ThemeToggle(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}
	th, err := r.themes.Toggle(ctx)
	if err != nil {
		r.logger.Warn("theme switched but not saved", "theme", th, "error", err)
	}
	return r.writePlain("✓ Theme is now %s\n", th)
}

// ThemeSet sets the theme by name.
func (r *Runner) ThemeSet(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "theme")
	if err != nil {
		return err
	}
	th, err := models.ParseTheme(name)
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}
	if err := r.themes.Set(ctx, th); err != nil {
		r.logger.Warn("theme switched but not saved", "theme", th, "error", err)
	}
	return r.writePlain("✓ Theme is now %s\n", th)
}
