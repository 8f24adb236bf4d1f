package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/lyricbook/internal/catalog"
	"github.com/desertthunder/lyricbook/internal/shared"
)

// Doctor lists references to genres, lyrics and tags that no longer exist, and removes them with --fix.
func (r *Runner) Doctor(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}

	snapshot := catalog.Load(ctx, r.repos)
	report := catalog.Audit(snapshot)
	if cmd.Bool("fix") && !report.Clean() {
		var err error
		if report, err = catalog.Fix(ctx, r.repos, snapshot); err != nil {
			return err
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(report, cmd.Bool("pretty"))
	}
	if report.Clean() {
		return r.writePlain("✓ No dangling references\n")
	}
	if len(report.Unreadable) > 0 {
		r.writePlainHeader(fmt.Sprintf("Unreadable keys (%d)", len(report.Unreadable)))
		for _, k := range report.Unreadable {
			r.writePlain("  %s\n", k)
		}
		r.writePlain("References into these keys are not repaired; restore them from a backup first.\n\n")
	}
	if len(report.Dangling) == 0 {
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Dangling references (%d)", len(report.Dangling)))
	for _, d := range report.Dangling {
		r.writePlain("  %-15s %s → %s\n", d.Kind, d.Owner, d.Target)
	}
	if cmd.Bool("fix") {
		return r.writePlainln("✓ Removed %d dangling references", len(report.Dangling))
	}
	return r.writePlainln("Run 'lyricbook doctor --fix' to remove them")
}

// Reset deletes every stored key after confirmation, optionally writing a backup first.
func (r *Runner) Reset(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("yes") {
		r.writePlain("This deletes every lyric, playlist, genre, tag and setting. Re-run with --yes to confirm.\n")
		return shared.ErrNotConfirmed
	}
	if err := r.ready(ctx); err != nil {
		return err
	}

	if path := cmd.String("backup"); path != "" {
		if err := r.writeBackup(ctx, path); err != nil {
			return err
		}
	}
	if err := r.repos.Wipe(ctx); err != nil {
		return err
	}
	r.logger.Warn("store wiped", "driver", r.config.Store.Driver)
	return r.writePlain("✓ Everything was deleted; defaults are recreated on next use\n")
}

func (r *Runner) writeBackup(ctx context.Context, path string) error {
	snapshot, err := r.repos.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to read store: %w", err)
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	r.writePlain("✓ Backed up %d keys to %s\n", len(snapshot), path)
	return nil
}

// Backup writes every stored key to a JSON file.
func (r *Runner) Backup(ctx context.Context, cmd *cli.Command) error {
	path, err := requireArg(cmd, "file")
	if err != nil {
		return err
	}
	if err := r.ready(ctx); err != nil {
		return err
	}
	return r.writeBackup(ctx, path)
}

// Restore writes the keys of a backup file back into the store.
func (r *Runner) Restore(ctx context.Context, cmd *cli.Command) error {
	path, err := requireArg(cmd, "file")
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	var snapshot map[string]string
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("%w: backup is not a JSON object of strings: %w", shared.ErrInvalidInput, err)
	}
	if err := r.ready(ctx); err != nil {
		return err
	}
	if err := r.repos.Restore(ctx, snapshot); err != nil {
		return err
	}
	return r.writePlain("✓ Restored %d keys from %s\n", len(snapshot), path)
}
