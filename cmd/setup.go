package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/lyricbook/internal/services"
	"github.com/desertthunder/lyricbook/internal/shared"
	"github.com/desertthunder/lyricbook/internal/store"
)

// SetupDatabase initializes the sqlite database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("initializing database", "path", r.config.Database.Path)

	db, err := shared.OpenDatabase(ctx, r.config.Database)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	statuses, err := shared.Migrations(ctx, db)
	if err != nil {
		return err
	}
	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	r.writePlain("✓ Database ready at %s (%d migrations applied)\n", r.config.Database.Path, len(statuses))
	return nil
}

// SetupConfig writes the default config to the --config path.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if path == "" {
		path = r.configPath
	}
	if path == "" {
		return fmt.Errorf("%w: --config", shared.ErrMissingArgument)
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.logger.Info("config file created", "path", path)
	r.writePlain("✓ Config written to %s\n", path)
	r.writePlain("Set genius.access_token (or %s) to enable online search\n", shared.EnvGeniusToken)
	return nil
}

// StatusReport describes the active configuration.
type StatusReport struct {
	ConfigPath  string                   `json:"config_path,omitempty"`
	Driver      string                   `json:"driver"`
	Database    string                   `json:"database,omitempty"`
	RedisURL    string                   `json:"redis_url,omitempty"`
	Namespace   string                   `json:"namespace,omitempty"`
	GeniusToken bool                     `json:"genius_token"`
	Keys        int                      `json:"keys"`
	Migrations  []shared.MigrationStatus `json:"migrations,omitempty"`
}

// Status reports which store is in use, whether search is configured and the migration state.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}

	report := StatusReport{
		ConfigPath:  r.configPath,
		Driver:      r.config.Store.Driver,
		GeniusToken: r.config.Genius.AccessToken != "",
	}
	if g, ok := r.source.(*services.GeniusService); ok {
		report.GeniusToken = g.Authenticated()
	}

	switch s := r.store.(type) {
	case *store.SQLiteStore:
		report.Database = r.config.Database.Path
		statuses, err := shared.Migrations(ctx, s.DB())
		if err != nil {
			return err
		}
		report.Migrations = statuses
	case *store.RedisStore:
		report.RedisURL = r.config.Store.RedisURL
		report.Namespace = r.config.Store.Namespace
	}

	keys, err := r.store.Keys(ctx)
	if err != nil {
		return err
	}
	report.Keys = len(keys)

	if cmd.Bool("json") {
		return r.writeJSON(report, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Lyricbook status")
	if report.ConfigPath != "" {
		r.writePlain("Config:       %s\n", report.ConfigPath)
	}
	r.writePlain("Store:        %s\n", report.Driver)
	if report.Database != "" {
		r.writePlain("Database:     %s\n", report.Database)
	}
	if report.RedisURL != "" {
		r.writePlain("Redis:        %s (namespace %q)\n", report.RedisURL, report.Namespace)
	}
	r.writePlain("Keys:         %d\n", report.Keys)
	if report.GeniusToken {
		r.writePlain("Genius:       ✓ token configured\n")
	} else {
		r.writePlain("Genius:       ✗ no token; online search disabled\n")
	}

	if len(report.Migrations) > 0 {
		r.writePlainln("Migrations:")
		for _, m := range report.Migrations {
			mark := "✗"
			if m.Applied {
				mark = "✓"
			}
			r.writePlain("  %s %04d %s\n", mark, m.Version, m.Name)
		}
	}
	return nil
}
