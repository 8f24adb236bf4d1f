package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/lyricbook/internal/repositories"
	"github.com/desertthunder/lyricbook/internal/services"
	"github.com/desertthunder/lyricbook/internal/shared"
	"github.com/desertthunder/lyricbook/internal/store"
	"github.com/desertthunder/lyricbook/internal/tasks"
	"github.com/desertthunder/lyricbook/internal/theme"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The store and everything built on it are opened on first use, so commands such as
// "setup config" work without a database.
type Runner struct {
	config     *shared.Config
	configPath string
	store      store.Store
	repos      *repositories.Repositories
	themes     *theme.Manager
	detect     theme.Detector
	source     services.LyricsSource
	importer   *tasks.Importer
	exporter   *tasks.Exporter
	openURL    func(string) error
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Store      store.Store           // Opened from Config on first use when nil
	Source     services.LyricsSource // Built from the [genius] config section when nil
	Detector   theme.Detector        // Defaults to [theme.TerminalDetector]
	OpenURL    func(string) error    // Defaults to [shared.OpenBrowser]
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Detector == nil {
		opts.Detector = theme.TerminalDetector
	}
	if opts.OpenURL == nil {
		opts.OpenURL = shared.OpenBrowser
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		store:      opts.Store,
		detect:     opts.Detector,
		source:     opts.Source,
		openURL:    opts.OpenURL,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger replaces the logger, e.g. while the TUI owns the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// ready opens the store and wires the repositories, theme manager and tasks over it.
func (r *Runner) ready(ctx context.Context) error {
	if r.repos != nil {
		return nil
	}

	if r.store == nil {
		if err := r.config.Validate(); err != nil {
			return err
		}
		s, err := store.Open(ctx, r.config, r.logger)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		r.store = s
	}

	if r.source == nil {
		genius, err := services.NewGeniusServiceFromConfig(ctx, r.config.Genius)
		if err != nil {
			r.logger.Warn("ignoring genius access token", "error", err)
		}
		r.source = genius
	}

	r.repos = repositories.New(r.store, repositories.Options{Logger: r.logger})
	r.themes = theme.NewManager(ctx, r.repos.Theme, r.detect, r.logger)
	r.importer = tasks.NewImporter(r.source, r.repos, r.logger)
	r.exporter = tasks.NewExporter(r.repos, r.logger)
	return nil
}

// Close releases the store if one was opened.
func (r *Runner) Close() error {
	if r.store == nil {
		return nil
	}
	return r.store.Close()
}

// before loads the config named by --config and applies --log-level.
func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	if path == "" {
		path = r.configPath
	}

	if path != "" {
		config, err := shared.LoadConfig(path)
		switch {
		case err == nil:
			r.config = config
			r.configPath = path
		case errors.Is(err, os.ErrNotExist):
			r.logger.Debug("config file not found, using defaults", "path", path)
		default:
			return ctx, err
		}
	}
	r.config.ApplyEnv()

	level := r.config.Log.Level
	if cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}
	shared.SetLogLevel(r.logger, shared.ParseLogLevel(level))
	return ctx, nil
}

func (r *Runner) after(ctx context.Context, cmd *cli.Command) error {
	return r.Close()
}

// register collects every top-level command.
func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, genreCommand, lyricCommand, playlistCommand, favoriteCommand, searchCommand,
		prefsCommand, themeCommand, tagCommand, doctorCommand, resetCommand, backupCommand, restoreCommand,
		tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
