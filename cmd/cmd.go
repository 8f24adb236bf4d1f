// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// outputFlags are shared by commands that can print JSON
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
			Value: true,
		},
	}
}

// setupCommand handles setup operations for the store and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize the sqlite database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:   "config",
				Usage:  "Write a config file with the default settings",
				Action: r.SetupConfig,
			},
			{
				Name:   "status",
				Usage:  "Show the active store, credentials and migrations",
				Flags:  outputFlags(),
				Action: r.Status,
			},
		},
	}
}

// genreCommand handles genre management
func genreCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "genre",
		Aliases: []string{"genres"},
		Usage:   "Manage genres",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List genres (the defaults are created on first use)",
				Flags:  outputFlags(),
				Action: r.GenreList,
			},
			{
				Name:      "add",
				Usage:     "Add a genre",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Action:    r.GenreAdd,
			},
			{
				Name:  "rename",
				Usage: "Rename a genre",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
					&cli.StringArg{Name: "name"},
				},
				Action: r.GenreRename,
			},
			{
				Name:      "delete",
				Usage:     "Delete a genre; its lyrics show as Unknown Genre",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.GenreDelete,
			},
		},
	}
}

func lyricFields() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Song title"},
		&cli.StringFlag{Name: "artist", Aliases: []string{"a"}, Usage: "Artist name"},
		&cli.StringFlag{Name: "genre", Aliases: []string{"g"}, Usage: "Genre ID"},
		&cli.StringFlag{Name: "content", Usage: "Lyric text"},
		&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Read the lyric text from a file"},
	}
}

// lyricCommand handles lyric management
func lyricCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "lyric",
		Aliases: []string{"lyrics"},
		Usage:   "Manage lyrics",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List lyrics",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "artist", Usage: "Only lyrics whose artist contains this text"},
					&cli.StringFlag{Name: "genre", Usage: "Only lyrics of this genre ID"},
					&cli.BoolFlag{Name: "favorites", Usage: "Only favorite lyrics"},
					&cli.StringFlag{Name: "tag", Usage: "Only lyrics with this tag ID"},
				}, outputFlags()...),
				Action: r.LyricList,
			},
			{
				Name:      "show",
				Usage:     "Show a lyric using the display preferences",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: append([]cli.Flag{
					&cli.IntFlag{Name: "width", Usage: "Width used for alignment", Value: 72},
				}, outputFlags()...),
				Action: r.LyricShow,
			},
			{
				Name:   "add",
				Usage:  "Add a lyric",
				Flags:  lyricFields(),
				Action: r.LyricAdd,
			},
			{
				Name:      "edit",
				Usage:     "Change fields of a lyric",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     lyricFields(),
				Action:    r.LyricEdit,
			},
			{
				Name:      "delete",
				Usage:     "Delete a lyric",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.LyricDelete,
			},
			{
				Name:      "share",
				Usage:     "Print a lyric as share text",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.LyricShare,
			},
			{
				Name:      "import-file",
				Usage:     "Import the lyrics embedded in an audio file's tags",
				Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "genre", Aliases: []string{"g"}, Usage: "Genre ID (default: match the tag's genre)"},
				},
				Action: r.LyricImportFile,
			},
		},
	}
}

// playlistCommand handles playlist management and export
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"playlists", "pl"},
		Usage:   "Manage playlists",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List playlists",
				Flags:  outputFlags(),
				Action: r.PlaylistList,
			},
			{
				Name:      "create",
				Usage:     "Create an empty playlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Action:    r.PlaylistCreate,
			},
			{
				Name:      "show",
				Usage:     "Show a playlist and its lyrics",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     outputFlags(),
				Action:    r.PlaylistShow,
			},
			{
				Name:  "add",
				Usage: "Add a lyric to a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
					&cli.StringArg{Name: "lyric"},
				},
				Action: r.PlaylistAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove a lyric from a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
					&cli.StringArg{Name: "lyric"},
				},
				Action: r.PlaylistRemove,
			},
			{
				Name:  "rename",
				Usage: "Rename a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
					&cli.StringArg{Name: "name"},
				},
				Action: r.PlaylistRename,
			},
			{
				Name:      "delete",
				Usage:     "Delete a playlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.PlaylistDelete,
			},
			{
				Name:      "export",
				Usage:     "Export a playlist's lyrics to a file",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "markdown, text, csv, json or yaml", Value: "markdown"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file or directory"},
				},
				Action: r.PlaylistExport,
			},
			{
				Name:  "export-all",
				Usage: "Export every playlist into a directory",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "markdown, text, csv, json or yaml", Value: "markdown"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output directory (default: lyricbook_export_{epoch})"},
					&cli.IntFlag{Name: "workers", Usage: "Concurrent workers", Value: 4},
				},
				Action: r.PlaylistExportAll,
			},
		},
	}
}

// favoriteCommand handles favorites
func favoriteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorite",
		Aliases: []string{"favorites", "fav"},
		Usage:   "Manage favorite lyrics",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List favorite lyrics",
				Flags:  outputFlags(),
				Action: r.FavoriteList,
			},
			{
				Name:      "toggle",
				Usage:     "Add or remove a lyric from the favorites",
				Arguments: []cli.Argument{&cli.StringArg{Name: "lyric"}},
				Action:    r.FavoriteToggle,
			},
		},
	}
}

// searchCommand handles online search and the search history
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Find lyrics online",
		Commands: []*cli.Command{
			{
				Name:      "online",
				Usage:     "Search Genius for songs",
				Arguments: []cli.Argument{&cli.StringArg{Name: "query"}},
				Flags:     outputFlags(),
				Action:    r.SearchOnline,
			},
			{
				Name:      "fetch",
				Usage:     "Search, then fetch the lyrics of one result",
				Arguments: []cli.Argument{&cli.StringArg{Name: "query"}},
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "pick", Aliases: []string{"n"}, Usage: "Result number to fetch", Value: 1},
					&cli.BoolFlag{Name: "save", Usage: "Save the lyrics as a new lyric"},
					&cli.StringFlag{Name: "genre", Aliases: []string{"g"}, Usage: "Genre ID for the saved lyric"},
					&cli.StringFlag{Name: "playlist", Usage: "Also add the saved lyric to this playlist ID"},
				},
				Action: r.SearchFetch,
			},
			{
				Name:      "open",
				Usage:     "Open a result page in the browser",
				Arguments: []cli.Argument{&cli.StringArg{Name: "url"}},
				Action:    r.SearchOpen,
			},
			{
				Name:  "history",
				Usage: "Recent search terms",
				Commands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List recent searches, most recent first",
						Flags:  outputFlags(),
						Action: r.SearchHistoryList,
					},
					{
						Name:   "clear",
						Usage:  "Forget every recent search",
						Action: r.SearchHistoryClear,
					},
				},
			},
		},
	}
}

// prefsCommand handles display preferences
func prefsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "prefs",
		Aliases: []string{"preferences"},
		Usage:   "Display preferences",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the preferences",
				Flags:  outputFlags(),
				Action: r.PrefsShow,
			},
			{
				Name:  "set",
				Usage: "Change one preference (fontSize, lineHeight, showChords, fontFamily, alignment)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
					&cli.StringArg{Name: "value"},
				},
				Action: r.PrefsSet,
			},
		},
	}
}

// themeCommand handles the light/dark theme
func themeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "theme",
		Usage: "Light or dark theme",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the current theme",
				Action: r.ThemeShow,
			},
			{
				Name:   "toggle",
				Usage:  "Switch between light and dark",
				Action: r.ThemeToggle,
			},
			{
				Name:      "set",
				Usage:     "Set the theme",
				Arguments: []cli.Argument{&cli.StringArg{Name: "theme"}},
				Action:    r.ThemeSet,
			},
		},
	}
}

// tagCommand handles tags and their assignment to lyrics
func tagCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tag",
		Aliases: []string{"tags"},
		Usage:   "Manage lyric tags",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List tags",
				Flags:  outputFlags(),
				Action: r.TagList,
			},
			{
				Name:      "add",
				Usage:     "Add a tag",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Action:    r.TagAdd,
			},
			{
				Name:      "delete",
				Usage:     "Delete a tag and its assignments",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.TagDelete,
			},
			{
				Name:  "assign",
				Usage: "Tag a lyric",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "lyric"},
					&cli.StringArg{Name: "tag"},
				},
				Action: r.TagAssign,
			},
			{
				Name:  "unassign",
				Usage: "Remove a tag from a lyric",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "lyric"},
					&cli.StringArg{Name: "tag"},
				},
				Action: r.TagUnassign,
			},
		},
	}
}

// doctorCommand reports and optionally repairs dangling references
func doctorCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Find references to deleted genres, lyrics and tags",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{Name: "fix", Usage: "Remove the dangling references"},
		}, outputFlags()...),
		Action: r.Doctor,
	}
}

// resetCommand wipes the store
func resetCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Delete everything in the store",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Confirm the reset"},
			&cli.StringFlag{Name: "backup", Usage: "Write a backup file before deleting"},
		},
		Action: r.Reset,
	}
}

// backupCommand copies every stored key to a JSON file
func backupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "backup",
		Usage:     "Write every stored key to a JSON file",
		Arguments: []cli.Argument{&cli.StringArg{Name: "file"}},
		Action:    r.Backup,
	}
}

// restoreCommand loads a file written by backup
func restoreCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "restore",
		Usage:     "Write the keys of a backup file into the store",
		Arguments: []cli.Argument{&cli.StringArg{Name: "file"}},
		Action:    r.Restore,
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive lyrics browser",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "genre", Aliases: []string{"g"}, Usage: "Genre ID for lyrics imported from search"},
			&cli.StringFlag{Name: "log-file", Usage: "Where logs go while the TUI runs", Value: "lyricbook-tui.log"},
		},
		Action: r.TUI,
	}
}
