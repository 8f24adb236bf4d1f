// Package ui implements an interactive lyrics browser using bubbletea's Elm architecture.
//
// Views:
//  1. [LyricListView] : Browse and filter lyrics, optionally within one playlist
//  2. [DetailView] : Read a lyric rendered with the stored preferences
//  3. [PlaylistListView] : Pick a playlist to narrow the lyric list
//  4. [SearchView] : Type an online search query
//  5. [ResultsView] : Pick a search hit to import
//  6. [ImportView] : Monitor progress while the hit is imported
//
// The (view) [Model] receives its asynchronous results through the [Msg] union. Import progress
// flows through a channel from [tasks.Importer]; theme changes flow through a [theme.Manager]
// subscription, so a toggle made anywhere restyles the screen.
//
// Keyboard navigation uses vim-style bindings with contextual help from charmbracelet/bubbles/help.
package ui
