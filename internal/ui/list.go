package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/lyricbook/internal/catalog"
	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/theme"
)

var (
	_ list.Item = lyricItem{}
	_ list.Item = playlistItem{}
	_ list.Item = resultItem{}
)

// lyricItem wraps [catalog.Entry] to implement [list.Item].
type lyricItem struct {
	entry catalog.Entry
}

func (i lyricItem) FilterValue() string { return i.entry.Title + " " + i.entry.Artist }
func (i lyricItem) Title() string {
	if i.entry.Favorite {
		return "★ " + i.entry.Title
	}
	return i.entry.Title
}
func (i lyricItem) Description() string {
	return fmt.Sprintf("%s • %s", i.entry.Artist, i.entry.GenreName)
}

// playlistItem wraps [models.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist models.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	return fmt.Sprintf("%d lyrics", len(i.playlist.LyricsIDs))
}

// resultItem wraps [models.SearchResult] to implement [list.Item].
type resultItem struct {
	result models.SearchResult
}

func (i resultItem) FilterValue() string { return i.result.Title }
func (i resultItem) Title() string       { return i.result.Title }
func (i resultItem) Description() string { return i.result.Artist }

func lyricItems(entries []catalog.Entry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = lyricItem{entry: e}
	}
	return items
}

func playlistItems(playlists []models.Playlist) []list.Item {
	items := make([]list.Item, len(playlists))
	for i, p := range playlists {
		items[i] = playlistItem{playlist: p}
	}
	return items
}

func resultItems(results []models.SearchResult) []list.Item {
	items := make([]list.Item, len(results))
	for i, r := range results {
		items[i] = resultItem{result: r}
	}
	return items
}

// newList creates a list styled with p
func newList(title string, items []list.Item, p *theme.Palette) list.Model {
	l := list.New(items, newDelegate(p), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	stylist(&l, p)
	return l
}

func newDelegate(p *theme.Palette) list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	primary := lipgloss.Color(p.Colors.Primary)
	d.Styles.NormalTitle = d.Styles.NormalTitle.Foreground(lipgloss.Color(p.Colors.Text))
	d.Styles.NormalDesc = d.Styles.NormalDesc.Foreground(lipgloss.Color(p.Colors.SecondaryText))
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Foreground(primary).BorderLeftForeground(primary)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Foreground(lipgloss.Color(p.Colors.Accent)).BorderLeftForeground(primary)
	return d
}

// stylist restyles an existing list after a theme change.
func stylist(l *list.Model, p *theme.Palette) {
	l.SetDelegate(newDelegate(p))
	l.Styles.Title = p.Header
}
