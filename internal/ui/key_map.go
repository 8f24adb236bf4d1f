package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	enter     key.Binding
	back      key.Binding
	favorite  key.Binding
	theme     key.Binding
	chords    key.Binding
	playlists key.Binding
	search    key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		favorite:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		chords:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chords")),
		playlists: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "playlists")),
		search:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "search online")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.enter, k.back},
		{k.favorite, k.theme, k.chords},
		{k.playlists, k.search, k.quit},
	}
}
