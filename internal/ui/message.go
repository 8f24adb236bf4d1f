package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgLibraryLoaded MsgKind = iota
	MsgSearchComplete
	MsgProgressUpdate
	MsgImportComplete
	MsgThemeChanged
	MsgStatus
)

type searchResult struct {
	results []models.SearchResult
	err     error
}

type importResult struct {
	result *tasks.ImportResult
	err    error
}

// libraryLoadedMsg is the constructor for [MsgLibraryLoaded]
func libraryLoadedMsg(lib library) Msg {
	return Msg{kind: MsgLibraryLoaded, data: lib}
}

// searchCompleteMsg is the constructor for [MsgSearchComplete]
func searchCompleteMsg(results []models.SearchResult, err error) Msg {
	return Msg{kind: MsgSearchComplete, data: searchResult{results, err}}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// importCompleteMsg is the constructor for [MsgImportComplete]
func importCompleteMsg(result *tasks.ImportResult, err error) Msg {
	return Msg{kind: MsgImportComplete, data: importResult{result, err}}
}

// themeChangedMsg is the constructor for [MsgThemeChanged]
func themeChangedMsg(th models.Theme) Msg {
	return Msg{kind: MsgThemeChanged, data: th}
}

// statusMsg is the constructor for [MsgStatus]; a non-nil err is shown as a warning.
func statusMsg(text string, err error) Msg {
	return Msg{kind: MsgStatus, data: status{text: text, err: err}}
}

type status struct {
	text string
	err  error
}
