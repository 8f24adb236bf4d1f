package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/lyricbook/internal/catalog"
	"github.com/desertthunder/lyricbook/internal/formatter"
	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/repositories"
	"github.com/desertthunder/lyricbook/internal/tasks"
	"github.com/desertthunder/lyricbook/internal/theme"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LyricListView ViewState = iota
	DetailView
	PlaylistListView
	SearchView
	ResultsView
	ImportView
)

// library is what the browser reads from the repositories in one pass.
type library struct {
	genres    []models.Genre
	lyrics    []models.Lyric
	playlists []models.Playlist
	favorites []models.ID
	prefs     models.Preferences
}

// Options are the dependencies of [NewModel].
//
// A nil Importer disables online search.
type Options struct {
	Repos    *repositories.Repositories
	Themes   *theme.Manager
	Importer *tasks.Importer
	GenreID  models.ID // Genre given to imported lyrics (default: the last genre)
}

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	opts   Options
	view   ViewState
	width  int
	height int

	lib      library
	playlist *models.Playlist
	selected *catalog.Entry

	lyricList    list.Model
	playlistList list.Model
	resultList   list.Model
	detail       viewport.Model
	query        textinput.Model

	progressChan chan tasks.ProgressUpdate
	importDone   chan importResult
	progress     tasks.ProgressUpdate

	themeChan chan models.Theme
	themeSub  theme.SubscriptionID

	status status
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
//
// Call [Model.Close] once the program exits.
func NewModel(ctx context.Context, opts Options) *Model {
	p := opts.Themes.Palette()

	q := textinput.New()
	q.Placeholder = "song title or artist"
	q.CharLimit = 200

	m := &Model{
		ctx:          ctx,
		opts:         opts,
		view:         LyricListView,
		lyricList:    newList("Lyrics", nil, p),
		playlistList: newList("Playlists", nil, p),
		resultList:   newList("Search Results", nil, p),
		detail:       viewport.New(0, 0),
		query:        q,
		themeChan:    make(chan models.Theme, 1),
		help:         help.New(),
		keys:         newKeyMap(),
	}
	m.themeSub = opts.Themes.Subscribe(func(th models.Theme) {
		select {
		case m.themeChan <- th:
		default:
		}
	})
	m.restyle()
	return m
}

// Run starts the browser full screen and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	m := NewModel(ctx, opts)
	defer m.Close()
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// Close releases the theme subscription.
func (m *Model) Close() {
	m.opts.Themes.Unsubscribe(m.themeSub)
}

// ViewState returns the active view
func (m *Model) ViewState() ViewState { return m.view }

// Init initializes the TUI by loading the library and listening for theme changes.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadLibrary(), m.waitForTheme())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case Msg:
		return m.handleMsg(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.view {
		case LyricListView:
			return m.handleLyricListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case SearchView:
			return m.handleSearchKeys(msg)
		case ResultsView:
			return m.handleResultsKeys(msg)
		case ImportView:
			return m, nil
		}
	}

	return m.updateActive(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgLibraryLoaded:
		m.lib = msg.data.(library)
		cmds := []tea.Cmd{m.playlistList.SetItems(playlistItems(m.lib.playlists)), m.refreshLyrics()}
		if m.selected != nil {
			m.selected = m.entry(m.selected.ID)
			m.renderDetail()
		}
		return m, tea.Batch(cmds...)

	case MsgSearchComplete:
		res := msg.data.(searchResult)
		if res.err != nil {
			m.status = status{err: fmt.Errorf("search failed: %w", res.err)}
			return m, nil
		}
		m.status = status{text: fmt.Sprintf("Found %d songs", len(res.results))}
		m.resultList.Title = fmt.Sprintf("Results for %q", m.query.Value())
		m.view = ResultsView
		m.query.Blur()
		return m, m.resultList.SetItems(resultItems(res.results))

	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()

	case MsgImportComplete:
		res := msg.data.(importResult)
		m.progressChan = nil
		m.importDone = nil
		if res.err != nil {
			m.status = status{err: fmt.Errorf("import failed: %w", res.err)}
			m.view = ResultsView
			return m, nil
		}
		m.status = status{text: fmt.Sprintf("Imported %s by %s", res.result.Lyric.Title, res.result.Lyric.Artist)}
		m.view = LyricListView
		return m, m.loadLibrary()

	case MsgThemeChanged:
		m.restyle()
		m.renderDetail()
		return m, m.waitForTheme()

	case MsgStatus:
		m.status = msg.data.(status)
		return m, m.loadLibrary()
	}
	return m, nil
}

func (m *Model) handleLyricListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.lyricList.FilterState() == list.Filtering {
		return m.updateActive(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if it, ok := m.lyricList.SelectedItem().(lyricItem); ok {
			entry := it.entry
			m.selected = &entry
			m.view = DetailView
			m.renderDetail()
			m.detail.GotoTop()
		}
		return m, nil
	case key.Matches(msg, m.keys.favorite):
		if it, ok := m.lyricList.SelectedItem().(lyricItem); ok {
			return m, m.toggleFavorite(it.entry.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.theme):
		return m, m.toggleTheme()
	case key.Matches(msg, m.keys.playlists):
		m.view = PlaylistListView
		return m, nil
	case key.Matches(msg, m.keys.search):
		if m.opts.Importer == nil {
			m.status = status{err: fmt.Errorf("online search is not configured")}
			return m, nil
		}
		m.view = SearchView
		return m, m.query.Focus()
	case key.Matches(msg, m.keys.back):
		if m.playlist != nil && m.lyricList.FilterState() == list.Unfiltered {
			m.playlist = nil
			return m, m.refreshLyrics()
		}
	}
	return m.updateActive(msg)
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back), msg.String() == "backspace":
		m.view = LyricListView
		m.selected = nil
		return m, nil
	case key.Matches(msg, m.keys.favorite):
		if m.selected != nil {
			return m, m.toggleFavorite(m.selected.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.theme):
		return m, m.toggleTheme()
	case key.Matches(msg, m.keys.chords):
		return m, m.toggleChords()
	}
	return m.updateActive(msg)
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.playlistList.FilterState() == list.Filtering {
		return m.updateActive(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = LyricListView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if it, ok := m.playlistList.SelectedItem().(playlistItem); ok {
			p := it.playlist
			m.playlist = &p
			m.view = LyricListView
			return m, m.refreshLyrics()
		}
		return m, nil
	}
	return m.updateActive(msg)
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.query.Blur()
		m.view = LyricListView
		return m, nil
	case "enter":
		q := strings.TrimSpace(m.query.Value())
		if q == "" {
			return m, nil
		}
		m.status = status{text: "Searching..."}
		return m, m.search(q)
	}
	return m.updateActive(msg)
}

func (m *Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.resultList.FilterState() == list.Filtering {
		return m.updateActive(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = SearchView
		return m, m.query.Focus()
	case key.Matches(msg, m.keys.enter):
		if it, ok := m.resultList.SelectedItem().(resultItem); ok {
			return m, m.startImport(it.result)
		}
		return m, nil
	}
	return m.updateActive(msg)
}

// updateActive forwards msg to the component of the current view.
func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case LyricListView:
		m.lyricList, cmd = m.lyricList.Update(msg)
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case ResultsView:
		m.resultList, cmd = m.resultList.Update(msg)
	case DetailView:
		m.detail, cmd = m.detail.Update(msg)
	case SearchView:
		m.query, cmd = m.query.Update(msg)
	}
	return m, cmd
}

// refreshLyrics rebuilds the lyric list, narrowed to the active playlist if any.
func (m *Model) refreshLyrics() tea.Cmd {
	lyrics := m.lib.lyrics
	m.lyricList.Title = "Lyrics"
	if m.playlist != nil {
		if p, ok := models.Find(m.lib.playlists, m.playlist.ID); ok {
			m.playlist = &p
			lyrics = catalog.Resolve(p, lyrics)
			m.lyricList.Title = p.Name
		} else {
			m.playlist = nil
		}
	}
	return m.lyricList.SetItems(lyricItems(catalog.Entries(lyrics, m.lib.genres, m.lib.favorites)))
}

func (m *Model) entry(id models.ID) *catalog.Entry {
	l, ok := models.Find(m.lib.lyrics, id)
	if !ok {
		return nil
	}
	e := catalog.Entries([]models.Lyric{l}, m.lib.genres, m.lib.favorites)[0]
	return &e
}

func (m *Model) resize() {
	w, h := max(m.width-4, 0), max(m.height-6, 0)
	m.lyricList.SetSize(w, h)
	m.playlistList.SetSize(w, h)
	m.resultList.SetSize(w, h)
	m.query.Width = max(w-4, 10)
	m.detail.Width = w
	m.detail.Height = max(m.height-8, 0)
	m.renderDetail()
}

func (m *Model) restyle() {
	p := m.opts.Themes.Palette()
	stylist(&m.lyricList, p)
	stylist(&m.playlistList, p)
	stylist(&m.resultList, p)
	m.query.PromptStyle = p.Accent
	m.query.TextStyle = p.Text
	m.help.Styles.ShortKey = p.Accent
	m.help.Styles.ShortDesc = p.Help
	m.help.Styles.ShortSeparator = p.Help
}

func (m *Model) renderDetail() {
	if m.selected == nil {
		m.detail.SetContent("")
		return
	}
	body := formatter.LyricBody(m.selected.Content, m.lib.prefs, m.detail.Width)
	m.detail.SetContent(m.opts.Themes.Palette().Text.Render(body))
}

func (m *Model) importGenre() models.ID {
	if !m.opts.GenreID.IsZero() {
		return m.opts.GenreID
	}
	if n := len(m.lib.genres); n > 0 {
		return m.lib.genres[n-1].ID
	}
	return ""
}

func (m *Model) loadLibrary() tea.Cmd {
	ctx, repos := m.ctx, m.opts.Repos
	return func() tea.Msg {
		genres, _ := repos.Genres.Load(ctx)
		playlists, _ := repos.Playlists.Load(ctx)
		return libraryLoadedMsg(library{
			genres:    genres,
			lyrics:    repos.Lyrics.List(ctx),
			playlists: playlists,
			favorites: repos.Favorites.List(ctx),
			prefs:     repos.Preferences.Load(ctx),
		})
	}
}

func (m *Model) toggleFavorite(id models.ID) tea.Cmd {
	ctx, repos := m.ctx, m.opts.Repos
	return func() tea.Msg {
		on, err := repos.Favorites.Toggle(ctx, id)
		if err != nil {
			return statusMsg("", fmt.Errorf("failed to update favorites: %w", err))
		}
		if on {
			return statusMsg("Added to favorites", nil)
		}
		return statusMsg("Removed from favorites", nil)
	}
}

func (m *Model) toggleTheme() tea.Cmd {
	ctx, themes := m.ctx, m.opts.Themes
	return func() tea.Msg {
		th, err := themes.Toggle(ctx)
		if err != nil {
			return statusMsg("", fmt.Errorf("switched to %s theme but could not save it: %w", th, err))
		}
		return statusMsg(fmt.Sprintf("Switched to %s theme", th), nil)
	}
}

// toggleChords applies immediately and saves in the background.
func (m *Model) toggleChords() tea.Cmd {
	m.lib.prefs.ShowChords = !m.lib.prefs.ShowChords
	m.renderDetail()

	ctx, repos, prefs := m.ctx, m.opts.Repos, m.lib.prefs
	return func() tea.Msg {
		if err := repos.Preferences.Save(ctx, prefs); err != nil {
			return statusMsg("", fmt.Errorf("failed to save preferences: %w", err))
		}
		if prefs.ShowChords {
			return statusMsg("Chords shown", nil)
		}
		return statusMsg("Chords hidden", nil)
	}
}

func (m *Model) waitForTheme() tea.Cmd {
	ch := m.themeChan
	return func() tea.Msg {
		return themeChangedMsg(<-ch)
	}
}

func (m *Model) search(query string) tea.Cmd {
	ctx, im := m.ctx, m.opts.Importer
	return func() tea.Msg {
		results, err := im.Search(ctx, nil, query)
		return searchCompleteMsg(results, err)
	}
}

func (m *Model) startImport(r models.SearchResult) tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 20)
	m.importDone = make(chan importResult, 1)
	m.progress = tasks.ProgressUpdate{Message: fmt.Sprintf("Importing %s...", r.Title)}
	m.view = ImportView

	ctx, im, ch, done := m.ctx, m.opts.Importer, m.progressChan, m.importDone
	req := tasks.ImportRequest{Result: &r, GenreID: m.importGenre()}
	go func() {
		res, err := im.Import(ctx, ch, req)
		done <- importResult{result: res, err: err}
		close(ch)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	ch, done := m.progressChan, m.importDone
	return func() tea.Msg {
		if ch == nil {
			return nil
		}
		update, ok := <-ch
		if !ok {
			res := <-done
			return importCompleteMsg(res.result, res.err)
		}
		return progressUpdateMsg(update)
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case LyricListView:
		keys := []key.Binding{m.keys.enter, m.keys.favorite, m.keys.playlists, m.keys.theme}
		if m.opts.Importer != nil {
			keys = append(keys, m.keys.search)
		}
		if m.playlist != nil {
			keys = append(keys, m.keys.back)
		}
		return m.frame(m.lyricList.View(), append(keys, m.keys.quit))
	case DetailView:
		return m.frame(m.renderEntry(), []key.Binding{m.keys.back, m.keys.favorite, m.keys.chords, m.keys.theme, m.keys.quit})
	case PlaylistListView:
		return m.frame(m.playlistList.View(), []key.Binding{m.keys.enter, m.keys.back, m.keys.quit})
	case SearchView:
		p := m.opts.Themes.Palette()
		body := fmt.Sprintf("%s\n\n%s", p.Header.Render("Search Online"), m.query.View())
		return m.frame(body, []key.Binding{key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")), m.keys.back})
	case ResultsView:
		importKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "import"))
		return m.frame(m.resultList.View(), []key.Binding{importKey, m.keys.back, m.keys.quit})
	case ImportView:
		p := m.opts.Themes.Palette()
		return fmt.Sprintf("%s\n\n%s", p.Header.Render("Importing Lyric"), p.Text.Render(m.progress.Message))
	default:
		return ""
	}
}

func (m *Model) renderEntry() string {
	if m.selected == nil {
		return ""
	}
	p := m.opts.Themes.Palette()
	e := m.selected

	title := e.Title
	if e.Favorite {
		title = "★ " + title
	}
	meta := []string{e.Artist, e.GenreName}
	if !e.Date.IsZero() {
		meta = append(meta, e.Date.Local().Format(time.DateOnly))
	}
	return fmt.Sprintf("%s\n%s\n\n%s", p.Header.Render(title), p.Secondary.Render(strings.Join(meta, " • ")), m.detail.View())
}

func (m *Model) frame(body string, keys []key.Binding) string {
	p := m.opts.Themes.Palette()
	out := fmt.Sprintf("%s\n\n%s", body, m.help.ShortHelpView(keys))
	switch {
	case m.status.err != nil:
		out += "\n" + p.Err.Render(m.status.err.Error())
	case m.status.text != "":
		out += "\n" + p.OK.Render(m.status.text)
	}
	return out
}
