package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/repositories"
	"github.com/desertthunder/lyricbook/internal/store"
	"github.com/desertthunder/lyricbook/internal/tasks"
	tu "github.com/desertthunder/lyricbook/internal/testing"
	"github.com/desertthunder/lyricbook/internal/theme"
)

type mockSource struct{}

func (mockSource) Name() string { return "Mock" }
func (mockSource) Authenticate(ctx context.Context, credentials map[string]string) error {
	return nil
}
func (mockSource) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	return []models.SearchResult{{ID: "9", Title: "Hello", Artist: "Adele", URL: "https://genius.test/hello"}}, nil
}
func (mockSource) FetchLyrics(ctx context.Context, url string) (string, error) {
	return "Hello, it's me", nil
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func setupModel(t *testing.T, withImporter bool) (*Model, *repositories.Repositories) {
	t.Helper()
	ctx := context.Background()

	s := store.NewMemoryStore()
	t.Cleanup(func() { s.Close() })
	repos := repositories.New(s, repositories.Options{Logger: tu.QuietLogger()})
	themes := theme.NewManager(ctx, repos.Theme, nil, tu.QuietLogger())

	opts := Options{Repos: repos, Themes: themes}
	if withImporter {
		opts.Importer = tasks.NewImporter(mockSource{}, repos, tu.QuietLogger())
	}

	m := NewModel(ctx, opts)
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return m, repos
}

// reload feeds a fresh library into m
func reload(m *Model) {
	m.Update(m.loadLibrary()())
}

// follow runs cmd and feeds its message back, as the program loop would.
func follow(t *testing.T, m *Model, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		_, next := m.Update(msg)
		return next
	case <-time.After(2 * time.Second):
		t.Fatal("command did not finish")
		return nil
	}
}

func createLyric(t *testing.T, repos *repositories.Repositories, title, content string) models.Lyric {
	t.Helper()
	l, err := repos.Lyrics.Create(context.Background(), models.Lyric{Title: title, Artist: "Artist", Content: content, GenreID: "1"})
	if err != nil {
		t.Fatalf("failed to create lyric: %v", err)
	}
	return l
}

func TestModel_LoadsLibrary(t *testing.T) {
	m, repos := setupModel(t, false)
	createLyric(t, repos, "First", "la")
	createLyric(t, repos, "Second", "la")

	reload(m)

	if n := len(m.lyricList.Items()); n != 2 {
		t.Errorf("expected 2 lyrics, got %d", n)
	}
	if n := len(m.lib.genres); n != 10 {
		t.Errorf("expected default genres, got %d", n)
	}

	// loading persists the defaults
	if _, err := repos.Genres.Load(context.Background()); err != nil {
		t.Errorf("genres should load: %v", err)
	}
	if !strings.Contains(m.View(), "First") {
		t.Error("view should list lyrics")
	}
}

func TestModel_Favorite(t *testing.T) {
	m, repos := setupModel(t, false)
	l := createLyric(t, repos, "Only", "la")
	reload(m)

	_, cmd := m.Update(runes("f"))
	follow(t, m, follow(t, m, cmd))

	if !repos.Favorites.Contains(context.Background(), l.ID) {
		t.Fatal("expected lyric to be a favorite")
	}
	if m.status.text != "Added to favorites" {
		t.Errorf("unexpected status %q", m.status.text)
	}
	if it := m.lyricList.Items()[0].(lyricItem); !it.entry.Favorite {
		t.Error("list should reflect the favorite")
	}
}

func TestModel_DetailHonoursPreferences(t *testing.T) {
	m, repos := setupModel(t, false)
	createLyric(t, repos, "Chorded", "G    D\nline one")
	reload(m)

	m.Update(enter)
	if m.ViewState() != DetailView {
		t.Fatalf("expected detail view, got %d", m.ViewState())
	}
	if view := m.View(); !strings.Contains(view, "G    D") || !strings.Contains(view, "line one") {
		t.Errorf("chords should be shown by default:\n%s", view)
	}

	_, cmd := m.Update(runes("c"))
	if view := m.View(); strings.Contains(view, "G    D") {
		t.Errorf("chords should be hidden:\n%s", view)
	}
	follow(t, m, cmd)

	if repos.Preferences.Load(context.Background()).ShowChords {
		t.Error("preference should be saved")
	}

	m.Update(esc)
	if m.ViewState() != LyricListView {
		t.Errorf("esc should return to the list, got %d", m.ViewState())
	}
}

func TestModel_ThemeToggle(t *testing.T) {
	m, repos := setupModel(t, false)
	reload(m)

	_, cmd := m.Update(runes("t"))
	follow(t, m, cmd)

	if got := m.opts.Themes.Get(); got != models.ThemeDark {
		t.Errorf("expected dark theme, got %s", got)
	}
	if th, ok := repos.Theme.Get(context.Background()); !ok || th != models.ThemeDark {
		t.Errorf("theme should be persisted, got %s %v", th, ok)
	}

	select {
	case th := <-m.themeChan:
		if th != models.ThemeDark {
			t.Errorf("subscription got %s", th)
		}
	default:
		t.Error("theme change should reach the model subscription")
	}
}

func TestModel_PlaylistFilter(t *testing.T) {
	m, repos := setupModel(t, false)
	ctx := context.Background()
	a := createLyric(t, repos, "In Playlist", "la")
	createLyric(t, repos, "Elsewhere", "la")

	p, err := repos.Playlists.Create(ctx, "Mine")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repos.Playlists.AddLyric(ctx, p.ID, a.ID); err != nil {
		t.Fatal(err)
	}
	reload(m)

	m.Update(runes("p"))
	if m.ViewState() != PlaylistListView {
		t.Fatalf("expected playlist view, got %d", m.ViewState())
	}

	// the sample playlist comes first
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(enter)

	if m.ViewState() != LyricListView {
		t.Fatalf("expected lyric list, got %d", m.ViewState())
	}
	if m.playlist == nil || m.playlist.ID != p.ID {
		t.Fatalf("expected playlist filter %s, got %+v", p.ID, m.playlist)
	}
	if items := m.lyricList.Items(); len(items) != 1 || items[0].(lyricItem).entry.ID != a.ID {
		t.Errorf("expected only the playlist lyric, got %d items", len(items))
	}

	m.Update(esc)
	if m.playlist != nil || len(m.lyricList.Items()) != 2 {
		t.Error("esc should clear the playlist filter")
	}
}

func TestModel_SearchAndImport(t *testing.T) {
	m, repos := setupModel(t, true)
	reload(m)

	_, _ = m.Update(runes("s"))
	if m.ViewState() != SearchView {
		t.Fatalf("expected search view, got %d", m.ViewState())
	}
	m.Update(runes("hello"))

	_, cmd := m.Update(enter)
	follow(t, m, cmd)
	if m.ViewState() != ResultsView {
		t.Fatalf("expected results view, got %d (status %+v)", m.ViewState(), m.status)
	}

	_, cmd = m.Update(enter)
	if m.ViewState() != ImportView {
		t.Fatalf("expected import view, got %d", m.ViewState())
	}
	for i := 0; i < 10 && m.ViewState() == ImportView; i++ {
		cmd = follow(t, m, cmd)
	}
	if m.ViewState() != LyricListView {
		t.Fatalf("import should finish, got view %d (status %+v)", m.ViewState(), m.status)
	}
	follow(t, m, cmd)

	lyrics := repos.Lyrics.List(context.Background())
	if len(lyrics) != 1 || lyrics[0].Title != "Hello" {
		t.Fatalf("expected imported lyric, got %+v", lyrics)
	}
	if lyrics[0].GenreID != "10" {
		t.Errorf("expected last genre, got %s", lyrics[0].GenreID)
	}
	if h := repos.SearchHistory.List(context.Background()); len(h) != 1 || h[0] != "hello" {
		t.Errorf("expected search history [hello], got %v", h)
	}
	if len(m.lyricList.Items()) != 1 {
		t.Error("list should show the imported lyric")
	}
}

func TestModel_SearchDisabled(t *testing.T) {
	m, _ := setupModel(t, false)
	reload(m)

	m.Update(runes("s"))
	if m.ViewState() != LyricListView {
		t.Errorf("search should stay disabled, got view %d", m.ViewState())
	}
	if m.status.err == nil {
		t.Error("expected a status error")
	}
}
