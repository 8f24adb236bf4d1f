package theme

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/repositories"
	"github.com/desertthunder/lyricbook/internal/store"
	tu "github.com/desertthunder/lyricbook/internal/testing"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newRepo(t *testing.T) (*repositories.ThemeRepository, store.Store) {
	t.Helper()
	s := store.NewMemoryStore()
	return repositories.NewThemeRepository(s, tu.QuietLogger()), s
}

func detects(th models.Theme) Detector {
	return func() (models.Theme, bool) { return th, true }
}

func noDetect() (models.Theme, bool) { return "", false }

func TestNewManager(t *testing.T) {
	ctx := context.Background()

	t.Run("stored theme wins", func(t *testing.T) {
		repo, _ := newRepo(t)
		require.NoError(t, repo.Set(ctx, models.ThemeDark))

		m := NewManager(ctx, repo, detects(models.ThemeLight), tu.QuietLogger())
		assert.Equal(t, models.ThemeDark, m.Get())
	})

	t.Run("falls back to detector", func(t *testing.T) {
		repo, _ := newRepo(t)
		m := NewManager(ctx, repo, detects(models.ThemeDark), tu.QuietLogger())
		assert.Equal(t, models.ThemeDark, m.Get())
	})

	t.Run("falls back to light", func(t *testing.T) {
		repo, _ := newRepo(t)
		assert.Equal(t, models.ThemeLight, NewManager(ctx, repo, noDetect, tu.QuietLogger()).Get())
		assert.Equal(t, models.ThemeLight, NewManager(ctx, repo, nil, tu.QuietLogger()).Get())
	})

	t.Run("malformed stored value is ignored", func(t *testing.T) {
		repo, s := newRepo(t)
		tu.MustSet(t, s, repositories.KeyTheme, "neon")
		m := NewManager(ctx, repo, detects(models.ThemeDark), tu.QuietLogger())
		assert.Equal(t, models.ThemeDark, m.Get())
	})
}

func TestManager(t *testing.T) {
	ctx := context.Background()

	t.Run("Toggle persists and notifies", func(t *testing.T) {
		repo, s := newRepo(t)
		m := NewManager(ctx, repo, noDetect, tu.QuietLogger())

		var seen []models.Theme
		m.Subscribe(func(th models.Theme) { seen = append(seen, th) })

		th, err := m.Toggle(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.ThemeDark, th)
		assert.Equal(t, "dark", tu.MustGet(t, s, repositories.KeyTheme))

		th, err = m.Toggle(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.ThemeLight, th)
		assert.Equal(t, []models.Theme{models.ThemeDark, models.ThemeLight}, seen)
	})

	t.Run("Set same theme does not notify", func(t *testing.T) {
		repo, _ := newRepo(t)
		m := NewManager(ctx, repo, noDetect, tu.QuietLogger())
		calls := 0
		m.Subscribe(func(models.Theme) { calls++ })

		require.NoError(t, m.Set(ctx, models.ThemeLight))
		assert.Zero(t, calls)
	})

	t.Run("Set rejects unknown themes", func(t *testing.T) {
		repo, _ := newRepo(t)
		m := NewManager(ctx, repo, noDetect, tu.QuietLogger())
		assert.ErrorIs(t, m.Set(ctx, "sepia"), models.ErrInvalidTheme)
		assert.Equal(t, models.ThemeLight, m.Get())
	})

	t.Run("Unsubscribe", func(t *testing.T) {
		repo, _ := newRepo(t)
		m := NewManager(ctx, repo, noDetect, tu.QuietLogger())
		calls := 0
		id := m.Subscribe(func(models.Theme) { calls++ })

		assert.True(t, m.Unsubscribe(id))
		assert.False(t, m.Unsubscribe(id))
		_, _ = m.Toggle(ctx)
		assert.Zero(t, calls)
	})

	t.Run("panicking subscriber does not stop others", func(t *testing.T) {
		repo, _ := newRepo(t)
		m := NewManager(ctx, repo, noDetect, tu.QuietLogger())
		m.Subscribe(func(models.Theme) { panic("boom") })
		got := models.Theme("")
		m.Subscribe(func(th models.Theme) { got = th })

		assert.NotPanics(t, func() { _, _ = m.Toggle(ctx) })
		assert.Equal(t, models.ThemeDark, got)
	})

	t.Run("persist failure still switches", func(t *testing.T) {
		s := tu.NewFlakyStore()
		s.SetErr = errors.New("disk full")
		m := NewManager(ctx, repositories.NewThemeRepository(s, tu.QuietLogger()), noDetect, tu.QuietLogger())

		_, err := m.Toggle(ctx)
		assert.ErrorIs(t, err, repositories.ErrStoreWrite)
		assert.Equal(t, models.ThemeDark, m.Get())
	})
}

func TestPalette(t *testing.T) {
	assert.Equal(t, "#6200EE", PaletteFor(models.ThemeLight).Colors.Primary)
	assert.Equal(t, "#B388FF", PaletteFor(models.ThemeDark).Colors.Primary)
	assert.Same(t, PaletteFor(models.ThemeDark), PaletteFor(models.ThemeDark))
	assert.NotEmpty(t, PaletteFor(models.ThemeLight).Title.Render("x"))
}
