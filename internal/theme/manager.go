package theme

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/shared"
)

// Store persists the chosen theme.
type Store interface {
	Get(ctx context.Context) (models.Theme, bool)
	Set(ctx context.Context, theme models.Theme) error
}

// Detector reports the system colour scheme. The boolean is false when it cannot tell.
type Detector func() (models.Theme, bool)

// TerminalDetector asks the terminal on stdout for its background colour.
func TerminalDetector() (models.Theme, bool) {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return "", false
	}
	if lipgloss.HasDarkBackground() {
		return models.ThemeDark, true
	}
	return models.ThemeLight, true
}

// SubscriptionID identifies a subscriber for [Manager.Unsubscribe].
type SubscriptionID uint64

type subscription struct {
	id SubscriptionID
	fn func(models.Theme)
}

// Manager holds the current theme.
type Manager struct {
	store  Store
	logger *log.Logger

	mu      sync.RWMutex
	current models.Theme
	subs    []subscription
	nextID  SubscriptionID
}

// NewManager resolves the initial theme from store, then detect, then light.
func NewManager(ctx context.Context, store Store, detect Detector, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	m := &Manager{store: store, logger: shared.WithLogger(logger, "component", "theme"), current: models.ThemeLight}

	if th, ok := store.Get(ctx); ok {
		m.current = th
	} else if detect != nil {
		if th, ok := detect(); ok {
			m.current = th
		}
	}
	return m
}

// Get returns the current theme
func (m *Manager) Get() models.Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Palette returns the styles for the current theme
func (m *Manager) Palette() *Palette {
	return PaletteFor(m.Get())
}

// Set switches to theme, notifies subscribers and persists it.
//
// The switch takes effect even when persisting fails; the error is returned so the caller can warn.
func (m *Manager) Set(ctx context.Context, theme models.Theme) error {
	theme, err := models.ParseTheme(string(theme))
	if err != nil {
		return err
	}

	m.mu.Lock()
	changed := m.current != theme
	m.current = theme
	subs := make([]subscription, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	if changed {
		for _, sub := range subs {
			m.notify(sub, theme)
		}
	}

	if err := m.store.Set(ctx, theme); err != nil {
		return fmt.Errorf("failed to persist theme: %w", err)
	}
	return nil
}

// Toggle flips between light and dark and returns the new theme.
func (m *Manager) Toggle(ctx context.Context) (models.Theme, error) {
	next := m.Get().Toggled()
	return next, m.Set(ctx, next)
}

// Subscribe registers fn to be called after every change.
func (m *Manager) Subscribe(fn func(models.Theme)) SubscriptionID {
	if fn == nil {
		panic("theme subscriber cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.subs = append(m.subs, subscription{id: m.nextID, fn: fn})
	return m.nextID
}

// Unsubscribe removes a subscriber, reporting whether it was registered.
func (m *Manager) Unsubscribe(id SubscriptionID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, sub := range m.subs {
		if sub.id == id {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			return true
		}
	}
	return false
}

// notify calls a subscriber, recovering from panics so the rest still run.
func (m *Manager) notify(sub subscription, theme models.Theme) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("theme subscriber panicked", "subscription", sub.id, "panic", r)
		}
	}()
	sub.fn(theme)
}
