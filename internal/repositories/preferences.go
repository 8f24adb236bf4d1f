package repositories

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/store"
)

// PreferencesRepository stores display preferences under [KeyPreferences].
type PreferencesRepository struct {
	base
}

// NewPreferencesRepository creates a new PreferencesRepository
func NewPreferencesRepository(s store.Store, logger *log.Logger) *PreferencesRepository {
	return &PreferencesRepository{base: newBase(s, logger, KeyPreferences, nil)}
}

// Load returns the stored preferences. Fields missing from the stored record keep their defaults,
// and an unreadable record yields [models.DefaultPreferences].
func (r *PreferencesRepository) Load(ctx context.Context) models.Preferences {
	prefs := models.DefaultPreferences()
	if r.read(ctx, &prefs) == stateFailed {
		return models.DefaultPreferences()
	}
	return prefs
}

// Save validates and stores prefs
func (r *PreferencesRepository) Save(ctx context.Context, prefs models.Preferences) error {
	if err := prefs.Validate(); err != nil {
		return err
	}
	return r.write(ctx, prefs)
}
