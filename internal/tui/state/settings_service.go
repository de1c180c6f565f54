package state

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dogfinder/dogfinder/internal/domain"
	"github.com/dogfinder/dogfinder/internal/settings"
)

// settingsService tracks the preferences loaded at start and saves them
// back only when they changed.
type settingsService struct {
	loaded *settings.Settings
	save   func(*settings.Settings) error
}

func newSettingsService(loaded *settings.Settings, save func(*settings.Settings) error) *settingsService {
	// loaded is kept normalized so filled-in defaults compare equal.
	baseline := settings.FromSettings(loaded).ToSettings()
	return &settingsService{loaded: baseline, save: save}
}

func (s *settingsService) state() settings.TUIState {
	return settings.FromSettings(s.loaded)
}

func (s *settingsService) snapshot(columns []string, filters domain.FilterState, viewMode string, tab settings.Tab) *settings.Settings {
	return settings.TUIState{
		Columns:   columns,
		Filters:   filters,
		ViewMode:  viewMode,
		ActiveTab: tab,
	}.ToSettings()
}

func (s *settingsService) changed(next *settings.Settings) bool {
	a := s.loaded
	return !slices.Equal(a.Columns, next.Columns) ||
		a.SortBy != next.SortBy ||
		a.SortOrder != next.SortOrder ||
		a.ViewMode != next.ViewMode ||
		a.ActiveTab != next.ActiveTab ||
		!slices.Equal(a.Filters.Breeds, next.Filters.Breeds) ||
		!intPtrEqual(a.Filters.AgeMin, next.Filters.AgeMin) ||
		!intPtrEqual(a.Filters.AgeMax, next.Filters.AgeMax)
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// saveCmd returns nil when saving is disabled or nothing changed.
func (s *settingsService) saveCmd(next *settings.Settings) tea.Cmd {
	if s.save == nil || !s.changed(next) {
		return nil
	}
	save := s.save
	return SaveSettingsCmd(func() error {
		if err := save(next); err != nil {
			return err
		}
		s.loaded = next
		return nil
	})
}
