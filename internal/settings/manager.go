package settings

import (
	"slices"

	"github.com/dogfinder/dogfinder/internal/domain"
)

// TUIState represents the TUI model state that can be persisted.
// It keeps internal/settings independent of the tui package.
type TUIState struct {
	Columns   []string
	Filters   domain.FilterState
	ViewMode  string
	ActiveTab Tab
}

// FromSettings converts Settings to TUIState. Unset values fall back to
// defaults, so the result is always usable by the TUI.
func FromSettings(s *Settings) TUIState {
	if s == nil {
		s = DefaultSettings()
	}
	state := TUIState{
		Columns:   slices.Clone(s.Columns),
		ViewMode:  s.ViewMode,
		ActiveTab: NormalizeTab(string(s.ActiveTab)),
	}
	if len(state.Columns) == 0 {
		state.Columns = slices.Clone(DefaultColumns)
	}
	if state.ViewMode == "" {
		state.ViewMode = ViewModeCompact
	}

	sort := domain.DefaultSort()
	if s.SortBy != "" {
		sort.Field = domain.SortField(s.SortBy)
	}
	if s.SortOrder != "" {
		sort.Direction = domain.SortDirection(s.SortOrder)
	}
	if !sort.Field.IsValid() || !sort.Direction.IsValid() {
		sort = domain.DefaultSort()
	}
	state.Filters = domain.DefaultFilterState().
		WithSort(sort).
		WithBreeds(s.Filters.Breeds).
		WithAgeRange(s.Filters.AgeMin, s.Filters.AgeMax)
	return state
}

// ToSettings converts TUIState to Settings. Zip codes are not persisted:
// they depend on the location resolved for the running session.
func (t TUIState) ToSettings() *Settings {
	f := t.Filters.Clone()
	return &Settings{
		Columns:   slices.Clone(t.Columns),
		SortBy:    f.Sort.Field.String(),
		SortOrder: f.Sort.Direction.String(),
		Filters: Filter{
			Breeds: f.Breeds,
			AgeMin: f.AgeMin,
			AgeMax: f.AgeMax,
		},
		ViewMode:  t.ViewMode,
		ActiveTab: t.ActiveTab,
	}
}

// IsEmpty returns true if no field carries a value.
func (t TUIState) IsEmpty() bool {
	return len(t.Columns) == 0 &&
		t.ViewMode == "" &&
		t.ActiveTab == "" &&
		len(t.Filters.Breeds) == 0 &&
		len(t.Filters.ZipCodes) == 0 &&
		t.Filters.AgeMin == nil &&
		t.Filters.AgeMax == nil &&
		t.Filters.Sort == domain.Sort{}
}
