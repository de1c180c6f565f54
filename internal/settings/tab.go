package settings

import "strings"

// Tab identifies the active lane in the TUI.
type Tab string

const (
	// TabBrowse shows the paginated catalog.
	TabBrowse Tab = "browse"

	// TabFavorites shows the favorited dogs.
	TabFavorites Tab = "favorites"
)

// IsValid returns whether the tab is one of the supported values.
func (t Tab) IsValid() bool {
	switch t {
	case TabBrowse, TabFavorites:
		return true
	default:
		return false
	}
}

// DefaultTab returns the default tab used when value is missing or invalid.
func DefaultTab() Tab {
	return TabBrowse
}

// NormalizeTab converts arbitrary persisted input to a valid tab value.
// Missing or invalid values always resolve to the default tab.
func NormalizeTab(raw string) Tab {
	tab := Tab(strings.ToLower(strings.TrimSpace(raw)))
	if tab.IsValid() {
		return tab
	}
	return DefaultTab()
}
