package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dogfinder/dogfinder/internal/colors"
	"github.com/dogfinder/dogfinder/internal/config"
	"github.com/pelletier/go-toml/v2"
)

// Filter holds the persisted catalog filter selection.
type Filter struct {
	// Breeds selects breeds; empty means all breeds.
	Breeds []string `toml:"breeds,omitempty"`

	// AgeMin and AgeMax bound the age when set.
	AgeMin *int `toml:"age_min,omitempty"`
	AgeMax *int `toml:"age_max,omitempty"`
}

// Settings holds TUI user preferences persisted to disk.
//
// TOML example:
//
//	columns = ["favorite", "name", "breed", "age", "zip"]
//	sort_by = "breed"
//	sort_order = "asc"
//	view_mode = "compact"
//	active_tab = "browse"
//
//	[filters]
//	breeds = ["Beagle"]
//	age_max = 4
//
// Settings are stored at ~/.config/dogfinder/tui.toml
type Settings struct {
	// Columns defines which columns are displayed and their order.
	// Empty slice means use default column order.
	Columns []string `toml:"columns"`

	// SortBy specifies the sort field: "breed", "name" or "age".
	SortBy string `toml:"sort_by"`

	// SortOrder specifies sort direction: "asc" or "desc".
	SortOrder string `toml:"sort_order"`

	// Filters contains the last applied filter selection.
	Filters Filter `toml:"filters"`

	// ViewMode specifies the display layout: "compact" or "detailed".
	ViewMode string `toml:"view_mode"`

	// ActiveTab is the lane shown on startup.
	ActiveTab Tab `toml:"active_tab"`
}

// DefaultSettings returns settings with all default values.
func DefaultSettings() *Settings {
	return &Settings{
		Columns:   append([]string(nil), DefaultColumns...),
		SortBy:    SortByBreed,
		SortOrder: SortOrderAsc,
		ViewMode:  ViewModeCompact,
		ActiveTab: DefaultTab(),
	}
}

// Load reads settings from the config directory.
// A missing or unparsable file yields default settings; values that parse
// but fail validation are an error.
func Load() (*Settings, error) {
	config.Load()
	settingsPath := getSettingsPath()

	data, err := os.ReadFile(settingsPath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	settings := DefaultSettings()
	if err := toml.Unmarshal(data, settings); err != nil {
		colors.Warning(fmt.Sprintf("Ignoring unreadable settings file %s: %v", settingsPath, err))
		return DefaultSettings(), nil
	}
	settings.ActiveTab = NormalizeTab(string(settings.ActiveTab))

	if err := Validate(settings); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// Save writes settings to the config directory.
// Creates the config directory if it doesn't exist.
func Save(settings *Settings) error {
	config.Load()

	if err := Validate(settings); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	settingsPath := getSettingsPath()
	if err := os.MkdirAll(filepath.Dir(settingsPath), FileModeDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(settingsPath, data, FileModeFile); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// Reset removes the settings file so the next Load returns defaults.
func Reset() (*Settings, error) {
	config.Load()
	if err := os.Remove(getSettingsPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to remove settings file: %w", err)
	}
	return DefaultSettings(), nil
}

// Path returns the settings file location.
func Path() string {
	return getSettingsPath()
}
