package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dogfinder/dogfinder/internal/config"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSettingsTest(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("HOME", tmpDir)
	t.Setenv("DOGFINDER_CONFIG_PATH", "")
	config.Load()

	return filepath.Join(tmpDir, "dogfinder")
}

func intPtr(v int) *int { return &v }

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, DefaultColumns, s.Columns)
	assert.Equal(t, SortByBreed, s.SortBy)
	assert.Equal(t, SortOrderAsc, s.SortOrder)
	assert.Empty(t, s.Filters.Breeds)
	assert.Nil(t, s.Filters.AgeMin)
	assert.Nil(t, s.Filters.AgeMax)
	assert.Equal(t, ViewModeCompact, s.ViewMode)
	assert.Equal(t, TabBrowse, s.ActiveTab)

	// Mutating the result must not leak into the package default.
	s.Columns[0] = ColumnID
	assert.Equal(t, ColumnFavorite, DefaultColumns[0])
}

func TestLoadDefaultWhenFileDoesNotExist(t *testing.T) {
	setupSettingsTest(t)

	settings, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestLoadFromExistingFile(t *testing.T) {
	configDir := setupSettingsTest(t)
	require.NoError(t, os.MkdirAll(configDir, FileModeDir))

	content := `columns = ["name", "breed", "zip"]
sort_by = "age"
sort_order = "desc"
view_mode = "detailed"
active_tab = "favorites"

[filters]
breeds = ["Beagle", "Akita"]
age_min = 1
age_max = 4
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "tui.toml"), []byte(content), FileModeFile))

	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{ColumnName, ColumnBreed, ColumnZip}, settings.Columns)
	assert.Equal(t, SortByAge, settings.SortBy)
	assert.Equal(t, SortOrderDesc, settings.SortOrder)
	assert.Equal(t, []string{"Beagle", "Akita"}, settings.Filters.Breeds)
	assert.Equal(t, intPtr(1), settings.Filters.AgeMin)
	assert.Equal(t, intPtr(4), settings.Filters.AgeMax)
	assert.Equal(t, ViewModeDetailed, settings.ViewMode)
	assert.Equal(t, TabFavorites, settings.ActiveTab)
}

func TestLoadPartialSettings(t *testing.T) {
	configDir := setupSettingsTest(t)
	require.NoError(t, os.MkdirAll(configDir, FileModeDir))

	content := "sort_by = \"name\"\nactive_tab = \"nowhere\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "tui.toml"), []byte(content), FileModeFile))

	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SortByName, settings.SortBy)
	assert.Equal(t, DefaultColumns, settings.Columns)
	assert.Equal(t, SortOrderAsc, settings.SortOrder)
	assert.Equal(t, ViewModeCompact, settings.ViewMode)
	assert.Equal(t, TabBrowse, settings.ActiveTab)
}

func TestLoadCorruptedFileFallsBackToDefaults(t *testing.T) {
	configDir := setupSettingsTest(t)
	require.NoError(t, os.MkdirAll(configDir, FileModeDir))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "tui.toml"), []byte("not = = toml"), FileModeFile))

	settings, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestLoadInvalidColumn(t *testing.T) {
	configDir := setupSettingsTest(t)
	require.NoError(t, os.MkdirAll(configDir, FileModeDir))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "tui.toml"), []byte(`columns = ["name", "color"]`), FileModeFile))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid column name")
}

func TestSave(t *testing.T) {
	configDir := setupSettingsTest(t)

	settings := &Settings{
		Columns:   []string{ColumnName, ColumnAge},
		SortBy:    SortByAge,
		SortOrder: SortOrderDesc,
		Filters:   Filter{Breeds: []string{"Boxer"}, AgeMax: intPtr(3)},
		ViewMode:  ViewModeDetailed,
		ActiveTab: TabFavorites,
	}
	require.NoError(t, Save(settings))

	settingsPath := filepath.Join(configDir, "tui.toml")
	require.FileExists(t, settingsPath)

	data, err := os.ReadFile(settingsPath)
	require.NoError(t, err)

	var decoded Settings
	require.NoError(t, toml.Unmarshal(data, &decoded))
	assert.Equal(t, *settings, decoded)
	assert.NotContains(t, string(data), "age_min")
}

func TestSaveInvalidSettings(t *testing.T) {
	setupSettingsTest(t)

	err := Save(&Settings{Columns: []string{"color"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid settings")
}

func TestSaveOverwritesExistingFile(t *testing.T) {
	setupSettingsTest(t)

	require.NoError(t, Save(&Settings{
		Columns:   []string{ColumnID},
		SortBy:    SortByBreed,
		SortOrder: SortOrderAsc,
		ViewMode:  ViewModeCompact,
	}))
	require.NoError(t, Save(&Settings{
		Columns:   []string{ColumnID, ColumnName},
		SortBy:    SortByName,
		SortOrder: SortOrderDesc,
		ViewMode:  ViewModeDetailed,
	}))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{ColumnID, ColumnName}, loaded.Columns)
	assert.Equal(t, SortByName, loaded.SortBy)
	assert.Equal(t, SortOrderDesc, loaded.SortOrder)
	assert.Equal(t, ViewModeDetailed, loaded.ViewMode)
}

func TestValidateValidSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings *Settings
	}{
		{name: "default settings", settings: DefaultSettings()},
		{
			name: "custom columns",
			settings: &Settings{
				Columns:   []string{ColumnID, ColumnName, ColumnZip},
				SortBy:    SortByName,
				SortOrder: SortOrderDesc,
				ViewMode:  ViewModeDetailed,
			},
		},
		{
			name: "age bounds",
			settings: &Settings{
				Filters: Filter{AgeMin: intPtr(0), AgeMax: intPtr(MaxFilterAge)},
			},
		},
		{name: "empty values use defaults", settings: &Settings{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, Validate(tt.settings))
		})
	}
}

func TestValidateInvalidSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings *Settings
		wantErr  string
	}{
		{name: "nil", settings: nil, wantErr: "cannot be nil"},
		{name: "invalid column name", settings: &Settings{Columns: []string{"invalid"}}, wantErr: "invalid column name"},
		{name: "duplicate column", settings: &Settings{Columns: []string{ColumnName, ColumnName}}, wantErr: "duplicate column name"},
		{name: "invalid sortBy", settings: &Settings{SortBy: "zip"}, wantErr: "invalid sortBy value"},
		{name: "invalid sortOrder", settings: &Settings{SortOrder: "sideways"}, wantErr: "invalid sortOrder value"},
		{name: "invalid viewMode", settings: &Settings{ViewMode: "grid"}, wantErr: "invalid viewMode value"},
		{name: "invalid tab", settings: &Settings{ActiveTab: "inbox"}, wantErr: "invalid activeTab value"},
		{name: "negative age", settings: &Settings{Filters: Filter{AgeMin: intPtr(-1)}}, wantErr: "invalid filter age"},
		{name: "inverted ages", settings: &Settings{Filters: Filter{AgeMin: intPtr(5), AgeMax: intPtr(2)}}, wantErr: "invalid filter age range"},
		{name: "empty breed", settings: &Settings{Filters: Filter{Breeds: []string{""}}}, wantErr: "invalid filter breed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.settings)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetSettingsPath(t *testing.T) {
	configDir := setupSettingsTest(t)
	assert.Equal(t, filepath.Join(configDir, "tui.toml"), getSettingsPath())
}

func TestGetSettingsPathOverride(t *testing.T) {
	setupSettingsTest(t)
	override := filepath.Join(t.TempDir(), "custom.toml")
	t.Setenv("DOGFINDER_TUI_SETTINGS_PATH", override)
	config.Load()

	assert.Equal(t, override, getSettingsPath())
}

func TestResetRemovesSettingsFile(t *testing.T) {
	configDir := setupSettingsTest(t)

	s := DefaultSettings()
	s.ViewMode = ViewModeDetailed
	require.NoError(t, Save(s))
	require.FileExists(t, filepath.Join(configDir, "tui.toml"))

	reset, err := Reset()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), reset)
	assert.NoFileExists(t, filepath.Join(configDir, "tui.toml"))

	// A second reset has nothing to remove.
	_, err = Reset()
	assert.NoError(t, err)
}
