// Package settings provides TUI user preferences persistence.
package settings

import "os"

// File permission constants
const (
	// FileModeDir is the permission for directories (rwxr-xr-x)
	FileModeDir os.FileMode = 0755
	// FileModeFile is the permission for data files (rw-r--r--)
	FileModeFile os.FileMode = 0644

	// FileExtTOML is the file extension for TOML files.
	// Used for user settings persistence.
	FileExtTOML = ".toml"
)

// Column names of the catalog table.
const (
	ColumnFavorite = "favorite"
	ColumnID       = "id"
	ColumnName     = "name"
	ColumnBreed    = "breed"
	ColumnAge      = "age"
	ColumnZip      = "zip"
)

// DefaultColumns is the default column order for TUI display.
var DefaultColumns = []string{
	ColumnFavorite,
	ColumnName,
	ColumnBreed,
	ColumnAge,
	ColumnZip,
}

// Sort direction constants.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// Sort by constants. These are the fields the search service can order by.
const (
	SortByBreed = "breed"
	SortByName  = "name"
	SortByAge   = "age"
)

// View mode constants.
const (
	ViewModeCompact  = "compact"
	ViewModeDetailed = "detailed"
)

// MaxFilterAge bounds persisted age filters.
const MaxFilterAge = 30
