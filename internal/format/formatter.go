// Package format provides output formatting functionality for CLI commands.
// It includes formatters for dog listings and match history.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dogfinder/dogfinder/internal/domain"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// FormatDogs formats dog records and writes to the writer.
	FormatDogs(dogs []domain.Dog, writer io.Writer) error

	// FormatHistory formats match history records and writes to the writer.
	FormatHistory(records []domain.MatchRecord, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeSimple displays one record per line.
	FormatterTypeSimple FormatterType = "simple"

	// FormatterTypeTable displays records in a table with headers.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeJSON displays records as a JSON array.
	FormatterTypeJSON FormatterType = "json"
)

// ParseFormatterType validates a --format flag value.
func ParseFormatterType(s string) (FormatterType, error) {
	switch t := FormatterType(strings.ToLower(strings.TrimSpace(s))); t {
	case FormatterTypeSimple, FormatterTypeTable, FormatterTypeJSON:
		return t, nil
	case "":
		return FormatterTypeTable, nil
	default:
		return "", fmt.Errorf("invalid format %q (expected table, simple or json)", s)
	}
}

// NewFormatter creates a new formatter of the specified type.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeSimple:
		return NewSimpleFormatter()
	case FormatterTypeJSON:
		return NewJSONFormatter()
	default:
		return NewTableFormatter()
	}
}
