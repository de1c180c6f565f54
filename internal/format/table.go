package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dogfinder/dogfinder/internal/domain"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool

	// HeaderStyle renders headers and the separator line.
	HeaderStyle lipgloss.Style
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		HeaderStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
	}
}

// TableColumn represents a column in a table of T.
type TableColumn[T any] struct {
	// Name is the column name displayed in the header.
	Name string

	// Width is the column width in characters.
	Width int

	// Alignment is the text alignment (left, right, center).
	Alignment string

	// Extractor extracts the raw value from a record.
	Extractor func(T) string
}

// Table writes records of T as aligned columns.
type Table[T any] struct {
	config  *TableConfig
	columns []TableColumn[T]
}

// NewTable creates a table with the given columns.
func NewTable[T any](config *TableConfig, columns ...TableColumn[T]) *Table[T] {
	if config == nil {
		config = DefaultTableConfig()
	}
	return &Table[T]{config: config, columns: columns}
}

// WithColumns adds custom columns to the table.
func (t *Table[T]) WithColumns(columns ...TableColumn[T]) *Table[T] {
	t.columns = append(t.columns, columns...)
	return t
}

// Write renders records. Nothing is written for an empty slice.
func (t *Table[T]) Write(records []T, writer io.Writer) error {
	if len(records) == 0 {
		return nil
	}
	if t.config.ShowHeaders {
		if err := t.writeLine(writer, true, func(col TableColumn[T]) string {
			return formatString(col.Name, col.Width, "left")
		}); err != nil {
			return err
		}
		if err := t.writeLine(writer, true, func(col TableColumn[T]) string {
			return makeSeparator(col.Width)
		}); err != nil {
			return err
		}
	}
	for _, r := range records {
		if err := t.writeLine(writer, false, func(col TableColumn[T]) string {
			return formatString(col.Extractor(r), col.Width, col.Alignment)
		}); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table[T]) writeLine(writer io.Writer, header bool, cell func(TableColumn[T]) string) error {
	cells := make([]string, len(t.columns))
	for i, col := range t.columns {
		cells[i] = cell(col)
	}
	line := strings.TrimRight(strings.Join(cells, "  "), " ")
	if header {
		line = t.config.HeaderStyle.Render(line)
	}
	_, err := fmt.Fprintln(writer, line)
	return err
}

// DogColumns returns the default columns of a dog listing.
func DogColumns() []TableColumn[domain.Dog] {
	return []TableColumn[domain.Dog]{
		{Name: "ID", Width: 20, Extractor: func(d domain.Dog) string { return d.ID }},
		{Name: "Name", Width: 16, Extractor: func(d domain.Dog) string { return d.Name }},
		{Name: "Breed", Width: 24, Extractor: func(d domain.Dog) string { return d.Breed }},
		{Name: "Age", Width: 7, Alignment: "right", Extractor: func(d domain.Dog) string { return d.AgeLabel() }},
		{Name: "Zip", Width: 5, Extractor: func(d domain.Dog) string { return d.ZipCode }},
	}
}

// HistoryColumns returns the default columns of a match history listing.
func HistoryColumns() []TableColumn[domain.MatchRecord] {
	return []TableColumn[domain.MatchRecord]{
		{Name: "Matched", Width: 16, Extractor: func(r domain.MatchRecord) string { return r.MatchedAt.Local().Format(historyTimeLayout) }},
		{Name: "Name", Width: 16, Extractor: func(r domain.MatchRecord) string { return r.DogName }},
		{Name: "Breed", Width: 24, Extractor: func(r domain.MatchRecord) string { return r.Breed }},
		{Name: "Zip", Width: 5, Extractor: func(r domain.MatchRecord) string { return r.ZipCode }},
		{Name: "Favs", Width: 4, Alignment: "right", Extractor: func(r domain.MatchRecord) string { return strconv.Itoa(r.FavoritesCount) }},
	}
}

// TableFormatter formats dogs and history as tables.
type TableFormatter struct {
	dogs    *Table[domain.Dog]
	history *Table[domain.MatchRecord]
}

// NewTableFormatter creates a new TableFormatter with default columns.
func NewTableFormatter() *TableFormatter {
	config := DefaultTableConfig()
	return &TableFormatter{
		dogs:    NewTable(config, DogColumns()...),
		history: NewTable(config, HistoryColumns()...),
	}
}

// FormatDogs formats dogs in table format.
func (f *TableFormatter) FormatDogs(dogs []domain.Dog, writer io.Writer) error {
	return f.dogs.Write(dogs, writer)
}

// FormatHistory formats match history in table format.
func (f *TableFormatter) FormatHistory(records []domain.MatchRecord, writer io.Writer) error {
	return f.history.Write(records, writer)
}

// Helper functions

// formatString formats a string with the specified width and alignment,
// truncating with "..." when it does not fit.
func formatString(s string, width int, alignment string) string {
	s = truncateString(s, width)
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}

	switch alignment {
	case "right":
		return strings.Repeat(" ", width-n) + s
	case "center":
		left := (width - n) / 2
		right := width - n - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default: // left
		return s + strings.Repeat(" ", width-n)
	}
}

// truncateString truncates a string to the specified width, adding "..." if truncated.
func truncateString(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width < 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// makeSeparator creates a separator line of the specified width.
func makeSeparator(width int) string {
	return strings.Repeat("-", width)
}
