// Package render turns TUI state into strings. It holds no state of its own.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dogfinder/dogfinder/internal/colors"
	"github.com/dogfinder/dogfinder/internal/domain"
	"github.com/dogfinder/dogfinder/internal/errors"
	"github.com/dogfinder/dogfinder/internal/settings"
)

const (
	favoriteMark   = "★"
	sortAscSymbol  = "▲"
	sortDescSymbol = "▼"
	// cellPadding is the horizontal padding bubbles/table adds to each cell.
	cellPadding     = 2
	favoriteWidth   = 2
	idWidth         = 20
	ageWidth        = 7
	zipWidth        = 6
	minNameWidth    = 10
	minBreedWidth   = 14
	defaultWidth    = 80
	maxBreedSummary = 3
)

// HeaderState defines the inputs needed to render the header.
type HeaderState struct {
	Name      string
	Email     string
	Tab       settings.Tab
	Favorites int
	Width     int
}

// RowState defines the inputs needed to render a catalog row.
type RowState struct {
	Dog      domain.Dog
	Columns  []string
	Favorite bool
}

// PageState defines the inputs needed to render the pagination line.
type PageState struct {
	PageIndex    int
	PageCount    int
	Materialized int
	Total        int
	HasMore      bool
	Loading      bool
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ansiColorNumber(colors.Magenta)))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTab  = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))
)

// Header renders the title bar with the session and the active tab.
func Header(state HeaderState) string {
	title := titleStyle.Render("dogfinder")
	user := ""
	if state.Email != "" {
		user = mutedStyle.Render(fmt.Sprintf("%s <%s>", state.Name, state.Email))
	}

	browse := "Browse"
	favorites := fmt.Sprintf("Favorites (%d)", state.Favorites)
	if state.Tab == settings.TabFavorites {
		favorites = activeTab.Render(favorites)
		browse = mutedStyle.Render(browse)
	} else {
		browse = activeTab.Render(browse)
		favorites = mutedStyle.Render(favorites)
	}

	left := title + "  " + browse + "  " + favorites
	width := state.Width
	if width <= 0 {
		width = defaultWidth
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(user)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + user
}

// FilterSummary renders the active filters on one line. nearby is the label
// of the resolved location, empty when near-me is off.
func FilterSummary(f domain.FilterState, nearby string) string {
	parts := []string{"Breeds: " + breedSummary(f.Breeds)}

	switch {
	case f.AgeMin != nil && f.AgeMax != nil:
		parts = append(parts, fmt.Sprintf("Age: %d-%d", *f.AgeMin, *f.AgeMax))
	case f.AgeMin != nil:
		parts = append(parts, fmt.Sprintf("Age: %d+", *f.AgeMin))
	case f.AgeMax != nil:
		parts = append(parts, fmt.Sprintf("Age: <=%d", *f.AgeMax))
	default:
		parts = append(parts, "Age: any")
	}

	parts = append(parts, fmt.Sprintf("Sort: %s %s", f.Sort.Field, directionSymbol(f.Sort.Direction)))

	if f.NearMe() {
		label := nearby
		if label == "" {
			label = fmt.Sprintf("%d zip codes", len(f.ZipCodes))
		}
		parts = append(parts, "Near: "+label)
	}
	return mutedStyle.Render(strings.Join(parts, "  |  "))
}

func breedSummary(breeds []string) string {
	switch {
	case len(breeds) == 0:
		return "all"
	case len(breeds) <= maxBreedSummary:
		return strings.Join(breeds, ", ")
	default:
		return fmt.Sprintf("%s +%d", strings.Join(breeds[:maxBreedSummary], ", "), len(breeds)-maxBreedSummary)
	}
}

// SortIndicator returns the direction arrow when field is the active sort.
func SortIndicator(s domain.Sort, field domain.SortField) string {
	if s.Field != field {
		return ""
	}
	return directionSymbol(s.Direction)
}

func directionSymbol(d domain.SortDirection) string {
	if d == domain.SortDesc {
		return sortDescSymbol
	}
	return sortAscSymbol
}

// TableColumns sizes the catalog columns to width. Name and breed share
// whatever the fixed-width columns leave.
func TableColumns(columns []string, sort domain.Sort, width int) []table.Column {
	if width <= 0 {
		width = defaultWidth
	}
	avail := width - cellPadding*len(columns)
	flex := 0
	for _, c := range columns {
		switch c {
		case settings.ColumnName, settings.ColumnBreed:
			flex++
		default:
			avail -= fixedWidth(c)
		}
	}
	share := 0
	if flex > 0 {
		share = avail / flex
	}

	out := make([]table.Column, 0, len(columns))
	for _, c := range columns {
		col := table.Column{Title: columnTitle(c, sort)}
		switch c {
		case settings.ColumnName:
			col.Width = max(share, minNameWidth)
		case settings.ColumnBreed:
			col.Width = max(share, minBreedWidth)
		default:
			col.Width = fixedWidth(c)
		}
		out = append(out, col)
	}
	return out
}

func fixedWidth(column string) int {
	switch column {
	case settings.ColumnFavorite:
		return favoriteWidth
	case settings.ColumnID:
		return idWidth
	case settings.ColumnAge:
		return ageWidth
	case settings.ColumnZip:
		return zipWidth
	default:
		return 0
	}
}

func columnTitle(column string, sort domain.Sort) string {
	switch column {
	case settings.ColumnFavorite:
		return favoriteMark
	case settings.ColumnID:
		return "ID"
	case settings.ColumnName:
		return strings.TrimSpace("Name " + SortIndicator(sort, domain.SortFieldName))
	case settings.ColumnBreed:
		return strings.TrimSpace("Breed " + SortIndicator(sort, domain.SortFieldBreed))
	case settings.ColumnAge:
		return strings.TrimSpace("Age " + SortIndicator(sort, domain.SortFieldAge))
	case settings.ColumnZip:
		return "Zip"
	default:
		return column
	}
}

// Row renders a dog as table cells in column order.
func Row(state RowState) table.Row {
	row := make(table.Row, 0, len(state.Columns))
	for _, c := range state.Columns {
		switch c {
		case settings.ColumnFavorite:
			if state.Favorite {
				row = append(row, favoriteMark)
			} else {
				row = append(row, "")
			}
		case settings.ColumnID:
			row = append(row, state.Dog.ID)
		case settings.ColumnName:
			row = append(row, state.Dog.Name)
		case settings.ColumnBreed:
			row = append(row, state.Dog.Breed)
		case settings.ColumnAge:
			row = append(row, state.Dog.AgeLabel())
		case settings.ColumnZip:
			row = append(row, state.Dog.ZipCode)
		default:
			row = append(row, "")
		}
	}
	return row
}

// PageInfo renders the pagination line.
func PageInfo(state PageState) string {
	if state.PageCount == 0 {
		if state.Loading {
			return mutedStyle.Render("Loading...")
		}
		return mutedStyle.Render("No dogs match these filters.")
	}
	more := ""
	if state.HasMore {
		more = "+"
	}
	line := fmt.Sprintf("Page %d/%d%s  |  %d loaded of %d", state.PageIndex+1, state.PageCount, more, state.Materialized, state.Total)
	if state.Loading {
		line += "  |  loading more..."
	}
	return mutedStyle.Render(line)
}

// Detail renders the selected dog for the detailed view mode.
func Detail(dog domain.Dog, favorite bool) string {
	if dog.ID == "" {
		return ""
	}
	star := ""
	if favorite {
		star = " " + favoriteMark
	}
	lines := []string{
		titleStyle.Render(dog.Name + star),
		fmt.Sprintf("%s, %s", dog.Breed, dog.AgeLabel()),
		"Zip: " + dog.ZipCode,
	}
	if dog.ImageURL != "" {
		lines = append(lines, mutedStyle.Render(dog.ImageURL))
	}
	lines = append(lines, mutedStyle.Render("ID: "+dog.ID))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241")).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// Celebration renders the match banner.
func Celebration(dog domain.Dog, remaining time.Duration, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	secs := int(remaining.Round(time.Second) / time.Second)
	body := fmt.Sprintf("It's a match! Meet %s, a %s (%s) in %s.", dog.Name, dog.Breed, dog.AgeLabel(), dog.ZipCode)
	hint := mutedStyle.Render(fmt.Sprintf("esc to close (%ds)", secs))
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color(ansiColorNumber(colors.Green))).
		Bold(true).
		Align(lipgloss.Center).
		Width(max(width-4, 20)).
		Render(body + "\n" + hint)
}

// StatusLine renders a status message styled by type.
func StatusLine(text string, typ errors.MessageType) string {
	if text == "" {
		return ""
	}
	color := colors.Blue
	prefix := "•"
	switch typ {
	case errors.MessageTypeError:
		color, prefix = colors.Red, "✗"
	case errors.MessageTypeWarning:
		color, prefix = colors.Yellow, "!"
	case errors.MessageTypeSuccess:
		color, prefix = colors.Green, "✓"
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ansiColorNumber(color))).
		Render(prefix + " " + text)
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
// Example: "\033[0;34m" -> "34"
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
