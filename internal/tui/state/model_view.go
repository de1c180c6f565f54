package state

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dogfinder/dogfinder/internal/domain"
	"github.com/dogfinder/dogfinder/internal/search"
	"github.com/dogfinder/dogfinder/internal/settings"
	"github.com/dogfinder/dogfinder/internal/tui/render"
)

func (m *Model) tableColumns() []table.Column {
	return render.TableColumns(m.columns, m.finder.Filters().Sort, m.width)
}

// refreshTable rebuilds rows from the catalog, or from the favorites on the
// favorites tab, narrowed by the quick filter.
func (m *Model) refreshTable() {
	snap := m.finder.Catalog()
	for _, d := range snap.Records {
		m.seen[d.ID] = d
	}

	var dogs []domain.Dog
	if m.activeTab == settings.TabFavorites {
		for _, id := range m.finder.Favorites() {
			if d, ok := m.seen[id]; ok {
				dogs = append(dogs, d)
			}
		}
	} else {
		dogs = snap.Records
	}
	m.rows = search.FilterDogs(m.searchProvider, dogs, strings.TrimSpace(m.filterInput.Value()))

	rows := make([]table.Row, len(m.rows))
	for i, d := range m.rows {
		rows[i] = render.Row(render.RowState{Dog: d, Columns: m.columns, Favorite: m.finder.IsFavorite(d.ID)})
	}
	// Rows must be cleared first: the table renders existing rows against
	// the new column count.
	m.table.SetRows(nil)
	m.table.SetColumns(m.tableColumns())
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}

	m.paginator.SetTotalPages(max(snap.PageCount, 1))
	m.paginator.Page = min(snap.PageIndex, m.paginator.TotalPages-1)
}

// View renders the TUI.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.screen == screenLogin {
		return m.loginView()
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")

	switch m.mode {
	case modeHelp:
		b.WriteString(render.Help())
	case modeBreeds:
		b.WriteString(render.Picker(render.PickerState{
			Input:    m.picker.input.View(),
			Items:    m.picker.visible,
			Selected: m.picker.selected,
			Cursor:   m.picker.cursor,
			Height:   m.tableHeight(),
			Width:    m.width,
			Loading:  m.pending[opBreeds] > 0,
		}))
	case modeAge:
		b.WriteString(render.Form(render.FormState{
			Title:  "Age range (years)",
			Labels: [2]string{"Min", "Max"},
			Inputs: m.age.views(),
			Hint:   "Leave a field empty for no bound.",
		}))
	default:
		b.WriteString(m.browseView())
	}

	b.WriteString("\n")
	if m.hasStatusMessage {
		b.WriteString(render.StatusLine(m.statusMessage, m.statusMessageType))
	}
	b.WriteString("\n")
	if m.mode == modeFilter {
		b.WriteString(m.filterInput.View())
		b.WriteString("\n")
	}
	b.WriteString(render.Footer(render.FooterState{
		Mode:        m.footerMode(),
		FilterQuery: m.filterInput.Value(),
		NearMe:      m.finder.NearMe(),
	}))
	return b.String()
}

func (m *Model) headerView() string {
	state := render.HeaderState{
		Tab:       m.activeTab,
		Favorites: len(m.finder.Favorites()),
		Width:     m.width,
	}
	if s := m.finder.Session(); s != nil {
		state.Name, state.Email = s.Name, s.Email
	}
	nearby := ""
	if n, ok := m.finder.Nearby(); ok {
		nearby = n.Label()
	}
	return render.Header(state) + "\n" + render.FilterSummary(m.finder.Filters(), nearby)
}

func (m *Model) browseView() string {
	var b strings.Builder
	if dog, ok := m.finder.Celebration(); ok {
		b.WriteString(render.Celebration(dog, m.finder.CelebrationRemaining(), m.width))
		b.WriteString("\n")
	}
	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.activeTab == settings.TabBrowse {
		snap := m.finder.Catalog()
		info := render.PageInfo(render.PageState{
			PageIndex:    snap.PageIndex,
			PageCount:    snap.PageCount,
			Materialized: snap.Materialized,
			Total:        snap.Total,
			HasMore:      snap.HasMore,
			Loading:      snap.IsFetching || snap.IsLoadingMore,
		})
		if m.busy() {
			info = m.spinner.View() + " " + info
		}
		b.WriteString(info)
		if snap.PageCount > 1 && snap.PageCount <= maxPaginatorDots {
			b.WriteString("  ")
			b.WriteString(m.paginator.View())
		}
	} else if len(m.rows) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("No favorites yet. Press f on a dog to add it."))
	}

	if m.viewMode == viewModeDetailed {
		if dog, ok := m.selectedDog(); ok {
			b.WriteString("\n")
			b.WriteString(render.Detail(dog, m.finder.IsFavorite(dog.ID)))
		}
	}
	return b.String()
}

func (m *Model) loginView() string {
	var b strings.Builder
	b.WriteString(render.Form(render.FormState{
		Title:  "Log in to find a dog",
		Labels: [2]string{"Name", "Email"},
		Inputs: m.login.views(),
		Busy:   m.pending[opLogin] > 0,
		Hint:   "Any name and email will do.",
	}))
	b.WriteString("\n\n")
	if m.hasStatusMessage {
		b.WriteString(render.StatusLine(m.statusMessage, m.statusMessageType))
	}
	b.WriteString("\n")
	b.WriteString(render.Footer(render.FooterState{Mode: render.ModeLogin}))
	return b.String()
}

func (m *Model) footerMode() render.Mode {
	switch m.mode {
	case modeBreeds:
		return render.ModeBreeds
	case modeAge:
		return render.ModeAge
	case modeFilter:
		return render.ModeFilter
	case modeHelp:
		return render.ModeHelp
	}
	if m.activeTab == settings.TabFavorites {
		return render.ModeFavorites
	}
	return render.ModeBrowse
}
