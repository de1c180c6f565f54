package state

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dogfinder/dogfinder/internal/domain"
	"github.com/dogfinder/dogfinder/internal/settings"
)

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, m.quit()
	}

	// The celebration overlay swallows esc before any mode sees it.
	if key == "esc" {
		if _, ok := m.finder.Celebration(); ok {
			m.finder.DismissCelebration()
			return m, nil
		}
	}

	if m.screen == screenLogin {
		return m, m.handleLoginKey(msg)
	}

	switch m.mode {
	case modeHelp:
		m.mode = modeNormal
		return m, nil
	case modeBreeds:
		return m, m.handlePickerKey(msg)
	case modeAge:
		return m, m.handleAgeKey(msg)
	case modeFilter:
		return m, m.handleFilterKey(msg)
	}
	return m, m.handleBrowseKey(key)
}

func (m *Model) handleLoginKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "shift+tab", "down", "up":
		m.login.next()
		return nil
	case "enter":
		if m.login.filled() {
			return m.submitLogin()
		}
		m.login.next()
		return nil
	}
	return m.login.update(msg)
}

func (m *Model) handleBrowseKey(key string) tea.Cmd {
	switch key {
	case "q":
		return m.quit()
	case "?":
		m.mode = modeHelp
	case "tab":
		m.switchTab()
	case "v":
		m.toggleViewMode()
	case "j", "down":
		m.table.MoveDown(1)
	case "k", "up":
		m.table.MoveUp(1)
	case "g", "home":
		m.table.GotoTop()
	case "G", "end":
		m.table.GotoBottom()
	case "l", "right", "pgdown", "]":
		return m.movePage(1)
	case "h", "left", "pgup", "[":
		return m.movePage(-1)
	case "b":
		return m.toggleSort(domain.SortFieldBreed)
	case "n":
		return m.toggleSort(domain.SortFieldName)
	case "a":
		return m.toggleSort(domain.SortFieldAge)
	case "f", " ", "space":
		return m.toggleFavorite()
	case "m":
		return m.requestMatch()
	case "z":
		return m.toggleNearMe()
	case "B":
		m.mode = modeBreeds
		m.picker.open(m.finder.Filters().Breeds)
		return m.loadBreeds()
	case "A":
		f := m.finder.Filters()
		m.age.setInts(f.AgeMin, f.AgeMax)
		m.age.focusField(0)
		m.mode = modeAge
	case "/":
		m.mode = modeFilter
		m.filterInput.Focus()
	case "r":
		return m.startSearch()
	case "L":
		return m.logout()
	case "esc":
		if m.filterInput.Value() != "" {
			m.filterInput.SetValue("")
			m.refreshTable()
		}
	}
	return nil
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.picker.close()
		m.mode = modeNormal
		return nil
	case "enter":
		if slices.Equal(m.picker.selection(), m.finder.Filters().Breeds) {
			m.picker.close()
			m.mode = modeNormal
			return nil
		}
		return m.applyBreeds()
	case "up", "ctrl+p":
		m.picker.move(-1)
		return nil
	case "down", "ctrl+n":
		m.picker.move(1)
		return nil
	case "tab":
		m.picker.toggle()
		return nil
	case "ctrl+x":
		m.picker.clear()
		return nil
	}
	return m.picker.update(msg)
}

func (m *Model) handleAgeKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.age.blur()
		m.mode = modeNormal
		return nil
	case "tab", "shift+tab":
		m.age.next()
		return nil
	case "enter":
		return m.applyAgeRange()
	}
	return m.age.update(msg)
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.filterInput.SetValue("")
		m.filterInput.Blur()
		m.mode = modeNormal
		m.refreshTable()
		return nil
	case "enter":
		m.filterInput.Blur()
		m.mode = modeNormal
		return nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.refreshTable()
	m.table.GotoTop()
	return cmd
}

func (m *Model) switchTab() {
	if m.activeTab == settings.TabFavorites {
		m.activeTab = settings.TabBrowse
	} else {
		m.activeTab = settings.TabFavorites
	}
	m.refreshTable()
	m.table.GotoTop()
}

func (m *Model) toggleViewMode() {
	if m.viewMode == viewModeDetailed {
		m.viewMode = viewModeCompact
	} else {
		m.viewMode = viewModeDetailed
	}
	m.table.SetHeight(m.tableHeight())
}
