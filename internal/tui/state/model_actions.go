package state

import (
	stderrors "errors"
	"fmt"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dogfinder/dogfinder/internal/api"
	"github.com/dogfinder/dogfinder/internal/catalog"
	"github.com/dogfinder/dogfinder/internal/domain"
	"github.com/dogfinder/dogfinder/internal/errors"
	"github.com/dogfinder/dogfinder/internal/match"
	"github.com/dogfinder/dogfinder/internal/settings"
)

// submitLogin starts a login with the form values.
func (m *Model) submitLogin() tea.Cmd {
	if m.pending[opLogin] > 0 {
		return nil
	}
	name, email := m.login.values()
	finder, ctx := m.finder, m.ctx
	return tea.Batch(m.begin(opLogin), func() tea.Msg {
		s, err := finder.Login(ctx, name, email)
		return LoginDoneMsg{Session: s, Err: err}
	})
}

func (m *Model) handleLoginDone(msg LoginDoneMsg) tea.Cmd {
	m.end(opLogin)
	if msg.Err != nil {
		return m.report(msg.Err)
	}
	m.screen = screenBrowse
	m.mode = modeNormal
	m.login.blur()
	m.logger.Info("logged in")

	filters := m.initialFilters
	finder, ctx := m.finder, m.ctx
	return tea.Batch(
		m.notify(errors.MessageTypeSuccess, fmt.Sprintf("Welcome, %s!", msg.Session.Name)),
		m.runCatalog("search", func() error { return finder.ApplyFilters(ctx, filters) }),
		m.loadBreeds(),
	)
}

func (m *Model) logout() tea.Cmd {
	if m.pending[opLogout] > 0 {
		return nil
	}
	finder, ctx := m.finder, m.ctx
	return tea.Batch(m.begin(opLogout), func() tea.Msg {
		return LogoutDoneMsg{Err: finder.Logout(ctx)}
	})
}

func (m *Model) handleLogoutDone(msg LogoutDoneMsg) tea.Cmd {
	m.end(opLogout)
	m.returnToLogin()
	if msg.Err != nil {
		return m.report(msg.Err)
	}
	return m.notify(errors.MessageTypeInfo, "Logged out.")
}

// returnToLogin drops everything tied to the session.
func (m *Model) returnToLogin() {
	m.screen = screenLogin
	m.mode = modeNormal
	m.rows = nil
	m.seen = make(map[string]domain.Dog)
	m.picker = newBreedPicker(m.breedProvider)
	m.filterInput.SetValue("")
	m.filterInput.Blur()
	m.initialFilters = m.initialFilters.WithZipCodes(nil)
	m.login.focusField(0)
	m.refreshTable()
}

func (m *Model) loadBreeds() tea.Cmd {
	if m.picker.loaded || m.pending[opBreeds] > 0 {
		return nil
	}
	finder, ctx := m.finder, m.ctx
	return tea.Batch(m.begin(opBreeds), func() tea.Msg {
		breeds, err := finder.LoadBreeds(ctx)
		return BreedsLoadedMsg{Breeds: breeds, Err: err}
	})
}

func (m *Model) handleBreedsLoaded(msg BreedsLoadedMsg) tea.Cmd {
	m.end(opBreeds)
	if msg.Err != nil {
		return m.report(msg.Err)
	}
	m.picker.setBreeds(msg.Breeds)
	return nil
}

// runCatalog runs a catalog operation in the background.
func (m *Model) runCatalog(action string, fn func() error) tea.Cmd {
	return tea.Batch(m.begin(opCatalog), func() tea.Msg {
		return CatalogUpdatedMsg{Action: action, Err: fn()}
	})
}

func (m *Model) startSearch() tea.Cmd {
	finder, ctx := m.finder, m.ctx
	return m.runCatalog("search", func() error { return finder.Search(ctx) })
}

func (m *Model) toggleSort(field domain.SortField) tea.Cmd {
	finder, ctx := m.finder, m.ctx
	return m.runCatalog("sort", func() error { return finder.ToggleSort(ctx, field) })
}

func (m *Model) movePage(delta int) tea.Cmd {
	if m.activeTab != settings.TabBrowse {
		return nil
	}
	snap := m.finder.Catalog()
	if m.pending[opCatalog] > 0 || snap.IsFetching || snap.IsLoadingMore {
		return nil
	}
	if (delta < 0 && !snap.HasPrev()) || (delta > 0 && !snap.HasNext()) {
		return nil
	}
	finder, ctx := m.finder, m.ctx
	if delta < 0 {
		return m.runCatalog("page", func() error { return finder.PrevPage(ctx) })
	}
	return m.runCatalog("page", func() error { return finder.NextPage(ctx) })
}

func (m *Model) applyBreeds() tea.Cmd {
	breeds := m.picker.selection()
	m.picker.close()
	m.mode = modeNormal
	finder, ctx := m.finder, m.ctx
	return m.runCatalog("breeds", func() error { return finder.SetBreeds(ctx, breeds) })
}

func (m *Model) applyAgeRange() tea.Cmd {
	lo, hi, err := m.age.ints()
	if err != nil {
		return m.notify(errors.MessageTypeError, "Age must be a whole number of years.")
	}
	if err := m.finder.Filters().WithAgeRange(lo, hi).Validate(); err != nil {
		return m.notify(errors.MessageTypeError, "Invalid age range: "+err.Error())
	}
	m.age.blur()
	m.mode = modeNormal
	finder, ctx := m.finder, m.ctx
	return m.runCatalog("age", func() error { return finder.SetAgeRange(ctx, lo, hi) })
}

func (m *Model) handleCatalogUpdated(msg CatalogUpdatedMsg) tea.Cmd {
	m.end(opCatalog)
	defer m.refreshTable()

	switch {
	case msg.Err == nil:
		if msg.Action != "page" {
			m.table.GotoTop()
		}
		return nil
	case stderrors.Is(msg.Err, catalog.ErrBusy):
		return nil
	case stderrors.Is(msg.Err, domain.ErrPageUnavailable):
		return m.notify(errors.MessageTypeInfo, "No more dogs to show.")
	case isUnauthorized(msg.Err):
		m.finder.ClearSession()
		m.returnToLogin()
		return m.notify(errors.MessageTypeWarning, "Your session expired. Please log in again.")
	default:
		return m.report(msg.Err)
	}
}

func (m *Model) toggleFavorite() tea.Cmd {
	dog, ok := m.selectedDog()
	if !ok {
		return nil
	}
	m.seen[dog.ID] = dog
	if m.finder.ToggleFavorite(dog.ID) {
		m.refreshTable()
		return m.notify(errors.MessageTypeInfo, fmt.Sprintf("Added %s to favorites.", dog.Name))
	}
	m.refreshTable()
	return m.notify(errors.MessageTypeInfo, fmt.Sprintf("Removed %s from favorites.", dog.Name))
}

func (m *Model) requestMatch() tea.Cmd {
	if m.pending[opMatch] > 0 || m.finder.IsMatching() {
		return m.notify(errors.MessageTypeWarning, "A match request is already running.")
	}
	finder, ctx := m.finder, m.ctx
	return tea.Batch(m.begin(opMatch), func() tea.Msg {
		result, err := finder.RequestMatch(ctx)
		return MatchDoneMsg{Result: result, Err: err}
	})
}

func (m *Model) handleMatchDone(msg MatchDoneMsg) tea.Cmd {
	m.end(opMatch)
	if msg.Err != nil {
		return m.report(msg.Err)
	}
	dog := msg.Result.Dog
	m.seen[dog.ID] = dog
	m.logger.Info("match found", "dog_id", dog.ID)
	return tea.Batch(
		m.notify(errors.MessageTypeSuccess, fmt.Sprintf("You matched with %s!", dog.Name)),
		m.after(match.CelebrationDuration, celebrationExpiredMsg{seq: msg.Result.Celebration}),
	)
}

func (m *Model) toggleNearMe() tea.Cmd {
	if m.pending[opNearMe] > 0 {
		return nil
	}
	finder, ctx := m.finder, m.ctx
	return tea.Batch(m.begin(opNearMe), func() tea.Msg {
		return NearMeDoneMsg{Err: finder.ToggleNearMe(ctx)}
	})
}

func (m *Model) handleNearMeDone(msg NearMeDoneMsg) tea.Cmd {
	m.end(opNearMe)
	m.refreshTable()
	if msg.Err != nil {
		return m.report(msg.Err)
	}
	m.table.GotoTop()
	if nearby, ok := m.finder.Nearby(); ok && m.finder.NearMe() {
		return m.notify(errors.MessageTypeInfo, "Showing dogs near "+nearby.Label()+".")
	}
	return m.notify(errors.MessageTypeInfo, "Showing dogs anywhere.")
}

// quit saves changed preferences and exits.
func (m *Model) quit() tea.Cmd {
	m.quitting = true
	filters := m.initialFilters
	if m.finder.Session() != nil {
		filters = m.finder.Filters()
	}
	next := m.settingsSvc.snapshot(m.columns, filters, m.viewMode, m.activeTab)
	if save := m.settingsSvc.saveCmd(next); save != nil {
		return tea.Sequence(save, tea.Quit)
	}
	return tea.Quit
}

func isUnauthorized(err error) bool {
	var se *api.StatusError
	return stderrors.As(err, &se) && se.StatusCode == http.StatusUnauthorized
}
