package state

import (
	"context"
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dogfinder/dogfinder/internal/api"
	"github.com/dogfinder/dogfinder/internal/app"
	"github.com/dogfinder/dogfinder/internal/domain"
	"github.com/dogfinder/dogfinder/internal/errors"
	"github.com/dogfinder/dogfinder/internal/search"
	"github.com/dogfinder/dogfinder/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	rex  = domain.Dog{ID: "d1", Name: "Rex", Age: 3, Breed: "Akita", ZipCode: "10001"}
	fido = domain.Dog{ID: "d2", Name: "Fido", Age: 5, Breed: "Beagle", ZipCode: "10002"}
)

func hydrateKnown(ids []string) []domain.Dog {
	known := map[string]domain.Dog{rex.ID: rex, fido.ID: fido}
	var out []domain.Dog
	for _, id := range ids {
		if d, ok := known[id]; ok {
			out = append(out, d)
		}
	}
	return out
}

// deferredMsg stands in for a timer so tests never sleep.
type deferredMsg struct {
	d   time.Duration
	msg tea.Msg
}

func newService() *api.MockService {
	svc := new(api.MockService)
	svc.On("Login", mock.Anything, mock.Anything).Return(nil)
	svc.On("Logout", mock.Anything).Return(nil)
	svc.On("Breeds", mock.Anything).Return([]string{"Akita", "Beagle", "Boxer"}, nil)
	svc.On("Dogs", mock.Anything, mock.Anything).Return(hydrateKnown, nil)
	svc.On("Search", mock.Anything, mock.Anything).Return(domain.SearchResultPage{ResultIDs: []string{"d1", "d2"}, Total: 2}, nil)
	return svc
}

func newTestModel(t *testing.T, svc *api.MockService, opts Options) (*Model, *app.App) {
	t.Helper()
	a := app.New(svc, app.Config{PageSize: 25})
	if opts.Name == "" && opts.Email == "" {
		opts.Name, opts.Email = "Ada", "ada@example.com"
	}
	m := NewModel(a, opts)
	m.after = func(d time.Duration, msg tea.Msg) tea.Cmd {
		return func() tea.Msg { return deferredMsg{d: d, msg: msg} }
	}
	return m, a
}

// run executes cmd and feeds every produced message back into the model
// until only delayed messages remain.
func run(t *testing.T, m *Model, cmd tea.Cmd) []deferredMsg {
	t.Helper()
	var delayed []deferredMsg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		switch msg := msg.(type) {
		case nil, spinner.TickMsg, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case deferredMsg:
			delayed = append(delayed, msg)
		default:
			// tea.Sequence yields an unexported slice of commands.
			if rv := reflect.ValueOf(msg); rv.Kind() == reflect.Slice {
				for i := 0; i < rv.Len(); i++ {
					if sub, ok := rv.Index(i).Interface().(tea.Cmd); ok {
						queue = append(queue, sub)
					}
				}
				continue
			}
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
	return delayed
}

func press(t *testing.T, m *Model, keys ...string) []deferredMsg {
	t.Helper()
	var delayed []deferredMsg
	for _, k := range keys {
		_, cmd := m.Update(keyMsg(k))
		delayed = append(delayed, run(t, m, cmd)...)
	}
	return delayed
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func loggedIn(t *testing.T, svc *api.MockService, opts Options) (*Model, *app.App) {
	t.Helper()
	m, a := newTestModel(t, svc, opts)
	press(t, m, "enter")
	require.Equal(t, screenBrowse, m.screen)
	return m, a
}

func TestNewModelPanicsOnNilFinder(t *testing.T) {
	assert.Panics(t, func() { NewModel(nil, Options{}) })
}

func TestLoginLoadsCatalogAndBreeds(t *testing.T) {
	svc := newService()
	m, a := loggedIn(t, svc, Options{})

	require.NotNil(t, a.Session())
	assert.Len(t, m.rows, 2)
	assert.True(t, m.picker.loaded)
	assert.Equal(t, errors.MessageTypeSuccess, m.statusMessageType)
	assert.Contains(t, m.statusMessage, "Welcome, Ada")
	assert.False(t, m.busy())
	svc.AssertCalled(t, "Login", mock.Anything, domain.Credentials{Name: "Ada", Email: "ada@example.com"})

	view := m.View()
	assert.Contains(t, view, "Rex")
	assert.Contains(t, view, "Fido")
	assert.Contains(t, view, "Page 1/1")
}

func TestEnterMovesToEmptyLoginField(t *testing.T) {
	svc := newService()
	m, _ := newTestModel(t, svc, Options{Name: "Ada"})
	assert.Equal(t, 1, m.login.focus)

	press(t, m, "enter")
	assert.Equal(t, screenLogin, m.screen)
	assert.Equal(t, 0, m.login.focus)
	svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestLoginFailureStaysOnLoginScreen(t *testing.T) {
	svc := new(api.MockService)
	svc.On("Login", mock.Anything, mock.Anything).Return(&api.StatusError{Method: "POST", Path: "/auth/login", StatusCode: 500})
	m, _ := newTestModel(t, svc, Options{})

	delayed := press(t, m, "enter")
	assert.Equal(t, screenLogin, m.screen)
	assert.True(t, m.hasStatusMessage)
	assert.Equal(t, errors.MessageTypeError, m.statusMessageType)
	require.NotEmpty(t, delayed)
	assert.Equal(t, errorClearDuration, delayed[0].d)
}

func TestAutoLoginOnInit(t *testing.T) {
	svc := newService()
	m, _ := newTestModel(t, svc, Options{AutoLogin: true})

	cmds := m.Init()
	require.NotNil(t, cmds)
	batch, ok := cmds().(tea.BatchMsg)
	require.True(t, ok)
	// Skip the cursor blink and run the login.
	run(t, m, batch[1])
	assert.Equal(t, screenBrowse, m.screen)
}

func TestSortKeyFlipsDirection(t *testing.T) {
	svc := newService()
	m, a := loggedIn(t, svc, Options{})
	require.Equal(t, domain.DefaultSort(), a.Filters().Sort)

	press(t, m, "b")
	assert.Equal(t, domain.SortDesc, a.Filters().Sort.Direction)

	press(t, m, "n")
	assert.Equal(t, domain.Sort{Field: domain.SortFieldName, Direction: domain.SortAsc}, a.Filters().Sort)
	assert.Contains(t, m.View(), "Sort: name")
}

func TestFavoriteToggleAndFavoritesTab(t *testing.T) {
	svc := newService()
	m, a := loggedIn(t, svc, Options{})

	press(t, m, "f")
	assert.True(t, a.IsFavorite("d1"))
	assert.Contains(t, m.statusMessage, "Added Rex")

	press(t, m, "tab")
	assert.Equal(t, settings.TabFavorites, m.activeTab)
	require.Len(t, m.rows, 1)
	assert.Equal(t, "d1", m.rows[0].ID)

	press(t, m, "f")
	assert.False(t, a.IsFavorite("d1"))
	assert.Empty(t, m.rows)
	assert.Contains(t, m.View(), "No favorites yet")
}

func TestMatchShowsCelebrationUntilExpiry(t *testing.T) {
	svc := newService()
	svc.On("Match", mock.Anything, []string{"d2"}).Return("d2", nil)
	m, a := loggedIn(t, svc, Options{})

	press(t, m, "down", "f")
	require.True(t, a.IsFavorite("d2"))

	delayed := press(t, m, "m")
	dog, ok := a.Celebration()
	require.True(t, ok)
	assert.Equal(t, "Fido", dog.Name)
	assert.Contains(t, m.View(), "It's a match!")

	var expiry tea.Msg
	for _, d := range delayed {
		if _, ok := d.msg.(celebrationExpiredMsg); ok {
			expiry = d.msg
		}
	}
	require.NotNil(t, expiry)
	m.Update(expiry)
	_, ok = a.Celebration()
	assert.False(t, ok)
}

func TestEscDismissesCelebration(t *testing.T) {
	svc := newService()
	svc.On("Match", mock.Anything, mock.Anything).Return("d1", nil)
	m, a := loggedIn(t, svc, Options{})

	press(t, m, "f", "m")
	_, ok := a.Celebration()
	require.True(t, ok)

	press(t, m, "esc")
	_, ok = a.Celebration()
	assert.False(t, ok)
}

func TestMatchWithoutFavoritesReportsError(t *testing.T) {
	svc := newService()
	m, _ := loggedIn(t, svc, Options{})

	press(t, m, "m")
	assert.Equal(t, errors.MessageTypeError, m.statusMessageType)
	svc.AssertNotCalled(t, "Match", mock.Anything, mock.Anything)
}

func TestQuickFilterNarrowsRows(t *testing.T) {
	svc := newService()
	m, _ := loggedIn(t, svc, Options{})

	press(t, m, "/", "b", "e", "a")
	assert.Equal(t, modeFilter, m.mode)
	require.Len(t, m.rows, 1)
	assert.Equal(t, "Fido", m.rows[0].Name)

	press(t, m, "esc")
	assert.Equal(t, modeNormal, m.mode)
	assert.Len(t, m.rows, 2)
}

func TestQuickFilterUsesConfiguredProvider(t *testing.T) {
	provider := new(search.MockProvider)
	provider.On("Match", mock.Anything, mock.Anything).Return(func(d domain.Dog, q string) bool {
		return q == "" || (q == "x" && d.Name == "Rex")
	})
	m, _ := loggedIn(t, newService(), Options{Search: provider})

	press(t, m, "/", "x")
	require.Len(t, m.rows, 1)
	assert.Equal(t, "Rex", m.rows[0].Name)
	provider.AssertCalled(t, "Match", mock.Anything, "x")
}

func TestAgeFormRejectsInvertedRange(t *testing.T) {
	svc := newService()
	m, a := loggedIn(t, svc, Options{})
	searches := len(svc.Calls)

	press(t, m, "A", "9", "tab", "2", "enter")
	assert.Equal(t, modeAge, m.mode)
	assert.Equal(t, errors.MessageTypeError, m.statusMessageType)
	assert.Contains(t, m.statusMessage, "Invalid age range")
	assert.Nil(t, a.Filters().AgeMin)
	assert.Len(t, svc.Calls, searches)

	press(t, m, "esc")
	assert.Equal(t, modeNormal, m.mode)
}

func TestAgeFormAppliesRange(t *testing.T) {
	svc := newService()
	m, a := loggedIn(t, svc, Options{})

	press(t, m, "A", "2", "tab", "6", "enter")
	assert.Equal(t, modeNormal, m.mode)
	f := a.Filters()
	require.NotNil(t, f.AgeMin)
	require.NotNil(t, f.AgeMax)
	assert.Equal(t, 2, *f.AgeMin)
	assert.Equal(t, 6, *f.AgeMax)
}

func TestBreedPickerAppliesSelection(t *testing.T) {
	svc := newService()
	m, a := loggedIn(t, svc, Options{})

	press(t, m, "B")
	require.Equal(t, modeBreeds, m.mode)
	assert.Contains(t, m.View(), "Select breeds")

	press(t, m, "b", "e", "a")
	require.Equal(t, []string{"Beagle"}, m.picker.visible)
	press(t, m, "tab", "enter")

	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, []string{"Beagle"}, a.Filters().Breeds)
}

func TestBreedPickerEscKeepsFilters(t *testing.T) {
	svc := newService()
	m, a := loggedIn(t, svc, Options{})

	press(t, m, "B", "tab", "esc")
	assert.Equal(t, modeNormal, m.mode)
	assert.Empty(t, a.Filters().Breeds)
}

func TestCatalogErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus bool
		wantType   errors.MessageType
		wantScreen screen
		wantEnded  bool
	}{
		{
			name:       "stale response is dropped",
			err:        fmt.Errorf("search: %w", domain.ErrStaleResponse),
			wantScreen: screenBrowse,
		},
		{
			name:       "page unavailable is informational",
			err:        domain.ErrPageUnavailable,
			wantStatus: true,
			wantType:   errors.MessageTypeInfo,
			wantScreen: screenBrowse,
		},
		{
			name:       "unauthorized returns to login",
			err:        domain.NewFailure(domain.CatalogFetchFailure, "search", &api.StatusError{StatusCode: 401}),
			wantStatus: true,
			wantType:   errors.MessageTypeWarning,
			wantScreen: screenLogin,
			wantEnded:  true,
		},
		{
			name:       "other failures are errors",
			err:        domain.NewFailure(domain.CatalogFetchFailure, "search", stderrors.New("boom")),
			wantStatus: true,
			wantType:   errors.MessageTypeError,
			wantScreen: screenBrowse,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, a := loggedIn(t, newService(), Options{})
			a.ToggleFavorite("d1")
			m.clearStatus()

			m.Update(CatalogUpdatedMsg{Action: "page", Err: tt.err})
			assert.Equal(t, tt.wantStatus, m.hasStatusMessage)
			if tt.wantStatus {
				assert.Equal(t, tt.wantType, m.statusMessageType)
			}
			assert.Equal(t, tt.wantScreen, m.screen)
			if tt.wantEnded {
				assert.Nil(t, a.Session())
				assert.Empty(t, a.Favorites())
			} else {
				assert.NotNil(t, a.Session())
				assert.Equal(t, []string{"d1"}, a.Favorites())
			}
		})
	}
}

func TestClearStatusIgnoresOlderMessages(t *testing.T) {
	m, _ := newTestModel(t, newService(), Options{})

	m.notify(errors.MessageTypeInfo, "first")
	old := m.statusSeq
	m.notify(errors.MessageTypeInfo, "second")

	m.Update(clearStatusMsg{seq: old})
	assert.Equal(t, "second", m.statusMessage)

	m.Update(clearStatusMsg{seq: m.statusSeq})
	assert.False(t, m.hasStatusMessage)
}

func TestLogoutReturnsToLogin(t *testing.T) {
	svc := newService()
	m, a := loggedIn(t, svc, Options{})
	press(t, m, "f")

	press(t, m, "L")
	assert.Equal(t, screenLogin, m.screen)
	assert.Nil(t, a.Session())
	assert.Empty(t, a.Favorites())
	assert.Empty(t, m.rows)
	assert.Contains(t, m.View(), "Log in")
}

func TestQuitSavesChangedSettings(t *testing.T) {
	var saved *settings.Settings
	save := func(s *settings.Settings) error {
		saved = s
		return nil
	}
	m, _ := loggedIn(t, newService(), Options{SaveSettings: save})

	press(t, m, "v", "b", "q")
	require.NotNil(t, saved)
	assert.True(t, m.quitting)
	assert.Equal(t, settings.ViewModeDetailed, saved.ViewMode)
	assert.Equal(t, settings.SortOrderDesc, saved.SortOrder)
	assert.Empty(t, m.View())
}

func TestQuitWithoutChangesSkipsSave(t *testing.T) {
	calls := 0
	save := func(*settings.Settings) error {
		calls++
		return nil
	}
	m, _ := newTestModel(t, newService(), Options{SaveSettings: save})

	press(t, m, "ctrl+c")
	assert.Zero(t, calls)
	assert.True(t, m.quitting)
}

func TestQuitBeforeLoginKeepsSavedFilters(t *testing.T) {
	loaded := settings.DefaultSettings()
	loaded.Filters.Breeds = []string{"Akita"}
	loaded.ViewMode = settings.ViewModeDetailed

	calls := 0
	m, _ := newTestModel(t, newService(), Options{
		Settings:     loaded,
		SaveSettings: func(*settings.Settings) error { calls++; return nil },
	})
	press(t, m, "ctrl+c")
	assert.Zero(t, calls)
}

func TestSavedFiltersApplyAfterLogin(t *testing.T) {
	loaded := settings.DefaultSettings()
	loaded.Filters.Breeds = []string{"Akita"}
	loaded.SortBy = settings.SortByAge

	m, a := loggedIn(t, newService(), Options{Settings: loaded})
	assert.Equal(t, []string{"Akita"}, a.Filters().Breeds)
	assert.Equal(t, domain.SortFieldAge, a.Filters().Sort.Field)
	assert.Equal(t, screenBrowse, m.screen)
}

func TestWindowResize(t *testing.T) {
	m, _ := loggedIn(t, newService(), Options{})

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40-headerLines-footerLines, m.table.Height())

	press(t, m, "v")
	assert.Equal(t, 40-headerLines-footerLines-detailLines, m.table.Height())
	assert.Contains(t, m.View(), "ID: d1")
}

func TestHelpModeClosesOnAnyKey(t *testing.T) {
	m, _ := loggedIn(t, newService(), Options{})

	press(t, m, "?")
	assert.Equal(t, modeHelp, m.mode)
	assert.Contains(t, m.View(), "Keys")

	press(t, m, "x")
	assert.Equal(t, modeNormal, m.mode)
}

func TestSessionSkipsLoginScreen(t *testing.T) {
	svc := newService()
	a := app.New(svc, app.Config{})
	_, err := a.Login(context.Background(), "Ada", "ada@example.com")
	require.NoError(t, err)

	m := NewModel(a, Options{})
	assert.Equal(t, screenBrowse, m.screen)
	assert.False(t, strings.Contains(m.View(), "Log in"))
}
