package state

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dogfinder/dogfinder/internal/domain"
	"github.com/dogfinder/dogfinder/internal/errors"
	"github.com/dogfinder/dogfinder/internal/logging"
	"github.com/dogfinder/dogfinder/internal/search"
	"github.com/dogfinder/dogfinder/internal/settings"
)

const (
	viewModeCompact       = settings.ViewModeCompact
	viewModeDetailed      = settings.ViewModeDetailed
	headerLines           = 2
	footerLines           = 3
	detailLines           = 7
	minTableHeight        = 3
	defaultViewportWidth  = 80
	defaultViewportHeight = 24
	errorClearDuration    = 5 * time.Second
	maxPaginatorDots      = 20
)

type screen int

const (
	screenLogin screen = iota
	screenBrowse
)

type inputMode int

const (
	modeNormal inputMode = iota
	modeBreeds
	modeAge
	modeFilter
	modeHelp
)

// Options configures a Model.
type Options struct {
	// Context bounds every network call the TUI starts.
	Context context.Context
	// Name and Email prefill the login form.
	Name  string
	Email string
	// AutoLogin submits the prefilled form on start.
	AutoLogin bool
	// Settings are the loaded preferences; nil means defaults.
	Settings *settings.Settings
	// SaveSettings persists preferences on quit; nil disables saving.
	SaveSettings func(*settings.Settings) error
	// Search matches the quick filter against the current page; nil means
	// case-insensitive word matching.
	Search search.Provider
}

// Model represents the TUI model for bubbletea.
type Model struct {
	finder Finder
	ctx    context.Context
	logger logging.Logger

	screen screen
	mode   inputMode
	width  int
	height int

	login       twoFieldForm
	age         twoFieldForm
	picker      breedPicker
	filterInput textinput.Model
	table       table.Model
	paginator   paginator.Model
	spinner     spinner.Model
	spinning    bool

	// Settings fields (non-UI state)
	columns        []string
	viewMode       string
	activeTab      settings.Tab
	initialFilters domain.FilterState
	settingsSvc    *settingsService

	searchProvider search.Provider
	breedProvider  search.Provider
	rows           []domain.Dog
	seen           map[string]domain.Dog
	pending        map[operation]int

	errorHandler      *errors.TUIHandler
	statusMessage     string
	statusMessageType errors.MessageType
	hasStatusMessage  bool
	statusSeq         uint64

	autoLogin bool
	quitting  bool

	// after schedules a delayed message; tests replace it.
	after func(time.Duration, tea.Msg) tea.Cmd
}

// NewModel creates a new TUI model around finder.
func NewModel(finder Finder, opts Options) *Model {
	if finder == nil {
		panic("state.NewModel: finder dependency cannot be nil")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	svc := newSettingsService(opts.Settings, opts.SaveSettings)
	prefs := svc.state()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	pg := paginator.New()
	pg.Type = paginator.Dots

	fi := textinput.New()
	fi.Placeholder = "Filter this page..."
	fi.Prompt = "/ "
	fi.CharLimit = 50

	breedProvider := search.NewTokenProvider(search.WithCaseInsensitive(true))
	searchProvider := opts.Search
	if searchProvider == nil {
		searchProvider = breedProvider
	}

	m := &Model{
		finder:         finder,
		ctx:            ctx,
		logger:         logging.With("component", "tui"),
		screen:         screenLogin,
		login:          newLoginForm(opts.Name, opts.Email),
		age:            newAgeForm(),
		picker:         newBreedPicker(breedProvider),
		filterInput:    fi,
		paginator:      pg,
		spinner:        sp,
		columns:        prefs.Columns,
		viewMode:       prefs.ViewMode,
		activeTab:      prefs.ActiveTab,
		initialFilters: prefs.Filters,
		settingsSvc:    svc,
		searchProvider: searchProvider,
		breedProvider:  breedProvider,
		seen:           make(map[string]domain.Dog),
		pending:        make(map[operation]int),
		width:          defaultViewportWidth,
		height:         defaultViewportHeight,
		autoLogin:      opts.AutoLogin,
		after:          delayed,
	}
	m.table = table.New(
		table.WithColumns(m.tableColumns()),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)
	m.table.SetStyles(tableStyles())

	m.errorHandler = errors.NewTUIHandler(func(msg errors.Message) {
		m.statusMessage = msg.Text
		m.statusMessageType = msg.Type
		m.hasStatusMessage = msg.Text != ""
		m.statusSeq++
	})

	if s := finder.Session(); s != nil {
		m.screen = screenBrowse
		m.login.blur()
	}
	return m
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("12")).
		Bold(false)
	return s
}

// Init initializes the TUI model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.screen == screenBrowse {
		cmds = append(cmds, m.startSearch())
	} else if m.autoLogin && m.login.filled() {
		cmds = append(cmds, m.submitLogin())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	case LoginDoneMsg:
		return m, m.handleLoginDone(msg)
	case LogoutDoneMsg:
		return m, m.handleLogoutDone(msg)
	case BreedsLoadedMsg:
		return m, m.handleBreedsLoaded(msg)
	case CatalogUpdatedMsg:
		return m, m.handleCatalogUpdated(msg)
	case MatchDoneMsg:
		return m, m.handleMatchDone(msg)
	case NearMeDoneMsg:
		return m, m.handleNearMeDone(msg)
	case celebrationExpiredMsg:
		m.finder.ExpireCelebration(msg.seq)
		return m, nil
	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.clearStatus()
		}
		return m, nil
	case saveSettingsSuccessMsg:
		m.logger.Debug("settings saved")
		return m, nil
	case saveSettingsFailedMsg:
		m.logger.Warn("settings save failed", "error", msg.err.Error())
		return m, m.notify(errors.MessageTypeError, "Failed to save settings: "+msg.err.Error())
	}

	if m.screen == screenLogin {
		return m, m.login.update(msg)
	}
	return m, nil
}

func (m *Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	if m.width <= 0 {
		m.width = defaultViewportWidth
	}
	if m.height <= 0 {
		m.height = defaultViewportHeight
	}
	m.table.SetWidth(m.width)
	m.table.SetHeight(m.tableHeight())
	m.filterInput.Width = max(m.width-4, 10)
	m.picker.input.Width = max(m.width-4, 10)
	m.refreshTable()
	return m, nil
}

func (m *Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	if !m.busy() {
		m.spinning = false
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m *Model) tableHeight() int {
	h := m.height - headerLines - footerLines
	if m.viewMode == viewModeDetailed {
		h -= detailLines
	}
	return max(h, minTableHeight)
}

// busy reports whether any network sequence is in flight.
func (m *Model) busy() bool {
	for _, n := range m.pending {
		if n > 0 {
			return true
		}
	}
	return false
}

// begin marks op in flight and starts the spinner if it was idle.
func (m *Model) begin(op operation) tea.Cmd {
	m.pending[op]++
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Model) end(op operation) {
	if m.pending[op] > 0 {
		m.pending[op]--
	}
}

// report shows err on the status line and schedules its removal. Stale
// responses are dropped.
func (m *Model) report(err error) tea.Cmd {
	if !errors.Report(m.errorHandler, err) {
		return nil
	}
	return m.after(errorClearDuration, clearStatusMsg{seq: m.statusSeq})
}

func (m *Model) notify(typ errors.MessageType, text string) tea.Cmd {
	switch typ {
	case errors.MessageTypeSuccess:
		m.errorHandler.Success(text)
	case errors.MessageTypeWarning:
		m.errorHandler.Warning(text)
	case errors.MessageTypeError:
		m.errorHandler.Error(text)
	default:
		m.errorHandler.Info(text)
	}
	return m.after(errorClearDuration, clearStatusMsg{seq: m.statusSeq})
}

func (m *Model) clearStatus() {
	m.statusMessage = ""
	m.statusMessageType = errors.MessageTypeError
	m.hasStatusMessage = false
}

// selectedDog returns the dog under the table cursor.
func (m *Model) selectedDog() (domain.Dog, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return domain.Dog{}, false
	}
	return m.rows[i], true
}
