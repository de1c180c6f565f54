// Package state provides the BubbleTea model of the interactive finder.
package state

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dogfinder/dogfinder/internal/app"
	"github.com/dogfinder/dogfinder/internal/domain"
)

// operation names a network sequence the TUI can have in flight.
type operation int

const (
	opLogin operation = iota
	opLogout
	opBreeds
	opCatalog
	opMatch
	opNearMe
)

// LoginDoneMsg is sent when a login attempt finishes.
type LoginDoneMsg struct {
	Session *domain.Session
	Err     error
}

// LogoutDoneMsg is sent when logout finishes.
type LogoutDoneMsg struct {
	Err error
}

// BreedsLoadedMsg is sent when the breed list is available.
type BreedsLoadedMsg struct {
	Breeds []string
	Err    error
}

// CatalogUpdatedMsg is sent after a search, page move, sort or filter change.
type CatalogUpdatedMsg struct {
	Action string
	Err    error
}

// MatchDoneMsg is sent when a match request finishes.
type MatchDoneMsg struct {
	Result app.MatchResult
	Err    error
}

// NearMeDoneMsg is sent when near-me was toggled.
type NearMeDoneMsg struct {
	Err error
}

// celebrationExpiredMsg ends the celebration started with seq.
type celebrationExpiredMsg struct {
	seq uint64
}

// clearStatusMsg clears the status line if it still shows message seq.
type clearStatusMsg struct {
	seq uint64
}

// saveSettingsSuccessMsg is sent when settings are saved successfully.
type saveSettingsSuccessMsg struct{}

// saveSettingsFailedMsg is sent when settings save fails.
type saveSettingsFailedMsg struct {
	err error
}

// SaveSettingsCmd returns a command to save settings.
func SaveSettingsCmd(saveFn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := saveFn(); err != nil {
			return saveSettingsFailedMsg{err: err}
		}
		return saveSettingsSuccessMsg{}
	}
}

// delayed delivers msg after d.
func delayed(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}
