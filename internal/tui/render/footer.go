package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Mode names the input context the footer documents.
type Mode int

const (
	ModeLogin Mode = iota
	ModeBrowse
	ModeFavorites
	ModeBreeds
	ModeAge
	ModeFilter
	ModeHelp
)

// FooterState defines the inputs needed to render footer help text.
type FooterState struct {
	Mode        Mode
	FilterQuery string
	NearMe      bool
}

// Footer renders the footer with help text.
func Footer(state FooterState) string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var help []string
	switch state.Mode {
	case ModeLogin:
		help = []string{"tab: next field", "enter: log in", "ctrl+c: quit"}
	case ModeBreeds:
		help = []string{"type: filter", "↑/↓: move", "tab: toggle", "ctrl+x: clear", "enter: apply", "esc: cancel"}
	case ModeAge:
		help = []string{"tab: next field", "enter: apply", "esc: cancel"}
	case ModeFilter:
		help = []string{"esc: clear", "enter: keep", "Filter: " + state.FilterQuery}
	case ModeHelp:
		help = []string{"any key: close"}
	case ModeFavorites:
		help = []string{"j/k: move", "f: unfavorite", "m: match", "tab: browse", "?: help", "q: quit"}
	default:
		near := "z: near me"
		if state.NearMe {
			near = "z: anywhere"
		}
		help = []string{"j/k: move", "h/l: page", "f: favorite", "b/n/a: sort", "B: breeds", "A: age", near, "m: match", "?: help", "q: quit"}
		if state.FilterQuery != "" {
			help = append(help, "Filter: "+state.FilterQuery)
		}
	}
	return helpStyle.Render(strings.Join(help, "  |  "))
}

// Help renders the full key reference.
func Help() string {
	rows := [][2]string{
		{"j/k, ↑/↓", "move selection"},
		{"h/l, ←/→, pgup/pgdn", "previous/next page"},
		{"f, space", "toggle favorite"},
		{"b / n / a", "sort by breed / name / age (again to flip)"},
		{"B", "choose breeds"},
		{"A", "set age range"},
		{"z", "toggle near me"},
		{"/", "filter the current page"},
		{"m", "request a match from favorites"},
		{"tab", "switch browse/favorites"},
		{"v", "toggle detailed view"},
		{"r", "reload"},
		{"L", "log out"},
		{"q, ctrl+c", "quit"},
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(lipgloss.NewStyle().Bold(true).Width(22).Render(r[0]))
		b.WriteString(r[1])
		b.WriteString("\n")
	}
	return b.String()
}
