package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/dogfinder/dogfinder/internal/colors"
)

const (
	pickerIndentSize = 2
	pickerChecked    = "[x]"
	pickerUnchecked  = "[ ]"
	pickerCursor     = "›"
)

// PickerState defines the inputs needed to render the breed picker.
type PickerState struct {
	Input    string
	Items    []string
	Selected map[string]bool
	Cursor   int
	Height   int
	Width    int
	Loading  bool
}

// PickerStyles defines styles for picker rows.
type PickerStyles struct {
	Base     lipgloss.Style
	Selected lipgloss.Style
}

// FormState defines the inputs needed to render a two-field form.
type FormState struct {
	Title  string
	Labels [2]string
	Inputs [2]string
	Busy   bool
	Hint   string
}

// Picker renders a filterable multi-select list. Only the window of rows
// around the cursor that fits Height is shown.
func Picker(state PickerState) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Select breeds"))
	b.WriteString("\n")
	b.WriteString(state.Input)
	b.WriteString("\n\n")

	if state.Loading {
		b.WriteString(mutedStyle.Render("Loading breeds..."))
		return b.String()
	}
	if len(state.Items) == 0 {
		b.WriteString(mutedStyle.Render("No breeds match."))
		return b.String()
	}

	styles := defaultPickerStyles()
	start, end := pickerWindow(len(state.Items), state.Cursor, state.Height)
	for i := start; i < end; i++ {
		item := state.Items[i]
		mark := pickerUnchecked
		if state.Selected[item] {
			mark = pickerChecked
		}
		prefix := strings.Repeat(" ", pickerIndentSize)
		if i == state.Cursor {
			prefix = pickerCursor + " "
		}
		label := truncateRow(fmt.Sprintf("%s%s %s", prefix, mark, item), state.Width)
		if i == state.Cursor {
			b.WriteString(styles.Selected.Render(label))
		} else {
			b.WriteString(styles.Base.Render(label))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n%s", mutedStyle.Render(fmt.Sprintf("%d selected  |  %d shown", countSelected(state.Selected), len(state.Items))))
	return b.String()
}

func pickerWindow(n, cursor, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}

func countSelected(selected map[string]bool) int {
	n := 0
	for _, v := range selected {
		if v {
			n++
		}
	}
	return n
}

func defaultPickerStyles() PickerStyles {
	return PickerStyles{
		Base: lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ansiColorNumber(colors.Blue))),
	}
}

func truncateRow(value string, width int) string {
	if width <= 0 {
		return value
	}
	if utf8.RuneCountInString(value) <= width {
		return value
	}
	return string([]rune(value)[:width])
}

// Form renders a titled two-field form.
func Form(state FormState) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(state.Title))
	b.WriteString("\n\n")
	for i := range state.Labels {
		fmt.Fprintf(&b, "%-8s %s\n", state.Labels[i], state.Inputs[i])
	}
	if state.Busy {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Working..."))
	}
	if state.Hint != "" {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(state.Hint))
	}
	return b.String()
}
