package state

import (
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dogfinder/dogfinder/internal/search"
)

// twoFieldForm is a pair of text inputs with a single focus.
type twoFieldForm struct {
	inputs [2]textinput.Model
	focus  int
}

func newTwoFieldForm(placeholders [2]string, limit int) twoFieldForm {
	var f twoFieldForm
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = limit
		in.Prompt = "> "
		f.inputs[i] = in
	}
	f.focusField(0)
	return f
}

func newLoginForm(name, email string) twoFieldForm {
	f := newTwoFieldForm([2]string{"Your name", "you@example.com"}, 128)
	f.inputs[0].SetValue(name)
	f.inputs[1].SetValue(email)
	if name != "" && email == "" {
		f.focusField(1)
	}
	return f
}

func newAgeForm() twoFieldForm {
	return newTwoFieldForm([2]string{"any", "any"}, 2)
}

func (f *twoFieldForm) focusField(i int) {
	f.focus = i
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *twoFieldForm) next() {
	f.focusField((f.focus + 1) % len(f.inputs))
}

func (f *twoFieldForm) blur() {
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
}

func (f *twoFieldForm) values() (string, string) {
	return strings.TrimSpace(f.inputs[0].Value()), strings.TrimSpace(f.inputs[1].Value())
}

func (f *twoFieldForm) filled() bool {
	a, b := f.values()
	return a != "" && b != ""
}

func (f *twoFieldForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *twoFieldForm) views() [2]string {
	return [2]string{f.inputs[0].View(), f.inputs[1].View()}
}

// setInts fills the form from optional integers.
func (f *twoFieldForm) setInts(a, b *int) {
	for i, v := range []*int{a, b} {
		if v == nil {
			f.inputs[i].SetValue("")
		} else {
			f.inputs[i].SetValue(strconv.Itoa(*v))
		}
	}
}

// ints parses both fields; an empty field is nil.
func (f *twoFieldForm) ints() (*int, *int, error) {
	a, b := f.values()
	first, err := parseOptionalInt(a)
	if err != nil {
		return nil, nil, err
	}
	second, err := parseOptionalInt(b)
	if err != nil {
		return nil, nil, err
	}
	return first, second, nil
}

func parseOptionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// breedPicker is a filterable multi-select over the breed list.
type breedPicker struct {
	input    textinput.Model
	provider search.Provider
	all      []string
	visible  []string
	selected map[string]bool
	cursor   int
	loaded   bool
}

func newBreedPicker(provider search.Provider) breedPicker {
	in := textinput.New()
	in.Placeholder = "Type to filter breeds..."
	in.Prompt = "> "
	in.CharLimit = 50
	return breedPicker{
		input:    in,
		provider: provider,
		selected: make(map[string]bool),
	}
}

// open starts a selection from the current breeds.
func (p *breedPicker) open(current []string) {
	p.selected = make(map[string]bool, len(current))
	for _, b := range current {
		p.selected[b] = true
	}
	p.input.SetValue("")
	p.input.Focus()
	p.cursor = 0
	p.refilter()
}

func (p *breedPicker) close() {
	p.input.Blur()
}

func (p *breedPicker) setBreeds(breeds []string) {
	p.all = slices.Clone(breeds)
	p.loaded = true
	p.refilter()
}

func (p *breedPicker) refilter() {
	p.visible = search.FilterStrings(p.provider, p.all, strings.TrimSpace(p.input.Value()))
	if p.cursor >= len(p.visible) {
		p.cursor = max(len(p.visible)-1, 0)
	}
}

func (p *breedPicker) move(delta int) {
	if len(p.visible) == 0 {
		return
	}
	p.cursor = min(max(p.cursor+delta, 0), len(p.visible)-1)
}

func (p *breedPicker) toggle() {
	if p.cursor >= len(p.visible) {
		return
	}
	b := p.visible[p.cursor]
	if p.selected[b] {
		delete(p.selected, b)
	} else {
		p.selected[b] = true
	}
}

func (p *breedPicker) clear() {
	p.selected = make(map[string]bool)
}

func (p *breedPicker) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.refilter()
	return cmd
}

// selection returns the selected breeds sorted.
func (p *breedPicker) selection() []string {
	out := make([]string, 0, len(p.selected))
	for b, ok := range p.selected {
		if ok {
			out = append(out, b)
		}
	}
	slices.Sort(out)
	return out
}
