package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dogfinder/dogfinder/cmd"
	"github.com/dogfinder/dogfinder/internal/colors"
	"github.com/dogfinder/dogfinder/internal/search"
	"github.com/dogfinder/dogfinder/internal/settings"
	"github.com/dogfinder/dogfinder/internal/tui/state"
	"github.com/spf13/cobra"
)

const tuiCommandLong = `Interactive terminal UI for finding a dog.

USAGE:
    dogfinder tui [--name <name> --email <email>] [--regex | --exact] [--no-save]

When both a name and an email are known the login form is submitted on
start. Column layout, sort, filters and view mode are saved on quit.
The quick filter (/) matches words in any order; --exact matches the
typed phrase and --regex a regular expression.

KEY BINDINGS:
    j/k         Move up/down in the list
    h/l         Previous/next page
    b/n/a       Sort by breed/name/age (again to flip)
    B / A       Choose breeds / set age range
    z           Toggle near me
    f, space    Toggle favorite
    m           Request a match from favorites
    /           Filter the current page
    tab         Switch browse/favorites
    ?           Show all keys
    q           Quit TUI`

// programRunner runs a bubbletea model. Swapped in tests.
type programRunner func(tea.Model, ...tea.ProgramOption) error

func runProgram(m tea.Model, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(open func() (state.Finder, error), run programRunner) *cobra.Command {
	if open == nil || run == nil {
		panic("NewTUICmd: client dependency cannot be nil")
	}

	var noSave, regex, exact bool

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive terminal UI",
		Long:  tuiCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			finder, err := open()
			if err != nil {
				return err
			}

			loaded, err := settings.Load()
			if err != nil {
				colors.Warning(fmt.Sprintf("Using default settings: %v", err))
				loaded = settings.DefaultSettings()
			}

			name, email := cmd.Credentials()
			opts := state.Options{
				Context:      c.Context(),
				Name:         name,
				Email:        email,
				AutoLogin:    name != "" && email != "",
				Settings:     loaded,
				SaveSettings: settings.Save,
				Search:       search.New(search.ProviderName(regex, exact), search.WithCaseInsensitive(true)),
			}
			if noSave {
				opts.SaveSettings = nil
			}

			model := state.NewModel(finder, opts)
			resume := colors.SuspendTraces()
			defer resume()
			if err := run(model, tea.WithAltScreen(), tea.WithContext(c.Context())); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}

	tuiCmd.Flags().BoolVar(&noSave, "no-save", false, "Do not save settings on quit")
	tuiCmd.Flags().BoolVar(&regex, "regex", false, "Treat the quick filter as a regular expression")
	tuiCmd.Flags().BoolVar(&exact, "exact", false, "Match the quick filter as one phrase")
	tuiCmd.MarkFlagsMutuallyExclusive("regex", "exact")

	return tuiCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewTUICmd(func() (state.Finder, error) { return appDeps.App() }, runProgram))
}
