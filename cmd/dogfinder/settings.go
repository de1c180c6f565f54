package main

import (
	"fmt"

	"github.com/dogfinder/dogfinder/cmd"
	"github.com/dogfinder/dogfinder/internal/colors"
	"github.com/dogfinder/dogfinder/internal/settings"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

type settingsClient interface {
	ResetSettings() (*settings.Settings, error)
	LoadSettings() (*settings.Settings, error)
	SettingsPath() string
}

// settingsFile is the settingsClient backed by the TUI settings file.
type settingsFile struct{}

func (settingsFile) ResetSettings() (*settings.Settings, error) { return settings.Reset() }
func (settingsFile) LoadSettings() (*settings.Settings, error)  { return settings.Load() }
func (settingsFile) SettingsPath() string                       { return settings.Path() }

const settingsCommandLong = `Manage TUI settings.

USAGE:
    dogfinder settings <subcommand>

SUBCOMMANDS:
    reset    Reset settings to defaults
    show     Display current settings

EXAMPLES:
    # Show current settings
    dogfinder settings show

    # Reset settings
    dogfinder settings reset`

// NewSettingsCmd creates the settings command with explicit dependencies.
func NewSettingsCmd(client settingsClient) *cobra.Command {
	if client == nil {
		panic("NewSettingsCmd: client dependency cannot be nil")
	}

	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage TUI settings",
		Long:  settingsCommandLong,
	}

	settingsCmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset TUI settings to defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := client.ResetSettings(); err != nil {
				return fmt.Errorf("failed to reset settings: %w", err)
			}
			colors.Success("Settings reset to defaults")
			return nil
		},
	})
	settingsCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Display current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := client.LoadSettings()
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}
			data, err := toml.Marshal(current)
			if err != nil {
				return fmt.Errorf("failed to marshal settings: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", client.SettingsPath(), data)
			return nil
		},
	})

	return settingsCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewSettingsCmd(settingsFile{}))
}
