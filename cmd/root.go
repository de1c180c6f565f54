// Package cmd holds the root command shared by the dogfinder subcommands.
package cmd

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/dogfinder/dogfinder/internal/colors"
	"github.com/dogfinder/dogfinder/internal/config"
	"github.com/dogfinder/dogfinder/internal/logging"
	"github.com/dogfinder/dogfinder/internal/version"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Credentials given on the command line; empty values fall back to
// DOGFINDER_USER_NAME and DOGFINDER_USER_EMAIL.
var (
	userName  string
	userEmail string
)

// shutdownSignals cancel the command context. SIGKILL cannot be caught.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "dogfinder",
	Short: "Find a shelter dog to adopt from your terminal.",
	Long: `Find a shelter dog to adopt from your terminal.

Browse the shelter catalog by breed, age and location, collect favorites
and let the service pick your match.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load .env file if present (ignore errors)
		_ = godotenv.Load()
		config.Load()
		colors.SetDebug(config.GetBool("debug", false))
		if err := logging.InitGlobal(); err != nil {
			colors.Debug("file logging disabled:", err.Error())
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.ShutdownGlobal()
	},
}

func init() {
	// Hide the completion command
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.PersistentFlags().StringVar(&userName, "name", "", "Name used to log in (default: DOGFINDER_USER_NAME)")
	RootCmd.PersistentFlags().StringVar(&userEmail, "email", "", "Email used to log in (default: DOGFINDER_USER_EMAIL)")
}

// Credentials returns the login name and email from flags or configuration.
func Credentials() (name, email string) {
	name, email = userName, userEmail
	if name == "" {
		name = config.Get("user_name", "")
	}
	if email == "" {
		email = config.Get("user_email", "")
	}
	return name, email
}

// Execute runs the root command with args. It is called by main.main().
func Execute(ctx context.Context, args []string) error {
	RootCmd.SetArgs(args)
	return fang.Execute(
		ctx,
		RootCmd,
		fang.WithVersion(version.String()),
		fang.WithNotifySignal(shutdownSignals...),
	)
}
