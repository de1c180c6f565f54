package main

import (
	"context"
	"fmt"

	"github.com/dogfinder/dogfinder/cmd"
	"github.com/dogfinder/dogfinder/internal/colors"
	"github.com/dogfinder/dogfinder/internal/domain"
	"github.com/dogfinder/dogfinder/internal/format"
	"github.com/dogfinder/dogfinder/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

type historyClient interface {
	List(ctx context.Context, limit int) ([]domain.MatchRecord, error)
	Prune(ctx context.Context, daysThreshold int, dryRun bool) (int, error)
}

// NewHistoryCmd creates the history command with explicit dependencies.
func NewHistoryCmd(open func() (historyClient, error)) *cobra.Command {
	if open == nil {
		panic("NewHistoryCmd: client dependency cannot be nil")
	}

	var limit int
	var formatFlag string

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List past matches",
		Long: `List past matches, newest first.

Matches are recorded in the state directory unless DOGFINDER_HISTORY_ENABLED=false.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("limit must be a positive integer")
			}
			formatterType, err := format.ParseFormatterType(formatFlag)
			if err != nil {
				return err
			}
			client, err := open()
			if err != nil {
				return err
			}
			records, err := client.List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list history: %w", err)
			}
			if len(records) == 0 {
				colors.LogInfo("No matches yet.")
				return nil
			}
			return format.NewFormatter(formatterType).FormatHistory(records, cmd.OutOrStdout())
		},
	}

	historyCmd.Flags().IntVar(&limit, "limit", sqlite.DefaultListLimit, "Maximum number of matches to list")
	historyCmd.Flags().StringVar(&formatFlag, "format", "table", "Output format: table, simple, json")

	historyCmd.AddCommand(newPruneCmd(open))
	return historyCmd
}

// newPruneCmd creates the history prune subcommand.
func newPruneCmd(open func() (historyClient, error)) *cobra.Command {
	var daysFlag int
	var dryRunFlag bool

	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove old matches from the history",
		Long: `Remove matches older than the given number of days.

With --days 0 every recorded match is removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if daysFlag < 0 {
				return fmt.Errorf("days must be zero or a positive integer")
			}
			client, err := open()
			if err != nil {
				return err
			}
			n, err := client.Prune(cmd.Context(), daysFlag, dryRunFlag)
			if err != nil {
				return fmt.Errorf("prune failed: %w", err)
			}
			if dryRunFlag {
				cmd.Printf("Would remove %d matches\n", n)
				return nil
			}
			cmd.Printf("Removed %d matches\n", n)
			return nil
		},
	}

	pruneCmd.Flags().IntVar(&daysFlag, "days", 30, "Remove matches older than N days")
	pruneCmd.Flags().BoolVar(&dryRunFlag, "dryrun", false, "Show what would be removed without removing it")

	return pruneCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewHistoryCmd(func() (historyClient, error) { return appDeps.History() }))
}
