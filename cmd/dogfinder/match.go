package main

import (
	"context"
	"fmt"

	"github.com/dogfinder/dogfinder/cmd"
	"github.com/dogfinder/dogfinder/internal/app"
	"github.com/dogfinder/dogfinder/internal/colors"
	"github.com/dogfinder/dogfinder/internal/domain"
	"github.com/dogfinder/dogfinder/internal/format"
	"github.com/spf13/cobra"
)

type matchClient interface {
	sessionClient
	RequestMatchFor(ctx context.Context, ids []string) (app.MatchResult, error)
}

// NewMatchCmd creates the match command with explicit dependencies.
func NewMatchCmd(open func() (matchClient, error)) *cobra.Command {
	if open == nil {
		panic("NewMatchCmd: client dependency cannot be nil")
	}

	var formatFlag string

	matchCmd := &cobra.Command{
		Use:   "match <dog-id>...",
		Short: "Let the shelter pick a match from your favorites",
		Long: `Submit favorite dog ids and print the dog the shelter matched you with.

Dog ids are printed by "dogfinder search --format=simple".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatterType, err := format.ParseFormatterType(formatFlag)
			if err != nil {
				return err
			}
			client, err := open()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return withSession(ctx, client, func() error {
				result, err := client.RequestMatchFor(ctx, args)
				if err != nil {
					return userError(err)
				}
				if err := format.NewFormatter(formatterType).FormatDogs([]domain.Dog{result.Dog}, cmd.OutOrStdout()); err != nil {
					return err
				}
				colors.LogInfo(fmt.Sprintf("It's a match! Meet %s.", result.Dog.Name))
				return nil
			})
		},
	}

	matchCmd.Flags().StringVar(&formatFlag, "format", "table", "Output format: table, simple, json")

	return matchCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewMatchCmd(func() (matchClient, error) { return appDeps.App() }))
}
