package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/dogfinder/dogfinder/cmd"
	"github.com/dogfinder/dogfinder/internal/search"
	"github.com/spf13/cobra"
)

type breedsClient interface {
	sessionClient
	LoadBreeds(ctx context.Context) ([]string, error)
}

// NewBreedsCmd creates the breeds command with explicit dependencies.
func NewBreedsCmd(open func() (breedsClient, error)) *cobra.Command {
	if open == nil {
		panic("NewBreedsCmd: client dependency cannot be nil")
	}

	var filter string
	var regex, exact bool

	breedsCmd := &cobra.Command{
		Use:   "breeds",
		Short: "List the breeds known to the shelter",
		Long: `List the breeds known to the shelter, one per line.

Use --filter to keep only breeds containing every word of the query.
With --exact the query must appear as written; with --regex it is a
regular expression. Matching ignores case.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(filter)
			providerName := search.ProviderName(regex, exact)
			if err := search.CheckQuery(providerName, query); err != nil {
				return err
			}

			client, err := open()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return withSession(ctx, client, func() error {
				breeds, err := client.LoadBreeds(ctx)
				if err != nil {
					return userError(err)
				}
				provider := search.New(providerName, search.WithCaseInsensitive(true))
				for _, b := range search.FilterStrings(provider, breeds, query) {
					fmt.Fprintln(cmd.OutOrStdout(), b)
				}
				return nil
			})
		},
	}

	breedsCmd.Flags().StringVar(&filter, "filter", "", "Only list breeds matching this query")
	breedsCmd.Flags().BoolVar(&regex, "regex", false, "Treat --filter as a regular expression")
	breedsCmd.Flags().BoolVar(&exact, "exact", false, "Match --filter as one phrase instead of separate words")
	breedsCmd.MarkFlagsMutuallyExclusive("regex", "exact")

	return breedsCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewBreedsCmd(func() (breedsClient, error) { return appDeps.App() }))
}
