package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/dogfinder/dogfinder/cmd"
	"github.com/dogfinder/dogfinder/internal/location"
	"github.com/spf13/cobra"
)

type nearbyClient interface {
	sessionClient
	ResolveNearby(ctx context.Context) (location.Nearby, error)
}

// NewNearbyCmd creates the nearby command with explicit dependencies.
func NewNearbyCmd(open func() (nearbyClient, error)) *cobra.Command {
	if open == nil {
		panic("NewNearbyCmd: client dependency cannot be nil")
	}

	nearbyCmd := &cobra.Command{
		Use:   "nearby",
		Short: "Show the location and zip codes used by --near-me",
		Long: `Resolve the configured location and print the zip codes searched by --near-me.

The location comes from DOGFINDER_LATITUDE and DOGFINDER_LONGITUDE, or from
DOGFINDER_GEOHASH.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := open()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return withSession(ctx, client, func() error {
				nearby, err := client.ResolveNearby(ctx)
				if err != nil {
					return userError(err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Location:  %s\n", nearby.Label())
				fmt.Fprintf(out, "Zip codes: %s\n", strings.Join(nearby.ZipCodes, ", "))
				return nil
			})
		},
	}

	return nearbyCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewNearbyCmd(func() (nearbyClient, error) { return appDeps.App() }))
}
