package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/dogfinder/dogfinder/cmd"
	"github.com/dogfinder/dogfinder/internal/catalog"
	"github.com/dogfinder/dogfinder/internal/colors"
	"github.com/dogfinder/dogfinder/internal/domain"
	"github.com/dogfinder/dogfinder/internal/format"
	"github.com/spf13/cobra"
)

type searchClient interface {
	sessionClient
	ApplyFilters(ctx context.Context, filters domain.FilterState) error
	ToggleNearMe(ctx context.Context) error
	NextPage(ctx context.Context) error
	Catalog() catalog.Snapshot
}

const searchCommandLong = `Search the shelter catalog and print one page of dogs.

USAGE:
    dogfinder search [OPTIONS]

OPTIONS:
    --breed <name>       Only show this breed (repeatable)
    --zip <code>         Only show dogs in this zip code (repeatable)
    --age-min <years>    Minimum age
    --age-max <years>    Maximum age
    --sort <field:dir>   Sort by breed, name or age, asc or desc (default: breed:asc)
    --page <n>           Page to print, starting at 1
    --near-me            Only show dogs near the configured location
    --format=<format>    Output format: table (default), simple, json
    -h, --help           Show this help

EXAMPLES:
    # Young beagles, oldest first
    dogfinder search --breed Beagle --age-max 3 --sort age:desc

    # Second page of dogs near you
    DOGFINDER_GEOHASH=dr5ru dogfinder search --near-me --page 2`

// searchOptions holds the parsed flags of the search command.
type searchOptions struct {
	Breeds []string
	Zips   []string
	AgeMin *int
	AgeMax *int
	Sort   string
	Page   int
	NearMe bool
	Format string
}

// filters builds the filter state the options describe.
func (o searchOptions) filters() (domain.FilterState, error) {
	sort, err := domain.ParseSort(o.Sort)
	if err != nil {
		return domain.FilterState{}, err
	}
	f := domain.DefaultFilterState().
		WithSort(sort).
		WithBreeds(o.Breeds).
		WithZipCodes(o.Zips).
		WithAgeRange(o.AgeMin, o.AgeMax)
	if err := f.Validate(); err != nil {
		return domain.FilterState{}, err
	}
	return f, nil
}

// NewSearchCmd creates the search command with explicit dependencies.
func NewSearchCmd(open func() (searchClient, error)) *cobra.Command {
	if open == nil {
		panic("NewSearchCmd: client dependency cannot be nil")
	}

	var opts searchOptions
	var ageMin, ageMax int

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Search the shelter catalog",
		Long:  searchCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("age-min") {
				opts.AgeMin = &ageMin
			}
			if cmd.Flags().Changed("age-max") {
				opts.AgeMax = &ageMax
			}
			if opts.Page < 1 {
				return fmt.Errorf("page must be at least 1")
			}
			filters, err := opts.filters()
			if err != nil {
				return err
			}
			formatterType, err := format.ParseFormatterType(opts.Format)
			if err != nil {
				return err
			}

			client, err := open()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return withSession(ctx, client, func() error {
				snap, err := runSearch(ctx, client, filters, opts)
				if err != nil {
					return err
				}
				if len(snap.Records) == 0 {
					colors.LogInfo("No dogs match these filters.")
					return nil
				}
				if err := format.NewFormatter(formatterType).FormatDogs(snap.Records, cmd.OutOrStdout()); err != nil {
					return err
				}
				colors.LogInfo(pageSummary(snap))
				return nil
			})
		},
	}

	searchCmd.Flags().StringSliceVar(&opts.Breeds, "breed", nil, "Only show this breed (repeatable)")
	searchCmd.Flags().StringSliceVar(&opts.Zips, "zip", nil, "Only show dogs in this zip code (repeatable)")
	searchCmd.Flags().IntVar(&ageMin, "age-min", 0, "Minimum age in years")
	searchCmd.Flags().IntVar(&ageMax, "age-max", 0, "Maximum age in years")
	searchCmd.Flags().StringVar(&opts.Sort, "sort", domain.DefaultSort().String(), "Sort as field:direction (breed, name, age; asc, desc)")
	searchCmd.Flags().IntVar(&opts.Page, "page", 1, "Page to print, starting at 1")
	searchCmd.Flags().BoolVar(&opts.NearMe, "near-me", false, "Only show dogs near the configured location")
	searchCmd.Flags().StringVar(&opts.Format, "format", "table", "Output format: table, simple, json")

	return searchCmd
}

// runSearch applies filters and walks forward to the requested page.
func runSearch(ctx context.Context, client searchClient, filters domain.FilterState, opts searchOptions) (catalog.Snapshot, error) {
	if err := client.ApplyFilters(ctx, filters); err != nil {
		return catalog.Snapshot{}, userError(err)
	}
	if opts.NearMe {
		if err := client.ToggleNearMe(ctx); err != nil {
			return catalog.Snapshot{}, userError(err)
		}
	}
	for page := client.Catalog().PageIndex; page < opts.Page-1; {
		if err := client.NextPage(ctx); err != nil {
			if errors.Is(err, domain.ErrPageUnavailable) {
				return catalog.Snapshot{}, fmt.Errorf("page %d is past the last page of results", opts.Page)
			}
			return catalog.Snapshot{}, userError(err)
		}
		next := client.Catalog().PageIndex
		if next == page {
			return catalog.Snapshot{}, fmt.Errorf("page %d is past the last page of results", opts.Page)
		}
		page = next
	}
	return client.Catalog(), nil
}

func pageSummary(s catalog.Snapshot) string {
	more := ""
	if s.HasMore {
		more = "+"
	}
	return fmt.Sprintf("Page %d/%d%s, %d of %d dogs loaded", s.PageIndex+1, s.PageCount, more, s.Materialized, s.Total)
}

func init() {
	cmd.RootCmd.AddCommand(NewSearchCmd(func() (searchClient, error) { return appDeps.App() }))
}
