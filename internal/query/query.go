// Package query builds search request descriptors from filter state.
package query

import (
	"net/url"
	"slices"
	"strconv"

	"github.com/dogfinder/dogfinder/internal/domain"
)

// DefaultFetchSize is the number of ids requested per search call. It
// matches the hydration limit so one page of ids hydrates in one call.
const DefaultFetchSize = domain.MaxHydrationIDs

// RequestDescriptor is the canonical, order-independent form of a search
// request. Two descriptors built from equal filter states are equal.
type RequestDescriptor struct {
	Breeds   []string
	ZipCodes []string
	AgeMin   *int
	AgeMax   *int
	Size     int
	From     int
	Sort     string
}

// Build derives the descriptor for filters starting at offset from.
// Breeds are emitted sorted so selection order never changes the request.
func Build(filters domain.FilterState, from int) RequestDescriptor {
	breeds := slices.Clone(filters.Breeds)
	slices.Sort(breeds)
	breeds = slices.Compact(breeds)

	sort := filters.Sort
	if !sort.Field.IsValid() {
		sort = domain.DefaultSort()
	}
	if !sort.Direction.IsValid() {
		sort.Direction = domain.SortAsc
	}

	desc := RequestDescriptor{
		Breeds:   breeds,
		ZipCodes: TruncateZipCodes(filters.ZipCodes),
		Size:     DefaultFetchSize,
		From:     max(from, 0),
		Sort:     sort.String(),
	}
	if filters.AgeMin != nil {
		desc.AgeMin = domain.IntPtr(*filters.AgeMin)
	}
	if filters.AgeMax != nil {
		desc.AgeMax = domain.IntPtr(*filters.AgeMax)
	}
	return desc
}

// WithSize returns a copy with the given page size.
func (d RequestDescriptor) WithSize(size int) RequestDescriptor {
	if size > 0 {
		d.Size = size
	}
	return d
}

// Values encodes the descriptor as query parameters. Breeds and zip codes
// are repeated parameters; unset bounds are omitted.
func (d RequestDescriptor) Values() url.Values {
	v := url.Values{}
	for _, b := range d.Breeds {
		v.Add("breeds", b)
	}
	for _, z := range d.ZipCodes {
		v.Add("zipCodes", z)
	}
	if d.AgeMin != nil {
		v.Set("ageMin", strconv.Itoa(*d.AgeMin))
	}
	if d.AgeMax != nil {
		v.Set("ageMax", strconv.Itoa(*d.AgeMax))
	}
	if d.Size > 0 {
		v.Set("size", strconv.Itoa(d.Size))
	}
	if d.From > 0 {
		v.Set("from", strconv.Itoa(d.From))
	}
	if d.Sort != "" {
		v.Set("sort", d.Sort)
	}
	return v
}

// Key returns a stable string identifying the search context.
func (d RequestDescriptor) Key() string {
	return d.Values().Encode()
}

// TruncateZipCodes caps zips at domain.MaxZipCodes, keeping order.
func TruncateZipCodes(zips []string) []string {
	if len(zips) == 0 {
		return nil
	}
	if len(zips) > domain.MaxZipCodes {
		zips = zips[:domain.MaxZipCodes]
	}
	return slices.Clone(zips)
}
