package query

import (
	"fmt"
	"testing"

	"github.com/dogfinder/dogfinder/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaults(t *testing.T) {
	desc := Build(domain.DefaultFilterState(), 0)

	assert.Empty(t, desc.Breeds)
	assert.Nil(t, desc.AgeMin)
	assert.Nil(t, desc.AgeMax)
	assert.Equal(t, DefaultFetchSize, desc.Size)
	assert.Equal(t, "breed:asc", desc.Sort)
	assert.Equal(t, "size=100&sort=breed%3Aasc", desc.Values().Encode())
}

func TestBuildBreedOrderDoesNotMatter(t *testing.T) {
	a := Build(domain.DefaultFilterState().WithBreeds([]string{"Pug", "Akita", "Beagle"}), 0)
	b := Build(domain.DefaultFilterState().WithBreeds([]string{"Beagle", "Pug", "Akita"}), 0)

	assert.Equal(t, a, b)
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, []string{"Akita", "Beagle", "Pug"}, a.Breeds)
}

func TestBuildUnsortedFilterBreeds(t *testing.T) {
	filters := domain.FilterState{Breeds: []string{"Pug", "Akita", "Pug"}, Sort: domain.DefaultSort()}
	desc := Build(filters, 0)
	assert.Equal(t, []string{"Akita", "Pug"}, desc.Breeds)
}

func TestValuesRepeatedParameters(t *testing.T) {
	filters := domain.DefaultFilterState().
		WithBreeds([]string{"Pug", "Akita"}).
		WithZipCodes([]string{"10001", "10002"}).
		WithAgeRange(domain.IntPtr(2), domain.IntPtr(8)).
		WithSort(domain.Sort{Field: domain.SortFieldAge, Direction: domain.SortDesc})

	v := Build(filters, 25).Values()

	assert.Equal(t, []string{"Akita", "Pug"}, v["breeds"])
	assert.Equal(t, []string{"10001", "10002"}, v["zipCodes"])
	assert.Equal(t, "2", v.Get("ageMin"))
	assert.Equal(t, "8", v.Get("ageMax"))
	assert.Equal(t, "25", v.Get("from"))
	assert.Equal(t, "age:desc", v.Get("sort"))
}

func TestValuesZeroAgeBoundIsSent(t *testing.T) {
	filters := domain.DefaultFilterState().WithAgeRange(domain.IntPtr(0), nil)
	v := Build(filters, 0).Values()
	assert.Equal(t, "0", v.Get("ageMin"))
	assert.False(t, v.Has("ageMax"))
}

func TestBuildInvalidSortFallsBack(t *testing.T) {
	filters := domain.FilterState{Sort: domain.Sort{Field: "color", Direction: "up"}}
	assert.Equal(t, "breed:asc", Build(filters, 0).Sort)

	filters = domain.FilterState{Sort: domain.Sort{Field: domain.SortFieldName}}
	assert.Equal(t, "name:asc", Build(filters, 0).Sort)
}

func TestBuildNegativeOffset(t *testing.T) {
	assert.Equal(t, 0, Build(domain.DefaultFilterState(), -5).From)
}

func TestTruncateZipCodes(t *testing.T) {
	zips := make([]string, 30)
	for i := range zips {
		zips[i] = fmt.Sprintf("%05d", i)
	}

	got := TruncateZipCodes(zips)
	require.Len(t, got, domain.MaxZipCodes)
	assert.Equal(t, "00000", got[0])
	assert.Equal(t, "00019", got[19])
	assert.Nil(t, TruncateZipCodes(nil))
}

func TestWithSize(t *testing.T) {
	desc := Build(domain.DefaultFilterState(), 0)
	assert.Equal(t, 25, desc.WithSize(25).Size)
	assert.Equal(t, DefaultFetchSize, desc.WithSize(0).Size)
}
