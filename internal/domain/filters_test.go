package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterStateWithBreedsNormalizes(t *testing.T) {
	f := DefaultFilterState().WithBreeds([]string{"Poodle", "Labrador", "Poodle", ""})

	assert.Equal(t, []string{"Labrador", "Poodle"}, f.Breeds)
}

func TestFilterStateCopiesAreIndependent(t *testing.T) {
	base := DefaultFilterState().
		WithBreeds([]string{"Boxer"}).
		WithAgeRange(IntPtr(1), IntPtr(5)).
		WithZipCodes([]string{"97209"})

	clone := base.Clone()
	clone.Breeds[0] = "Husky"
	*clone.AgeMin = 3
	clone.ZipCodes[0] = "00000"

	assert.Equal(t, []string{"Boxer"}, base.Breeds)
	assert.Equal(t, 1, *base.AgeMin)
	assert.Equal(t, []string{"97209"}, base.ZipCodes)
}

func TestFilterStateEqual(t *testing.T) {
	a := DefaultFilterState().WithBreeds([]string{"Poodle", "Boxer"})
	b := DefaultFilterState().WithBreeds([]string{"Boxer", "Poodle"})
	assert.True(t, a.Equal(b))

	c := b.WithSort(b.Sort.Toggled(SortFieldBreed))
	assert.False(t, a.Equal(c))

	d := a.WithAgeRange(IntPtr(2), nil)
	assert.False(t, a.Equal(d))
	assert.True(t, d.Equal(a.WithAgeRange(IntPtr(2), nil)))
}

func TestFilterStateNearMe(t *testing.T) {
	f := DefaultFilterState()
	assert.False(t, f.NearMe())
	assert.True(t, f.WithZipCodes([]string{"97209"}).NearMe())
	assert.False(t, f.WithZipCodes([]string{"97209"}).WithZipCodes(nil).NearMe())
}

func TestFilterStateValidate(t *testing.T) {
	tooMany := make([]string, MaxZipCodes+1)
	for i := range tooMany {
		tooMany[i] = "9720" + string(rune('0'+i%10))
	}

	tests := []struct {
		name    string
		filters FilterState
		wantErr bool
	}{
		{name: "default", filters: DefaultFilterState()},
		{name: "age range", filters: DefaultFilterState().WithAgeRange(IntPtr(1), IntPtr(3))},
		{name: "inverted age range", filters: DefaultFilterState().WithAgeRange(IntPtr(5), IntPtr(3)), wantErr: true},
		{name: "negative age", filters: DefaultFilterState().WithAgeRange(IntPtr(-1), nil), wantErr: true},
		{name: "too many zips", filters: DefaultFilterState().WithZipCodes(tooMany), wantErr: true},
		{name: "exactly max zips", filters: DefaultFilterState().WithZipCodes(tooMany[:MaxZipCodes])},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filters.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
