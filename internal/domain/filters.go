package domain

import (
	"fmt"
	"slices"
	"sort"
)

// FilterState holds the user's catalog selections. Values are treated as
// immutable: the With* helpers return modified copies.
type FilterState struct {
	// Breeds is a set; empty means all breeds. Kept sorted and de-duplicated.
	Breeds []string
	// ZipCodes restricts results to nearby zip codes when set.
	ZipCodes []string
	// AgeMin and AgeMax bound the age when non-nil.
	AgeMin *int
	AgeMax *int
	Sort   Sort
}

// DefaultFilterState returns an unfiltered state sorted by breed ascending.
func DefaultFilterState() FilterState {
	return FilterState{Sort: DefaultSort()}
}

// Clone returns a deep copy.
func (f FilterState) Clone() FilterState {
	out := FilterState{
		Breeds:   slices.Clone(f.Breeds),
		ZipCodes: slices.Clone(f.ZipCodes),
		Sort:     f.Sort,
	}
	if f.AgeMin != nil {
		v := *f.AgeMin
		out.AgeMin = &v
	}
	if f.AgeMax != nil {
		v := *f.AgeMax
		out.AgeMax = &v
	}
	return out
}

// WithBreeds returns a copy selecting the given breeds.
func (f FilterState) WithBreeds(breeds []string) FilterState {
	out := f.Clone()
	out.Breeds = normalizeBreeds(breeds)
	return out
}

// WithZipCodes returns a copy restricted to zips; nil removes the constraint.
func (f FilterState) WithZipCodes(zips []string) FilterState {
	out := f.Clone()
	out.ZipCodes = slices.Clone(zips)
	return out
}

// WithAgeRange returns a copy with the given age bounds.
func (f FilterState) WithAgeRange(min, max *int) FilterState {
	out := f.Clone()
	out.AgeMin, out.AgeMax = nil, nil
	if min != nil {
		v := *min
		out.AgeMin = &v
	}
	if max != nil {
		v := *max
		out.AgeMax = &v
	}
	return out
}

// WithSort returns a copy with the given sort.
func (f FilterState) WithSort(s Sort) FilterState {
	out := f.Clone()
	out.Sort = s
	return out
}

// NearMe reports whether a zip code constraint is active.
func (f FilterState) NearMe() bool {
	return len(f.ZipCodes) > 0
}

// Validate checks the filter against the service's request constraints.
func (f FilterState) Validate() error {
	if len(f.ZipCodes) > MaxZipCodes {
		return fmt.Errorf("too many zip codes: %d (max %d)", len(f.ZipCodes), MaxZipCodes)
	}
	if f.AgeMin != nil && *f.AgeMin < 0 {
		return fmt.Errorf("minimum age cannot be negative: %d", *f.AgeMin)
	}
	if f.AgeMax != nil && *f.AgeMax < 0 {
		return fmt.Errorf("maximum age cannot be negative: %d", *f.AgeMax)
	}
	if f.AgeMin != nil && f.AgeMax != nil && *f.AgeMin > *f.AgeMax {
		return fmt.Errorf("minimum age %d exceeds maximum age %d", *f.AgeMin, *f.AgeMax)
	}
	if f.Sort.Field != "" && !f.Sort.Field.IsValid() {
		return fmt.Errorf("invalid sort field: %q", f.Sort.Field)
	}
	return nil
}

// Equal reports whether two filter states describe the same search context.
func (f FilterState) Equal(other FilterState) bool {
	return slices.Equal(normalizeBreeds(f.Breeds), normalizeBreeds(other.Breeds)) &&
		slices.Equal(f.ZipCodes, other.ZipCodes) &&
		intPtrEqual(f.AgeMin, other.AgeMin) &&
		intPtrEqual(f.AgeMax, other.AgeMax) &&
		f.Sort == other.Sort
}

func normalizeBreeds(breeds []string) []string {
	if len(breeds) == 0 {
		return nil
	}
	out := make([]string, 0, len(breeds))
	seen := make(map[string]bool, len(breeds))
	for _, b := range breeds {
		if b == "" || seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	sort.Strings(out)
	return out
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
