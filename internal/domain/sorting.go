package domain

import (
	"fmt"
	"strings"
)

// SortField is a record field the search endpoint can order by.
type SortField string

const (
	SortFieldBreed SortField = "breed"
	SortFieldName  SortField = "name"
	SortFieldAge   SortField = "age"
)

// IsValid checks if the sort field is supported by the service.
func (f SortField) IsValid() bool {
	switch f {
	case SortFieldBreed, SortFieldName, SortFieldAge:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sort field.
func (f SortField) String() string {
	return string(f)
}

// SortDirection specifies the sort direction.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// IsValid checks if the sort direction is valid.
func (d SortDirection) IsValid() bool {
	return d == SortAsc || d == SortDesc
}

// Toggle returns the opposite direction.
func (d SortDirection) Toggle() SortDirection {
	if d == SortDesc {
		return SortAsc
	}
	return SortDesc
}

// String returns the string representation of the sort direction.
func (d SortDirection) String() string {
	return string(d)
}

// Sort pairs a field with a direction.
type Sort struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSort orders by breed ascending, the service default.
func DefaultSort() Sort {
	return Sort{Field: SortFieldBreed, Direction: SortAsc}
}

// String formats the sort as the service expects: "<field>:<asc|desc>".
func (s Sort) String() string {
	return s.Field.String() + ":" + s.Direction.String()
}

// Toggled returns the sort after a user toggles field: the same field flips
// direction, a different field starts ascending.
func (s Sort) Toggled(field SortField) Sort {
	if s.Field == field {
		return Sort{Field: field, Direction: s.Direction.Toggle()}
	}
	return Sort{Field: field, Direction: SortAsc}
}

// ParseSort parses "<field>:<direction>". The direction defaults to asc when omitted.
func ParseSort(raw string) (Sort, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return DefaultSort(), nil
	}
	field, direction, found := strings.Cut(raw, ":")
	s := Sort{Field: SortField(field), Direction: SortAsc}
	if found {
		s.Direction = SortDirection(direction)
	}
	if !s.Field.IsValid() {
		return Sort{}, fmt.Errorf("invalid sort field: %q (expected breed, name or age)", field)
	}
	if !s.Direction.IsValid() {
		return Sort{}, fmt.Errorf("invalid sort direction: %q (expected asc or desc)", direction)
	}
	return s, nil
}
