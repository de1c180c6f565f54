package settings

import "fmt"

// Validate checks that settings values are valid.
// Preconditions: settings must be non-nil.
func Validate(settings *Settings) error {
	if settings == nil {
		return fmt.Errorf("settings cannot be nil")
	}
	if err := validateColumns(settings.Columns); err != nil {
		return err
	}
	if err := validateSortBy(settings.SortBy); err != nil {
		return err
	}
	if err := validateSortOrder(settings.SortOrder); err != nil {
		return err
	}
	if err := validateViewMode(settings.ViewMode); err != nil {
		return err
	}
	if settings.ActiveTab != "" && !settings.ActiveTab.IsValid() {
		return fmt.Errorf("invalid activeTab value: %s", settings.ActiveTab)
	}
	return validateFilters(settings.Filters)
}

func validateColumns(columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	validColumns := map[string]bool{
		ColumnFavorite: true, ColumnID: true, ColumnName: true,
		ColumnBreed: true, ColumnAge: true, ColumnZip: true,
	}
	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		if !validColumns[col] {
			return fmt.Errorf("invalid column name: %s", col)
		}
		if seen[col] {
			return fmt.Errorf("duplicate column name: %s", col)
		}
		seen[col] = true
	}
	return nil
}

func validateSortBy(sortBy string) error {
	switch sortBy {
	case "", SortByBreed, SortByName, SortByAge:
		return nil
	default:
		return fmt.Errorf("invalid sortBy value: %s", sortBy)
	}
}

func validateSortOrder(order string) error {
	if order == "" {
		return nil
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return fmt.Errorf("invalid sortOrder value: %s", order)
	}
	return nil
}

func validateViewMode(mode string) error {
	switch mode {
	case "", ViewModeCompact, ViewModeDetailed:
		return nil
	default:
		return fmt.Errorf("invalid viewMode value: %s", mode)
	}
}

func validateFilters(filter Filter) error {
	for _, b := range []*int{filter.AgeMin, filter.AgeMax} {
		if b != nil && (*b < 0 || *b > MaxFilterAge) {
			return fmt.Errorf("invalid filter age: %d", *b)
		}
	}
	if filter.AgeMin != nil && filter.AgeMax != nil && *filter.AgeMin > *filter.AgeMax {
		return fmt.Errorf("invalid filter age range: %d > %d", *filter.AgeMin, *filter.AgeMax)
	}
	for _, b := range filter.Breeds {
		if b == "" {
			return fmt.Errorf("invalid filter breed: empty name")
		}
	}
	return nil
}
