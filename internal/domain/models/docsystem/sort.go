package docsystem

import (
	"fmt"
	"strings"
)

// SortStrategy selects how documents inside a category are ordered.
type SortStrategy string

const (
	// SortByExplicitOrder orders by the per-document sort order, missing values last
	SortByExplicitOrder SortStrategy = "explicit-order"

	// SortByDate orders by publish date in the configured direction
	SortByDate SortStrategy = "date"

	// SortByTitle orders alphabetically by title
	SortByTitle SortStrategy = "title-alphabetical"
)

// DefaultSortStrategy is used when no strategy is configured.
const DefaultSortStrategy = SortByExplicitOrder

// SortDirection is the direction applied to date ordering.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// ParseSortStrategy maps a configuration value onto a SortStrategy.
// Empty input yields the default strategy. The legacy "title - alphabetical"
// spelling is accepted.
func ParseSortStrategy(value string) (SortStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(SortByExplicitOrder), "meta_value_num":
		return SortByExplicitOrder, nil
	case string(SortByDate):
		return SortByDate, nil
	case string(SortByTitle), "title - alphabetical", "title":
		return SortByTitle, nil
	default:
		return "", fmt.Errorf("unknown sort strategy: %q (supported: date, title-alphabetical, explicit-order)", value)
	}
}

// ParseSortDirection maps a configuration value onto a SortDirection.
// Empty input yields ascending.
func ParseSortDirection(value string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(SortAscending):
		return SortAscending, nil
	case string(SortDescending):
		return SortDescending, nil
	default:
		return "", fmt.Errorf("unknown sort direction: %q (supported: asc, desc)", value)
	}
}
