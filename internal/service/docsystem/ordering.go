package docsystem

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	models "organizeddocs/internal/domain/models/docsystem"
)

// documentComparator orders two documents; negative when a sorts first.
type documentComparator func(a, b models.Document) int

// documentComparators maps each strategy to its ordering. Ties always fall
// back to the document id so results are reproducible.
var documentComparators = map[models.SortStrategy]func(models.SortDirection) documentComparator{
	models.SortByExplicitOrder: func(models.SortDirection) documentComparator {
		return func(a, b models.Document) int {
			return cmp.Or(
				cmp.Compare(sortKey(a.SortOrder), sortKey(b.SortOrder)),
				cmp.Compare(a.ID, b.ID),
			)
		}
	},
	models.SortByTitle: func(models.SortDirection) documentComparator {
		return func(a, b models.Document) int {
			return cmp.Or(
				strings.Compare(a.Title, b.Title),
				cmp.Compare(a.ID, b.ID),
			)
		}
	},
	models.SortByDate: func(direction models.SortDirection) documentComparator {
		return func(a, b models.Document) int {
			c := a.PublishedAt.Compare(b.PublishedAt)
			if direction == models.SortDescending {
				c = -c
			}
			return cmp.Or(c, cmp.Compare(a.ID, b.ID))
		}
	},
}

// comparatorFor resolves the comparator for a strategy.
func comparatorFor(strategy models.SortStrategy, direction models.SortDirection) (documentComparator, error) {
	build, ok := documentComparators[strategy]
	if !ok {
		return nil, fmt.Errorf("no ordering for sort strategy %q", strategy)
	}
	return build(direction), nil
}

// sortKey places missing sort orders after every explicit value.
func sortKey(order *int) int {
	if order == nil {
		return math.MaxInt
	}
	return *order
}

// orderCategories sorts a copy by explicit sort order. Stable: equal keys,
// including all-missing, keep their input order.
func orderCategories(categories []models.Category) []models.Category {
	ordered := slices.Clone(categories)
	slices.SortStableFunc(ordered, func(a, b models.Category) int {
		return cmp.Compare(sortKey(a.SortOrder), sortKey(b.SortOrder))
	})
	return ordered
}

// sortDocuments sorts docs in place with compare.
func sortDocuments(docs []models.Document, compare documentComparator) {
	slices.SortStableFunc(docs, compare)
}

func categoryIDs(categories []models.Category) []string {
	ids := make([]string, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}
	return ids
}
