package docsystem

// DocumentQuery selects the documents tagged with a set of categories.
type DocumentQuery struct {
	// CategoryIDs lists the categories to match (any of)
	CategoryIDs []string

	// IncludeDescendants also matches documents tagged with any descendant category
	IncludeDescendants bool

	// OrderBy and Direction are passed to the store as an ordering hint.
	// Callers re-sort with a deterministic comparator.
	OrderBy   SortStrategy
	Direction SortDirection
}
