package docsystem

import (
	"slices"
	"time"
)

// Document is a Docs post. Membership in categories is many-to-many.
type Document struct {
	ID          string    `json:"id" db:"id" yaml:"id"`
	Title       string    `json:"title" db:"title" yaml:"title"`
	CategoryIDs []string  `json:"category_ids" yaml:"categories"` // Stored in the join table
	PublishedAt time.Time `json:"published_at" db:"published_at" yaml:"published_at"`
	ModifiedAt  time.Time `json:"modified_at" db:"modified_at" yaml:"modified_at,omitempty"`
	SortOrder   *int      `json:"sort_order,omitempty" db:"sort_order" yaml:"sort_order,omitempty"`
	Permalink   string    `json:"permalink" db:"permalink" yaml:"permalink"`
	Author      string    `json:"author,omitempty" db:"author" yaml:"author,omitempty"`
}

// HasCategory reports whether the document is tagged with categoryID.
func (d *Document) HasCategory(categoryID string) bool {
	return slices.Contains(d.CategoryIDs, categoryID)
}
