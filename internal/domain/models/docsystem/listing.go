package docsystem

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ListingScope is the granularity of a listing request.
type ListingScope string

const (
	ScopeTopLevel ListingScope = "top_level"
	ScopeCategory ListingScope = "category"
)

// ListingMode describes which shape a Listing was rendered in.
type ListingMode string

const (
	// ModeTopLevel lists top-level categories only, no documents
	ModeTopLevel ListingMode = "top_level"

	// ModeFlat lists the documents of a leaf category
	ModeFlat ListingMode = "flat"

	// ModeNested lists every descendant category with its documents
	ModeNested ListingMode = "nested"
)

// ListingContext describes what to list. Not persisted.
type ListingContext struct {
	Scope      ListingScope `json:"scope"`
	CategoryID string       `json:"category_id,omitempty"`
}

// TopLevelContext is the context of the main Docs index.
func TopLevelContext() ListingContext {
	return ListingContext{Scope: ScopeTopLevel}
}

// CategoryContext is the context of a single category archive.
func CategoryContext(categoryID string) ListingContext {
	return ListingContext{Scope: ScopeCategory, CategoryID: categoryID}
}

// Validate checks the scope is known and a category scope carries an id.
func (c ListingContext) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Scope, validation.Required, validation.In(ScopeTopLevel, ScopeCategory)),
		validation.Field(&c.CategoryID,
			validation.When(c.Scope == ScopeCategory, validation.Required),
			validation.When(c.Scope == ScopeTopLevel, validation.Empty),
		),
	)
}

// ListingSection is one category with its ordered documents.
type ListingSection struct {
	Category  Category   `json:"category"`
	Documents []Document `json:"documents"`
}

// Listing is the ordered structure handed to the rendering layer.
type Listing struct {
	Scope    ListingScope     `json:"scope"`
	Mode     ListingMode      `json:"mode"`
	Category *Category        `json:"category,omitempty"`  // Context category, category scope only
	TopLevel []Category       `json:"top_level,omitempty"` // Top-level scope only
	Sections []ListingSection `json:"sections,omitempty"`  // Category scope only
}

// DocumentCount returns the number of documents across all sections.
func (l *Listing) DocumentCount() int {
	n := 0
	for _, s := range l.Sections {
		n += len(s.Documents)
	}
	return n
}
