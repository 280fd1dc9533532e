package docsystem

import (
	"context"

	"organizeddocs/internal/domain/models/docsystem"
)

// ListingBuilder turns the category tree and its documents into ordered listings.
type ListingBuilder interface {
	// OrderCategories sorts by explicit sort order, missing values last, stable on ties
	OrderCategories(categories []docsystem.Category) []docsystem.Category

	// DocumentsFor fetches and orders the documents of a category
	DocumentsFor(ctx context.Context, category *docsystem.Category, strategy docsystem.SortStrategy, includeDescendants bool) ([]docsystem.Document, error)

	// BuildListing produces the listing for a context
	BuildListing(ctx context.Context, listingCtx docsystem.ListingContext) (*docsystem.Listing, error)

	// TableOfContents builds the listing of the top-level section a document belongs to
	TableOfContents(ctx context.Context, documentID string) (*docsystem.Listing, error)
}
