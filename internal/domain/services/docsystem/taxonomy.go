package docsystem

import (
	"context"

	"organizeddocs/internal/domain/models/docsystem"
)

// TaxonomyResolver answers structural questions about the category tree.
// Read-only over the category store.
type TaxonomyResolver interface {
	// TopLevelAncestorOf walks the parent chain up to the parentless category.
	// A top-level category resolves to itself.
	TopLevelAncestorOf(ctx context.Context, categoryID string) (*docsystem.Category, error)

	// ChildrenOf returns every descendant (direct and transitive), breadth-first.
	// Empty for leaves.
	ChildrenOf(ctx context.Context, categoryID string) ([]docsystem.Category, error)

	// AllTopLevel returns parentless categories in store default order
	AllTopLevel(ctx context.Context) ([]docsystem.Category, error)

	// CategoryByID resolves a category id
	CategoryByID(ctx context.Context, categoryID string) (*docsystem.Category, error)

	// CategoryBySlug resolves an archive slug to its category
	CategoryBySlug(ctx context.Context, slug string) (*docsystem.Category, error)
}
