package docsystem

import (
	"context"

	"organizeddocs/internal/domain/models/docsystem"
)

// CategoryRepository defines read access to the Docs taxonomy plus the
// insert used when seeding a catalog.
type CategoryRepository interface {
	// GetByID retrieves a category by ID (domain.ErrNotFound when missing)
	GetByID(ctx context.Context, id string) (*docsystem.Category, error)

	// GetBySlug retrieves a category by its slug
	GetBySlug(ctx context.Context, slug string) (*docsystem.Category, error)

	// ListByIDs retrieves the given categories; unknown ids are skipped.
	// Result follows the order of ids.
	ListByIDs(ctx context.Context, ids []string) ([]docsystem.Category, error)

	// ListChildIDs lists the ids of immediate children in store default order
	ListChildIDs(ctx context.Context, id string) ([]string, error)

	// ListTopLevel lists parentless categories in store default order (name, then id)
	ListTopLevel(ctx context.Context) ([]docsystem.Category, error)

	// Create inserts a category
	Create(ctx context.Context, category *docsystem.Category) error
}
