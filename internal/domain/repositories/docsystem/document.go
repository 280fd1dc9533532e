package docsystem

import (
	"context"

	"organizeddocs/internal/domain/models/docsystem"
)

// DocumentRepository defines read access to Docs documents plus the insert
// used when seeding a catalog.
type DocumentRepository interface {
	// GetByID retrieves a document by ID (domain.ErrNotFound when missing)
	GetByID(ctx context.Context, id string) (*docsystem.Document, error)

	// QueryByCategories lists documents tagged with any of the query's categories
	// (and their descendants when IncludeDescendants is set). Each document appears once.
	QueryByCategories(ctx context.Context, query *docsystem.DocumentQuery) ([]docsystem.Document, error)

	// Create inserts a document and its category links
	Create(ctx context.Context, doc *docsystem.Document) error
}
