package seed

import (
	"context"
	"fmt"
	"log/slog"

	"organizeddocs/internal/domain/repositories"
	docsysRepo "organizeddocs/internal/domain/repositories/docsystem"
)

// CatalogSeeder writes a catalog into the category and document stores.
type CatalogSeeder struct {
	categoryRepo docsysRepo.CategoryRepository
	documentRepo docsysRepo.DocumentRepository
	txManager    repositories.TransactionManager
	logger       *slog.Logger
}

// NewCatalogSeeder creates a new catalog seeder
func NewCatalogSeeder(
	categoryRepo docsysRepo.CategoryRepository,
	documentRepo docsysRepo.DocumentRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) *CatalogSeeder {
	return &CatalogSeeder{
		categoryRepo: categoryRepo,
		documentRepo: documentRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Seed inserts all categories (parents first) then all documents in one
// transaction. Links to unknown categories are dropped with a warning.
func (s *CatalogSeeder) Seed(ctx context.Context, catalog *Catalog) error {
	return s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		known := make(map[string]bool, len(catalog.Categories))
		for _, cat := range catalog.ParentsFirst() {
			if err := s.categoryRepo.Create(ctx, &cat); err != nil {
				return fmt.Errorf("seed category %q: %w", cat.ID, err)
			}
			known[cat.ID] = true
			s.logger.Debug("category seeded", "id", cat.ID, "name", cat.Name, "parent_id", cat.ParentID)
		}

		for _, doc := range catalog.Documents {
			linked := make([]string, 0, len(doc.CategoryIDs))
			for _, id := range doc.CategoryIDs {
				if !known[id] {
					s.logger.Warn("dropping link to unknown category", "document_id", doc.ID, "category_id", id)
					continue
				}
				linked = append(linked, id)
			}
			doc.CategoryIDs = linked
			if err := s.documentRepo.Create(ctx, &doc); err != nil {
				return fmt.Errorf("seed document %q: %w", doc.ID, err)
			}
			s.logger.Debug("document seeded", "id", doc.ID, "title", doc.Title, "categories", len(linked))
		}

		s.logger.Info("catalog seeded",
			"category_count", len(catalog.Categories),
			"document_count", len(catalog.Documents),
		)
		return nil
	})
}
