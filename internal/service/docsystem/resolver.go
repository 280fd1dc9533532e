package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	"organizeddocs/internal/config"
	"organizeddocs/internal/domain"
	models "organizeddocs/internal/domain/models/docsystem"
	docsysRepo "organizeddocs/internal/domain/repositories/docsystem"
	docsysSvc "organizeddocs/internal/domain/services/docsystem"
)

// taxonomyResolver implements the TaxonomyResolver interface
type taxonomyResolver struct {
	categoryRepo docsysRepo.CategoryRepository
	logger       *slog.Logger
}

// NewTaxonomyResolver creates a new taxonomy resolver
func NewTaxonomyResolver(categoryRepo docsysRepo.CategoryRepository, logger *slog.Logger) docsysSvc.TaxonomyResolver {
	return &taxonomyResolver{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// TopLevelAncestorOf walks up the parent chain until a parentless category.
func (r *taxonomyResolver) TopLevelAncestorOf(ctx context.Context, categoryID string) (*models.Category, error) {
	current, err := r.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	visited := map[string]bool{current.ID: true}
	for depth := 0; current.ParentID != nil; depth++ {
		if depth >= config.MaxCategoryDepth {
			return nil, fmt.Errorf("category %s: parent chain exceeds %d levels: %w",
				categoryID, config.MaxCategoryDepth, domain.ErrCorruptTaxonomy)
		}

		parent, err := r.categoryRepo.GetByID(ctx, *current.ParentID)
		if err != nil {
			return nil, fmt.Errorf("parent of category %s: %w", current.ID, err)
		}
		if visited[parent.ID] {
			return nil, fmt.Errorf("category %s: cycle through %s: %w", categoryID, parent.ID, domain.ErrCorruptTaxonomy)
		}
		visited[parent.ID] = true
		current = parent
	}

	return current, nil
}

// ChildrenOf collects every descendant breadth-first, level by level in
// store order. Each returned category carries its direct ChildIDs.
func (r *taxonomyResolver) ChildrenOf(ctx context.Context, categoryID string) ([]models.Category, error) {
	root, err := r.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	descendants := make([]models.Category, 0)
	visited := map[string]bool{root.ID: true}

	level, err := r.categoryRepo.ListChildIDs(ctx, root.ID)
	if err != nil {
		return nil, fmt.Errorf("list children of %s: %w", root.ID, err)
	}

	for depth := 0; len(level) > 0; depth++ {
		if depth >= config.MaxCategoryDepth {
			return nil, fmt.Errorf("category %s: subtree exceeds %d levels: %w",
				categoryID, config.MaxCategoryDepth, domain.ErrCorruptTaxonomy)
		}

		fresh := make([]string, 0, len(level))
		for _, id := range level {
			if visited[id] {
				return nil, fmt.Errorf("category %s: cycle through %s: %w", categoryID, id, domain.ErrCorruptTaxonomy)
			}
			visited[id] = true
			fresh = append(fresh, id)
		}

		categories, err := r.categoryRepo.ListByIDs(ctx, fresh)
		if err != nil {
			return nil, fmt.Errorf("load categories: %w", err)
		}

		var next []string
		for i := range categories {
			childIDs, err := r.categoryRepo.ListChildIDs(ctx, categories[i].ID)
			if err != nil {
				return nil, fmt.Errorf("list children of %s: %w", categories[i].ID, err)
			}
			categories[i].ChildIDs = childIDs
			next = append(next, childIDs...)
		}

		descendants = append(descendants, categories...)
		level = next
	}

	r.logger.Debug("category children resolved",
		"category_id", categoryID,
		"descendant_count", len(descendants),
	)

	return descendants, nil
}

// AllTopLevel returns parentless categories in store default order.
func (r *taxonomyResolver) AllTopLevel(ctx context.Context) ([]models.Category, error) {
	categories, err := r.categoryRepo.ListTopLevel(ctx)
	if err != nil {
		return nil, fmt.Errorf("list top-level categories: %w", err)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// CategoryByID resolves a category id
func (r *taxonomyResolver) CategoryByID(ctx context.Context, categoryID string) (*models.Category, error) {
	if categoryID == "" {
		return nil, fmt.Errorf("%w: category id is required", domain.ErrValidation)
	}
	return r.categoryRepo.GetByID(ctx, categoryID)
}

// CategoryBySlug resolves an archive slug
func (r *taxonomyResolver) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", domain.ErrValidation)
	}
	return r.categoryRepo.GetBySlug(ctx, slug)
}
