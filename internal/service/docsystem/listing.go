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

	"golang.org/x/sync/errgroup"
)

// listingBuilder implements the ListingBuilder interface
type listingBuilder struct {
	resolver     docsysSvc.TaxonomyResolver
	documentRepo docsysRepo.DocumentRepository
	cfg          config.ListingConfig
	comparators  map[models.SortStrategy]documentComparator
	logger       *slog.Logger
}

// NewListingBuilder creates a new listing builder. The comparator for every
// strategy is resolved here, once, with the configured date direction.
func NewListingBuilder(
	resolver docsysSvc.TaxonomyResolver,
	documentRepo docsysRepo.DocumentRepository,
	cfg config.ListingConfig,
	logger *slog.Logger,
) (docsysSvc.ListingBuilder, error) {
	if _, ok := documentComparators[cfg.Strategy]; !ok {
		return nil, fmt.Errorf("%w: unknown sort strategy %q", domain.ErrValidation, cfg.Strategy)
	}
	if cfg.FetchConcurrency < 1 {
		cfg.FetchConcurrency = 1
	}

	comparators := make(map[models.SortStrategy]documentComparator, len(documentComparators))
	for strategy := range documentComparators {
		compare, err := comparatorFor(strategy, cfg.Direction)
		if err != nil {
			return nil, err
		}
		comparators[strategy] = compare
	}

	return &listingBuilder{
		resolver:     resolver,
		documentRepo: documentRepo,
		cfg:          cfg,
		comparators:  comparators,
		logger:       logger,
	}, nil
}

// OrderCategories sorts by explicit sort order; missing values sort last.
func (b *listingBuilder) OrderCategories(categories []models.Category) []models.Category {
	return orderCategories(categories)
}

// DocumentsFor fetches the documents tagged with category and orders them.
func (b *listingBuilder) DocumentsFor(
	ctx context.Context,
	category *models.Category,
	strategy models.SortStrategy,
	includeDescendants bool,
) ([]models.Document, error) {
	if category == nil {
		return nil, fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	compare, ok := b.comparators[strategy]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sort strategy %q", domain.ErrValidation, strategy)
	}

	docs, err := b.documentRepo.QueryByCategories(ctx, &models.DocumentQuery{
		CategoryIDs:        []string{category.ID},
		IncludeDescendants: includeDescendants,
		OrderBy:            strategy,
		Direction:          b.cfg.Direction,
	})
	if err != nil {
		return nil, fmt.Errorf("query documents for category %s: %w", category.ID, err)
	}

	// Untagged documents never belong to a listing
	filtered := make([]models.Document, 0, len(docs))
	for _, doc := range docs {
		if len(doc.CategoryIDs) > 0 {
			filtered = append(filtered, doc)
		}
	}

	sortDocuments(filtered, compare)
	return filtered, nil
}

// BuildListing produces the listing for listingCtx.
func (b *listingBuilder) BuildListing(ctx context.Context, listingCtx models.ListingContext) (*models.Listing, error) {
	if err := listingCtx.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	switch listingCtx.Scope {
	case models.ScopeTopLevel:
		return b.buildTopLevel(ctx)
	case models.ScopeCategory:
		return b.buildCategory(ctx, listingCtx.CategoryID)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedScope, listingCtx.Scope)
	}
}

// buildTopLevel lists top-level categories. Custom ordering is skipped
// unless OrderTopLevel is configured.
func (b *listingBuilder) buildTopLevel(ctx context.Context) (*models.Listing, error) {
	topLevel, err := b.resolver.AllTopLevel(ctx)
	if err != nil {
		return nil, err
	}
	if b.cfg.OrderTopLevel {
		topLevel = orderCategories(topLevel)
	}

	return &models.Listing{
		Scope:    models.ScopeTopLevel,
		Mode:     models.ModeTopLevel,
		TopLevel: topLevel,
	}, nil
}

func (b *listingBuilder) buildCategory(ctx context.Context, categoryID string) (*models.Listing, error) {
	category, err := b.loadCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	children, err := b.resolver.ChildrenOf(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	// Leaf: the category's own documents as a flat list
	if len(children) == 0 {
		docs, err := b.DocumentsFor(ctx, category, b.cfg.Strategy, b.cfg.IncludeDescendants)
		if err != nil {
			return nil, err
		}
		return &models.Listing{
			Scope:    models.ScopeCategory,
			Mode:     models.ModeFlat,
			Category: category,
			Sections: []models.ListingSection{{Category: *category, Documents: docs}},
		}, nil
	}

	ordered := orderCategories(children)
	b.logger.Debug("ordering subcategories",
		"category_id", categoryID,
		"unsorted", categoryIDs(children),
		"sorted", categoryIDs(ordered),
	)

	sections, err := b.sectionsFor(ctx, ordered)
	if err != nil {
		return nil, err
	}

	listing := &models.Listing{
		Scope:    models.ScopeCategory,
		Mode:     models.ModeNested,
		Category: category,
		Sections: sections,
	}

	b.logger.Info("listing built",
		"category_id", categoryID,
		"section_count", len(sections),
		"document_count", listing.DocumentCount(),
	)

	return listing, nil
}

// sectionsFor fetches documents per category with bounded concurrency.
// Each result lands at its category's index, so order never depends on scheduling.
func (b *listingBuilder) sectionsFor(ctx context.Context, ordered []models.Category) ([]models.ListingSection, error) {
	sections := make([]models.ListingSection, len(ordered))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.FetchConcurrency)
	for i := range ordered {
		g.Go(func() error {
			docs, err := b.DocumentsFor(gctx, &ordered[i], b.cfg.Strategy, b.cfg.IncludeDescendants)
			if err != nil {
				return err
			}
			sections[i] = models.ListingSection{Category: ordered[i], Documents: docs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return sections, nil
}

// TableOfContents lists the top-level section a document belongs to: the
// document's first category, walked up to its top-level ancestor.
func (b *listingBuilder) TableOfContents(ctx context.Context, documentID string) (*models.Listing, error) {
	doc, err := b.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if len(doc.CategoryIDs) == 0 {
		return nil, fmt.Errorf("document %s has no category: %w", documentID, domain.ErrNotFound)
	}

	ancestor, err := b.resolver.TopLevelAncestorOf(ctx, doc.CategoryIDs[0])
	if err != nil {
		return nil, err
	}

	return b.buildCategory(ctx, ancestor.ID)
}

// loadCategory goes through the resolver so it stays the only reader of the
// category store.
func (b *listingBuilder) loadCategory(ctx context.Context, categoryID string) (*models.Category, error) {
	return b.resolver.CategoryByID(ctx, categoryID)
}
