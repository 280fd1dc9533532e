// Package memory serves a catalog from process memory. Used when no
// database is configured and as the store behind service tests.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"organizeddocs/internal/domain"
	models "organizeddocs/internal/domain/models/docsystem"
	"organizeddocs/internal/domain/repositories"
	docsysRepo "organizeddocs/internal/domain/repositories/docsystem"
)

// Store holds categories and documents. Safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	categories map[string]models.Category
	children   map[string][]string // parent id -> child ids
	documents  map[string]models.Document
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		categories: make(map[string]models.Category),
		children:   make(map[string][]string),
		documents:  make(map[string]models.Document),
	}
}

// CategoryRepository exposes the store as a category repository
func (s *Store) CategoryRepository() docsysRepo.CategoryRepository {
	return &categoryRepository{store: s}
}

// DocumentRepository exposes the store as a document repository
func (s *Store) DocumentRepository() docsysRepo.DocumentRepository {
	return &documentRepository{store: s}
}

// TransactionManager runs functions directly; writes are applied immediately.
func (s *Store) TransactionManager() repositories.TransactionManager {
	return txManager{}
}

type txManager struct{}

func (txManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// byNameThenID is the store default order, matching the postgres ORDER BY.
func byNameThenID(a, b models.Category) int {
	return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
}

func cloneCategory(c models.Category) models.Category {
	c.ChildIDs = slices.Clone(c.ChildIDs)
	return c
}

func cloneDocument(d models.Document) models.Document {
	d.CategoryIDs = slices.Clone(d.CategoryIDs)
	return d
}

type categoryRepository struct {
	store *Store
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	cat, ok := r.store.categories[id]
	if !ok {
		return nil, domain.NewCategoryNotFound(id)
	}
	cat = cloneCategory(cat)
	return &cat, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, cat := range r.store.categories {
		if cat.Slug == slug {
			cat = cloneCategory(cat)
			return &cat, nil
		}
	}
	return nil, domain.NewCategoryNotFound(slug)
}

func (r *categoryRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	categories := make([]models.Category, 0, len(ids))
	for _, id := range ids {
		if cat, ok := r.store.categories[id]; ok {
			categories = append(categories, cloneCategory(cat))
		}
	}
	return categories, nil
}

func (r *categoryRepository) ListChildIDs(ctx context.Context, id string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	children := make([]models.Category, 0, len(r.store.children[id]))
	for _, childID := range r.store.children[id] {
		children = append(children, r.store.categories[childID])
	}
	slices.SortFunc(children, byNameThenID)

	ids := make([]string, len(children))
	for i, child := range children {
		ids[i] = child.ID
	}
	return ids, nil
}

func (r *categoryRepository) ListTopLevel(ctx context.Context) ([]models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var topLevel []models.Category
	for _, cat := range r.store.categories {
		if cat.ParentID == nil {
			topLevel = append(topLevel, cloneCategory(cat))
		}
	}
	slices.SortFunc(topLevel, byNameThenID)
	return topLevel, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.categories[category.ID]; exists {
		return fmt.Errorf("%w: category %q already exists", domain.ErrValidation, category.ID)
	}
	if category.ParentID != nil {
		if _, ok := r.store.categories[*category.ParentID]; !ok {
			return fmt.Errorf("parent of category %q: %w", category.ID, domain.NewCategoryNotFound(*category.ParentID))
		}
		r.store.children[*category.ParentID] = append(r.store.children[*category.ParentID], category.ID)
	}
	stored := cloneCategory(*category)
	stored.ChildIDs = nil
	r.store.categories[category.ID] = stored
	return nil
}

type documentRepository struct {
	store *Store
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	doc, ok := r.store.documents[id]
	if !ok {
		return nil, domain.NewDocumentNotFound(id)
	}
	doc = cloneDocument(doc)
	return &doc, nil
}

// QueryByCategories returns matches ordered by id; OrderBy is only a hint
// and the listing builder applies the real ordering.
func (r *documentRepository) QueryByCategories(ctx context.Context, query *models.DocumentQuery) ([]models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	wanted := make(map[string]bool, len(query.CategoryIDs))
	queue := slices.Clone(query.CategoryIDs)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if wanted[id] {
			continue
		}
		if _, ok := r.store.categories[id]; !ok {
			continue
		}
		wanted[id] = true
		if query.IncludeDescendants {
			queue = append(queue, r.store.children[id]...)
		}
	}

	var docs []models.Document
	for _, doc := range r.store.documents {
		for _, id := range doc.CategoryIDs {
			if wanted[id] {
				docs = append(docs, cloneDocument(doc))
				break
			}
		}
	}
	slices.SortFunc(docs, func(a, b models.Document) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return docs, nil
}

func (r *documentRepository) Create(ctx context.Context, doc *models.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.documents[doc.ID]; exists {
		return fmt.Errorf("%w: document %q already exists", domain.ErrValidation, doc.ID)
	}
	for _, id := range doc.CategoryIDs {
		if _, ok := r.store.categories[id]; !ok {
			return fmt.Errorf("link document %q: %w", doc.ID, domain.NewCategoryNotFound(id))
		}
	}
	r.store.documents[doc.ID] = cloneDocument(*doc)
	return nil
}
