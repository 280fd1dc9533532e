package docsystem

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"organizeddocs/internal/config"
	"organizeddocs/internal/domain"
	models "organizeddocs/internal/domain/models/docsystem"
	docsysRepo "organizeddocs/internal/domain/repositories/docsystem"
	docsysSvc "organizeddocs/internal/domain/services/docsystem"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sectionIDs flattens a listing into category id -> ordered document ids
type sectionIDs struct {
	Category  string
	Documents []string
}

func summarize(listing *models.Listing) []sectionIDs {
	out := make([]sectionIDs, len(listing.Sections))
	for i, s := range listing.Sections {
		out[i] = sectionIDs{Category: s.Category.ID, Documents: ids(s.Documents)}
	}
	return out
}

func newBuilder(t *testing.T, categories []models.Category, docs []models.Document, cfg config.ListingConfig) docsysSvc.ListingBuilder {
	t.Helper()
	store := newStore(t, categories, docs)
	resolver := NewTaxonomyResolver(store.CategoryRepository(), testLogger)
	builder, err := NewListingBuilder(resolver, store.DocumentRepository(), cfg, testLogger)
	require.NoError(t, err)
	return builder
}

// X has children Y and Z; Y holds two documents, Z none.
func nestedFixture() ([]models.Category, []models.Document) {
	categories := []models.Category{
		category("X", "", nil),
		category("Y", "X", nil),
		category("Z", "X", nil),
	}
	docs := []models.Document{
		document("doc2", "Second", 1, intPtr(2), "Y"),
		document("doc1", "First", 2, intPtr(1), "Y"),
	}
	return categories, docs
}

func TestNewListingBuilder_UnknownStrategy(t *testing.T) {
	cfg := config.DefaultListingConfig()
	cfg.Strategy = "popularity"

	_, err := NewListingBuilder(nil, nil, cfg, testLogger)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBuildListing_NestedKeepsEmptySections(t *testing.T) {
	categories, docs := nestedFixture()
	builder := newBuilder(t, categories, docs, config.DefaultListingConfig())

	listing, err := builder.BuildListing(context.Background(), models.CategoryContext("X"))
	require.NoError(t, err)

	assert.Equal(t, models.ModeNested, listing.Mode)
	assert.Equal(t, "X", listing.Category.ID)
	expected := []sectionIDs{
		{Category: "Y", Documents: []string{"doc1", "doc2"}},
		{Category: "Z", Documents: []string{}},
	}
	if diff := cmp.Diff(expected, summarize(listing)); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, listing.DocumentCount())
}

func TestBuildListing_SubcategoriesUseSortOrder(t *testing.T) {
	categories := []models.Category{
		category("root", "", nil),
		category("A", "root", intPtr(2)),
		category("B", "root", intPtr(1)),
		category("C", "root", nil),
		category("B1", "B", intPtr(0)),
	}
	builder := newBuilder(t, categories, nil, config.DefaultListingConfig())

	listing, err := builder.BuildListing(context.Background(), models.CategoryContext("root"))
	require.NoError(t, err)

	// All descendants are ordered together; missing orders go last
	assert.Equal(t, []string{"B1", "B", "A", "C"}, []string{
		listing.Sections[0].Category.ID,
		listing.Sections[1].Category.ID,
		listing.Sections[2].Category.ID,
		listing.Sections[3].Category.ID,
	})
}

func TestBuildListing_LeafIsFlat(t *testing.T) {
	categories, docs := nestedFixture()
	builder := newBuilder(t, categories, docs, config.DefaultListingConfig())

	listing, err := builder.BuildListing(context.Background(), models.CategoryContext("Y"))
	require.NoError(t, err)

	assert.Equal(t, models.ModeFlat, listing.Mode)
	expected := []sectionIDs{{Category: "Y", Documents: []string{"doc1", "doc2"}}}
	if diff := cmp.Diff(expected, summarize(listing)); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildListing_EmptyLeafIsNotAnError(t *testing.T) {
	categories, docs := nestedFixture()
	builder := newBuilder(t, categories, docs, config.DefaultListingConfig())

	listing, err := builder.BuildListing(context.Background(), models.CategoryContext("Z"))
	require.NoError(t, err)
	require.Len(t, listing.Sections, 1)
	assert.Empty(t, listing.Sections[0].Documents)
	assert.Equal(t, 0, listing.DocumentCount())
}

func TestBuildListing_Errors(t *testing.T) {
	categories, docs := nestedFixture()
	builder := newBuilder(t, categories, docs, config.DefaultListingConfig())

	tests := []struct {
		name    string
		ctx     models.ListingContext
		wantErr error
	}{
		{name: "unknown category", ctx: models.CategoryContext("nope"), wantErr: domain.ErrNotFound},
		{name: "category scope without id", ctx: models.ListingContext{Scope: models.ScopeCategory}, wantErr: domain.ErrValidation},
		{name: "unknown scope", ctx: models.ListingContext{Scope: "tag", CategoryID: "X"}, wantErr: domain.ErrValidation},
		{name: "top-level scope with id", ctx: models.ListingContext{Scope: models.ScopeTopLevel, CategoryID: "X"}, wantErr: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing, err := builder.BuildListing(context.Background(), tt.ctx)
			assert.Nil(t, listing)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuildListing_TopLevel(t *testing.T) {
	categories := []models.Category{
		category("P", "", intPtr(3)),
		category("Q", "", intPtr(2)),
		category("R", "", intPtr(1)),
		category("P1", "P", nil),
	}

	tests := []struct {
		name          string
		orderTopLevel bool
		expected      []string
	}{
		{name: "store order, sort order ignored", orderTopLevel: false, expected: []string{"P", "Q", "R"}},
		{name: "ordered when enabled", orderTopLevel: true, expected: []string{"R", "Q", "P"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultListingConfig()
			cfg.OrderTopLevel = tt.orderTopLevel
			builder := newBuilder(t, categories, nil, cfg)

			listing, err := builder.BuildListing(context.Background(), models.TopLevelContext())
			require.NoError(t, err)

			assert.Equal(t, models.ModeTopLevel, listing.Mode)
			assert.Equal(t, tt.expected, ids(listing.TopLevel))
			assert.Empty(t, listing.Sections)
		})
	}
}

func TestBuildListing_DocumentStrategies(t *testing.T) {
	categories := []models.Category{category("c", "", nil)}
	docs := []models.Document{
		document("d1", "Zebra", 1, intPtr(3), "c"),
		document("d2", "Apple", 3, nil, "c"),
		document("d3", "Mango", 2, intPtr(1), "c"),
	}

	tests := []struct {
		name      string
		strategy  models.SortStrategy
		direction models.SortDirection
		expected  []string
	}{
		{name: "explicit order", strategy: models.SortByExplicitOrder, expected: []string{"d3", "d1", "d2"}},
		{name: "title", strategy: models.SortByTitle, expected: []string{"d2", "d3", "d1"}},
		{name: "date ascending", strategy: models.SortByDate, direction: models.SortAscending, expected: []string{"d1", "d3", "d2"}},
		{name: "date descending", strategy: models.SortByDate, direction: models.SortDescending, expected: []string{"d2", "d3", "d1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultListingConfig()
			cfg.Strategy = tt.strategy
			cfg.Direction = tt.direction
			builder := newBuilder(t, categories, docs, cfg)

			listing, err := builder.BuildListing(context.Background(), models.CategoryContext("c"))
			require.NoError(t, err)
			require.Len(t, listing.Sections, 1)
			assert.Equal(t, tt.expected, ids(listing.Sections[0].Documents))
		})
	}
}

func TestDocumentsFor(t *testing.T) {
	categories := []models.Category{
		category("parent", "", nil),
		category("child", "parent", nil),
	}
	docs := []models.Document{
		document("own", "Own", 1, nil, "parent"),
		document("nested", "Nested", 2, nil, "child"),
		document("both", "Both", 3, nil, "parent", "child"),
	}
	builder := newBuilder(t, categories, docs, config.DefaultListingConfig())
	parent := categories[0]
	ctx := context.Background()

	t.Run("own documents only", func(t *testing.T) {
		got, err := builder.DocumentsFor(ctx, &parent, models.SortByTitle, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"both", "own"}, ids(got))
	})

	t.Run("with descendants, each document once", func(t *testing.T) {
		got, err := builder.DocumentsFor(ctx, &parent, models.SortByTitle, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"both", "nested", "own"}, ids(got))
	})

	t.Run("unknown strategy", func(t *testing.T) {
		_, err := builder.DocumentsFor(ctx, &parent, "random", false)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("nil category", func(t *testing.T) {
		_, err := builder.DocumentsFor(ctx, nil, models.SortByTitle, false)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

// stubDocuments returns fixed query results so untagged rows and store
// failures can be simulated.
type stubDocuments struct {
	docs []models.Document
	err  error
}

var _ docsysRepo.DocumentRepository = (*stubDocuments)(nil)

func (s *stubDocuments) GetByID(_ context.Context, id string) (*models.Document, error) {
	for _, d := range s.docs {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, domain.NewDocumentNotFound(id)
}

func (s *stubDocuments) QueryByCategories(_ context.Context, _ *models.DocumentQuery) ([]models.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]models.Document(nil), s.docs...), nil
}

func (s *stubDocuments) Create(_ context.Context, _ *models.Document) error { return nil }

func TestDocumentsFor_SkipsUntaggedDocuments(t *testing.T) {
	categories := []models.Category{category("c", "", nil)}
	store := newStore(t, categories, nil)
	resolver := NewTaxonomyResolver(store.CategoryRepository(), testLogger)
	docs := &stubDocuments{docs: []models.Document{
		document("tagged", "Tagged", 1, nil, "c"),
		document("untagged", "Untagged", 1, nil),
	}}
	builder, err := NewListingBuilder(resolver, docs, config.DefaultListingConfig(), testLogger)
	require.NoError(t, err)

	got, err := builder.DocumentsFor(context.Background(), &categories[0], models.SortByTitle, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"tagged"}, ids(got))
}

func TestBuildListing_StoreFailureSurfaces(t *testing.T) {
	categories, _ := nestedFixture()
	store := newStore(t, categories, nil)
	resolver := NewTaxonomyResolver(store.CategoryRepository(), testLogger)
	storeErr := errors.New("storage unavailable")
	builder, err := NewListingBuilder(resolver, &stubDocuments{err: storeErr}, config.DefaultListingConfig(), testLogger)
	require.NoError(t, err)

	_, err = builder.BuildListing(context.Background(), models.CategoryContext("X"))
	assert.ErrorIs(t, err, storeErr)
}

func TestBuildListing_ConcurrencyDoesNotChangeOrder(t *testing.T) {
	categories := []models.Category{category("root", "", nil)}
	var docs []models.Document
	for i := range 20 {
		id := fmt.Sprintf("cat%02d", i)
		categories = append(categories, category(id, "root", intPtr(20-i)))
		for j := range 3 {
			docs = append(docs, document(fmt.Sprintf("%s-doc%d", id, j), fmt.Sprintf("Doc %d", 3-j), j, nil, id))
		}
	}

	build := func(concurrency int) []sectionIDs {
		cfg := config.DefaultListingConfig()
		cfg.Strategy = models.SortByTitle
		cfg.FetchConcurrency = concurrency
		builder := newBuilder(t, categories, docs, cfg)
		listing, err := builder.BuildListing(context.Background(), models.CategoryContext("root"))
		require.NoError(t, err)
		return summarize(listing)
	}

	sequential := build(1)
	require.Len(t, sequential, 20)
	assert.Equal(t, "cat19", sequential[0].Category)

	if diff := cmp.Diff(sequential, build(8)); diff != "" {
		t.Errorf("concurrent listing differs (-sequential +concurrent):\n%s", diff)
	}
}

func TestBuildListing_CanceledContext(t *testing.T) {
	categories, docs := nestedFixture()
	builder := newBuilder(t, categories, docs, config.DefaultListingConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := builder.BuildListing(ctx, models.CategoryContext("X"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTableOfContents(t *testing.T) {
	categories := []models.Category{
		category("guides", "", nil),
		category("install", "guides", intPtr(1)),
		category("linux", "install", intPtr(2)),
		category("misc", "", nil),
	}
	docs := []models.Document{
		document("setup", "Setup", 1, nil, "linux", "misc"),
		document("intro", "Intro", 2, nil, "install"),
	}
	builder := newBuilder(t, categories, docs, config.DefaultListingConfig())
	ctx := context.Background()

	t.Run("first category's top-level section", func(t *testing.T) {
		listing, err := builder.TableOfContents(ctx, "setup")
		require.NoError(t, err)
		assert.Equal(t, "guides", listing.Category.ID)
		assert.Equal(t, models.ModeNested, listing.Mode)
		expected := []sectionIDs{
			{Category: "install", Documents: []string{"intro"}},
			{Category: "linux", Documents: []string{"setup"}},
		}
		if diff := cmp.Diff(expected, summarize(listing)); diff != "" {
			t.Errorf("sections mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown document", func(t *testing.T) {
		_, err := builder.TableOfContents(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestTableOfContents_UncategorizedDocument(t *testing.T) {
	store := newStore(t, []models.Category{category("c", "", nil)}, nil)
	resolver := NewTaxonomyResolver(store.CategoryRepository(), testLogger)
	docs := &stubDocuments{docs: []models.Document{document("loose", "Loose", 1, nil)}}
	builder, err := NewListingBuilder(resolver, docs, config.DefaultListingConfig(), testLogger)
	require.NoError(t, err)

	_, err = builder.TableOfContents(context.Background(), "loose")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderCategories_ViaBuilder(t *testing.T) {
	builder := newBuilder(t, nil, nil, config.DefaultListingConfig())

	got := builder.OrderCategories([]models.Category{
		category("A", "", intPtr(2)),
		category("B", "", intPtr(1)),
		category("C", "", nil),
	})
	assert.Equal(t, []string{"B", "A", "C"}, ids(got))
}
