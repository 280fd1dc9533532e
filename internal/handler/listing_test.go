package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"organizeddocs/internal/config"
	"organizeddocs/internal/domain"
	models "organizeddocs/internal/domain/models/docsystem"
	"organizeddocs/internal/repository/memory"
	serviceDocsys "organizeddocs/internal/service/docsystem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.DiscardHandler)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	ctx := context.Background()
	parent := func(id string) *string { return &id }
	order := func(v int) *int { return &v }

	store := memory.NewStore()
	categories := []models.Category{
		{ID: "guides", Name: "Guides", Slug: "guides"},
		{ID: "install", Name: "Install", Slug: "install", ParentID: parent("guides"), SortOrder: order(2)},
		{ID: "usage", Name: "Usage", Slug: "usage", ParentID: parent("guides"), SortOrder: order(1)},
	}
	for i := range categories {
		require.NoError(t, store.CategoryRepository().Create(ctx, &categories[i]))
	}
	published := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	docs := []models.Document{
		{ID: "b", Title: "Beta", CategoryIDs: []string{"install"}, PublishedAt: published},
		{ID: "a", Title: "Alpha", CategoryIDs: []string{"install"}, PublishedAt: published.AddDate(0, 1, 0)},
	}
	for i := range docs {
		require.NoError(t, store.DocumentRepository().Create(ctx, &docs[i]))
	}

	resolver := serviceDocsys.NewTaxonomyResolver(store.CategoryRepository(), testLogger)
	builder, err := serviceDocsys.NewListingBuilder(resolver, store.DocumentRepository(), config.DefaultListingConfig(), testLogger)
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", HealthCheck("memory"))
	NewListingHandler(resolver, builder, testLogger).RegisterRoutes(mux)
	return mux
}

func get(t *testing.T, mux http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decodeListing(t *testing.T, rec *httptest.ResponseRecorder) models.Listing {
	t.Helper()
	var listing models.Listing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	return listing
}

func TestListingHandler_Index(t *testing.T) {
	rec := get(t, newTestMux(t), "/api/docs")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	listing := decodeListing(t, rec)
	assert.Equal(t, models.ModeTopLevel, listing.Mode)
	require.Len(t, listing.TopLevel, 1)
	assert.Equal(t, "guides", listing.TopLevel[0].ID)
}

func TestListingHandler_Category(t *testing.T) {
	mux := newTestMux(t)

	for _, path := range []string{"/api/docs/categories/guides", "/api/docs/slugs/guides"} {
		t.Run(path, func(t *testing.T) {
			rec := get(t, mux, path)
			require.Equal(t, http.StatusOK, rec.Code)

			listing := decodeListing(t, rec)
			assert.Equal(t, models.ModeNested, listing.Mode)
			require.Len(t, listing.Sections, 2)
			assert.Equal(t, "usage", listing.Sections[0].Category.ID)
			assert.Empty(t, listing.Sections[0].Documents)
			assert.Equal(t, "install", listing.Sections[1].Category.ID)
			require.Len(t, listing.Sections[1].Documents, 2)
		})
	}
}

func TestListingHandler_CategoryDocuments(t *testing.T) {
	mux := newTestMux(t)

	tests := []struct {
		name     string
		path     string
		status   int
		expected []string
	}{
		{name: "title order", path: "/api/docs/categories/install/documents?order_by=title", status: http.StatusOK, expected: []string{"a", "b"}},
		{name: "date order", path: "/api/docs/categories/install/documents?order_by=date", status: http.StatusOK, expected: []string{"b", "a"}},
		{name: "descendants of parent", path: "/api/docs/categories/guides/documents?order_by=title&include_descendants=true", status: http.StatusOK, expected: []string{"a", "b"}},
		{name: "bad strategy", path: "/api/docs/categories/install/documents?order_by=random", status: http.StatusBadRequest},
		{name: "bad boolean", path: "/api/docs/categories/install/documents?include_descendants=maybe", status: http.StatusBadRequest},
		{name: "unknown category", path: "/api/docs/categories/ghost/documents", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, mux, tt.path)
			require.Equal(t, tt.status, rec.Code)
			if tt.expected == nil {
				return
			}

			var section models.ListingSection
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &section))
			got := make([]string, len(section.Documents))
			for i, d := range section.Documents {
				got[i] = d.ID
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestListingHandler_TopLevelAndContents(t *testing.T) {
	mux := newTestMux(t)

	rec := get(t, mux, "/api/docs/categories/install/top-level")
	require.Equal(t, http.StatusOK, rec.Code)
	var ancestor models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ancestor))
	assert.Equal(t, "guides", ancestor.ID)

	rec = get(t, mux, "/api/docs/documents/a/contents")
	require.Equal(t, http.StatusOK, rec.Code)
	listing := decodeListing(t, rec)
	assert.Equal(t, "guides", listing.Category.ID)
}

func TestListingHandler_NotFoundProblem(t *testing.T) {
	mux := newTestMux(t)

	for _, path := range []string{
		"/api/docs/categories/ghost",
		"/api/docs/slugs/ghost",
		"/api/docs/categories/ghost/top-level",
		"/api/docs/documents/ghost/contents",
	} {
		t.Run(path, func(t *testing.T) {
			rec := get(t, mux, path)
			require.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

			var problem map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
			assert.Equal(t, float64(http.StatusNotFound), problem["status"])
			assert.Equal(t, "ghost", problem["resource_id"])
		})
	}
}

func TestHealthCheck(t *testing.T) {
	rec := get(t, newTestMux(t), "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","backend":"memory"}`, rec.Body.String())
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: domain.NewCategoryNotFound("x"), status: http.StatusNotFound},
		{name: "wrapped sentinel not found", err: errors.Join(errors.New("ctx"), domain.ErrNotFound), status: http.StatusNotFound},
		{name: "validation", err: domain.ErrValidation, status: http.StatusBadRequest},
		{name: "unsupported scope", err: domain.ErrUnsupportedScope, status: http.StatusBadRequest},
		{name: "corrupt taxonomy", err: domain.ErrCorruptTaxonomy, status: http.StatusInternalServerError},
		{name: "storage failure", err: errors.New("connection reset"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), testLogger, tt.err)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
