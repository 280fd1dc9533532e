package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"organizeddocs/internal/domain"
	models "organizeddocs/internal/domain/models/docsystem"
	docsysSvc "organizeddocs/internal/domain/services/docsystem"
	"organizeddocs/internal/httputil"
)

// ListingHandler serves Docs listings over HTTP
type ListingHandler struct {
	resolver docsysSvc.TaxonomyResolver
	builder  docsysSvc.ListingBuilder
	logger   *slog.Logger
}

// NewListingHandler creates a new listing handler
func NewListingHandler(resolver docsysSvc.TaxonomyResolver, builder docsysSvc.ListingBuilder, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{
		resolver: resolver,
		builder:  builder,
		logger:   logger,
	}
}

// RegisterRoutes wires the listing endpoints onto mux
func (h *ListingHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/docs", h.GetIndex)
	mux.HandleFunc("GET /api/docs/categories/{id}", h.GetCategory)
	mux.HandleFunc("GET /api/docs/categories/{id}/documents", h.GetCategoryDocuments)
	mux.HandleFunc("GET /api/docs/categories/{id}/top-level", h.GetTopLevelAncestor)
	mux.HandleFunc("GET /api/docs/slugs/{slug}", h.GetCategoryBySlug)
	mux.HandleFunc("GET /api/docs/documents/{id}/contents", h.GetTableOfContents)
}

// GetIndex returns the top-level listing
// GET /api/docs
func (h *ListingHandler) GetIndex(w http.ResponseWriter, r *http.Request) {
	listing, err := h.builder.BuildListing(r.Context(), models.TopLevelContext())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, listing)
}

// GetCategory returns the listing of one category archive
// GET /api/docs/categories/{id}
func (h *ListingHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("id")
	if categoryID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Category ID is required")
		return
	}

	listing, err := h.builder.BuildListing(r.Context(), models.CategoryContext(categoryID))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, listing)
}

// GetCategoryBySlug resolves an archive slug and returns its listing
// GET /api/docs/slugs/{slug}
func (h *ListingHandler) GetCategoryBySlug(w http.ResponseWriter, r *http.Request) {
	category, err := h.resolver.CategoryBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	listing, err := h.builder.BuildListing(r.Context(), models.CategoryContext(category.ID))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, listing)
}

// GetCategoryDocuments returns a category's own documents
// GET /api/docs/categories/{id}/documents?order_by=title-alphabetical&include_descendants=true
func (h *ListingHandler) GetCategoryDocuments(w http.ResponseWriter, r *http.Request) {
	strategy, err := models.ParseSortStrategy(httputil.QueryString(r, "order_by", ""))
	if err != nil {
		handleError(w, r, h.logger, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	includeDescendants, err := httputil.QueryBool(r, "include_descendants", false)
	if err != nil {
		handleError(w, r, h.logger, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	category, err := h.resolver.CategoryByID(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	docs, err := h.builder.DocumentsFor(r.Context(), category, strategy, includeDescendants)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.ListingSection{Category: *category, Documents: docs})
}

// GetTopLevelAncestor returns the top-level category above a category
// GET /api/docs/categories/{id}/top-level
func (h *ListingHandler) GetTopLevelAncestor(w http.ResponseWriter, r *http.Request) {
	ancestor, err := h.resolver.TopLevelAncestorOf(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, ancestor)
}

// GetTableOfContents returns the listing of the section a document lives in
// GET /api/docs/documents/{id}/contents
func (h *ListingHandler) GetTableOfContents(w http.ResponseWriter, r *http.Request) {
	listing, err := h.builder.TableOfContents(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, listing)
}
