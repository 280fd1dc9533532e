package seed

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"organizeddocs/internal/config"
	"organizeddocs/internal/domain"
	models "organizeddocs/internal/domain/models/docsystem"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Catalog is the YAML fixture format for a Docs taxonomy and its documents.
//
//	categories:
//	  - id: guides
//	    name: Guides
//	    sort_order: 1
//	  - id: install
//	    name: Installation
//	    parent: guides
//	documents:
//	  - title: Installing on Linux
//	    categories: [install]
//	    published_at: 2024-03-01T10:00:00Z
type Catalog struct {
	Categories []models.Category `yaml:"categories"`
	Documents  []models.Document `yaml:"documents"`
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// LoadCatalog reads and parses a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes, normalizes and validates a catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	catalog.Normalize()
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Normalize fills generated ids, slugs and modification dates.
func (c *Catalog) Normalize() {
	for i := range c.Categories {
		cat := &c.Categories[i]
		cat.Name = strings.TrimSpace(cat.Name)
		if cat.ID == "" {
			cat.ID = uuid.NewString()
		}
		if cat.Slug == "" {
			cat.Slug = Slugify(cat.Name)
		}
		if cat.ParentID != nil && *cat.ParentID == "" {
			cat.ParentID = nil
		}
	}
	for i := range c.Documents {
		doc := &c.Documents[i]
		if doc.ID == "" {
			doc.ID = uuid.NewString()
		}
		if doc.ModifiedAt.IsZero() {
			doc.ModifiedAt = doc.PublishedAt
		}
	}
}

// Validate checks names, unique ids and slugs, and that parent chains
// terminate at a top-level category.
func (c *Catalog) Validate() error {
	byID := make(map[string]*models.Category, len(c.Categories))
	slugs := make(map[string]string, len(c.Categories))

	for i := range c.Categories {
		cat := &c.Categories[i]
		err := validation.ValidateStruct(cat,
			validation.Field(&cat.ID, validation.Required),
			validation.Field(&cat.Name, validation.Required, validation.Length(1, config.MaxCategoryNameLength)),
			validation.Field(&cat.Slug, validation.Required),
		)
		if err != nil {
			return fmt.Errorf("%w: category %q: %v", domain.ErrValidation, cat.ID, err)
		}
		if _, dup := byID[cat.ID]; dup {
			return fmt.Errorf("%w: duplicate category id %q", domain.ErrValidation, cat.ID)
		}
		if other, dup := slugs[cat.Slug]; dup {
			return fmt.Errorf("%w: categories %q and %q share slug %q", domain.ErrValidation, other, cat.ID, cat.Slug)
		}
		byID[cat.ID] = cat
		slugs[cat.Slug] = cat.ID
	}

	for _, cat := range c.Categories {
		seen := map[string]bool{cat.ID: true}
		for cur := cat; cur.ParentID != nil; {
			parent, ok := byID[*cur.ParentID]
			if !ok {
				return fmt.Errorf("%w: category %q has unknown parent %q", domain.ErrValidation, cur.ID, *cur.ParentID)
			}
			if seen[parent.ID] {
				return fmt.Errorf("%w: category %q is part of a cycle", domain.ErrCorruptTaxonomy, cat.ID)
			}
			seen[parent.ID] = true
			cur = *parent
		}
	}

	docIDs := make(map[string]bool, len(c.Documents))
	for i := range c.Documents {
		doc := &c.Documents[i]
		if docIDs[doc.ID] {
			return fmt.Errorf("%w: duplicate document id %q", domain.ErrValidation, doc.ID)
		}
		docIDs[doc.ID] = true
		err := validation.ValidateStruct(doc,
			validation.Field(&doc.Title, validation.Required, validation.Length(1, config.MaxDocumentTitleLength)),
			validation.Field(&doc.PublishedAt, validation.Required),
		)
		if err != nil {
			return fmt.Errorf("%w: document %q: %v", domain.ErrValidation, doc.ID, err)
		}
	}

	return nil
}

// ParentsFirst returns the categories ordered so that every parent precedes
// its children. Catalog must be valid.
func (c *Catalog) ParentsFirst() []models.Category {
	placed := make(map[string]bool, len(c.Categories))
	ordered := make([]models.Category, 0, len(c.Categories))
	for len(ordered) < len(c.Categories) {
		progressed := false
		for _, cat := range c.Categories {
			if placed[cat.ID] {
				continue
			}
			if cat.ParentID == nil || placed[*cat.ParentID] {
				ordered = append(ordered, cat)
				placed[cat.ID] = true
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return ordered
}

// Slugify lowercases name and joins alphanumeric runs with hyphens.
func Slugify(name string) string {
	return strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(name), "-"), "-")
}
