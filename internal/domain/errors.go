package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrCorruptTaxonomy  = errors.New("corrupt taxonomy")
	ErrUnsupportedScope = errors.New("unsupported listing scope")
)

// NotFoundError reports a category or document that does not resolve.
// Matches ErrNotFound via errors.Is.
type NotFoundError struct {
	ResourceType string // category, document
	ResourceID   string
}

func (e *NotFoundError) Error() string {
	return e.ResourceType + " " + e.ResourceID + ": not found"
}

func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }

// Is allows errors.Is() to match against ErrNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewCategoryNotFound builds the error returned when a category id or slug does not resolve.
func NewCategoryNotFound(id string) error {
	return &NotFoundError{ResourceType: "category", ResourceID: id}
}

// NewDocumentNotFound builds the error returned when a document id does not resolve.
func NewDocumentNotFound(id string) error {
	return &NotFoundError{ResourceType: "document", ResourceID: id}
}
