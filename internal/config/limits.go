package config

const (
	// MaxCategoryDepth bounds parent-chain walks. A chain longer than this
	// is treated as a corrupt (cyclic) taxonomy.
	MaxCategoryDepth = 64

	// MaxCategoryNameLength is the maximum length for category names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxCategoryNameLength = 255

	// MaxDocumentTitleLength is the maximum length for document titles.
	MaxDocumentTitleLength = 255

	// MaxFetchConcurrency caps concurrent document queries per listing.
	// Stays well under the pool's MaxConns so one listing cannot starve others.
	MaxFetchConcurrency = 16
)
