package config

import (
	"fmt"
	"os"
	"strconv"

	"organizeddocs/internal/domain/models/docsystem"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string // Empty = serve the in-memory catalog from CatalogFile
	CatalogFile string
	CORSOrigins string
	TablePrefix string
	// Listing options
	SingleSortBy       string // date, title-alphabetical, explicit-order
	SingleSortOrder    string // asc, desc
	IncludeDescendants bool
	OrderTopLevel      bool
	FetchConcurrency   int
	// Logging
	LogDir      string
	LogMaxFiles int
	// Debug flags
	Debug bool
}

// ListingConfig is the subset of options consumed by the listing builder.
type ListingConfig struct {
	Strategy           docsystem.SortStrategy
	Direction          docsystem.SortDirection
	IncludeDescendants bool
	OrderTopLevel      bool
	FetchConcurrency   int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        env,
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		CatalogFile:        getEnv("CATALOG_FILE", "catalog.yaml"),
		CORSOrigins:        getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:        getTablePrefix(env),
		SingleSortBy:       getEnv("SINGLE_SORT_BY", string(docsystem.DefaultSortStrategy)),
		SingleSortOrder:    getEnv("SINGLE_SORT_ORDER", string(docsystem.SortAscending)),
		IncludeDescendants: getEnv("LISTING_INCLUDE_DESCENDANTS", "false") == "true",
		OrderTopLevel:      getEnv("ORDER_TOP_LEVEL", "false") == "true",
		FetchConcurrency:   getEnvInt("LISTING_FETCH_CONCURRENCY", 4),
		LogDir:             getEnv("LOG_DIR", ""),
		LogMaxFiles:        getEnvInt("LOG_MAX_FILES", 10),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// Validate checks option values before any service is built.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required),
		validation.Field(&c.Environment, validation.Required, validation.In("dev", "test", "prod")),
		validation.Field(&c.CatalogFile, validation.When(c.DatabaseURL == "", validation.Required)),
		validation.Field(&c.SingleSortBy, validation.By(func(value interface{}) error {
			_, err := docsystem.ParseSortStrategy(value.(string))
			return err
		})),
		validation.Field(&c.SingleSortOrder, validation.By(func(value interface{}) error {
			_, err := docsystem.ParseSortDirection(value.(string))
			return err
		})),
		validation.Field(&c.FetchConcurrency, validation.Min(1), validation.Max(MaxFetchConcurrency)),
		validation.Field(&c.LogMaxFiles, validation.Min(1)),
	)
}

// Listing resolves the listing options. Call Validate first.
func (c *Config) Listing() (ListingConfig, error) {
	strategy, err := docsystem.ParseSortStrategy(c.SingleSortBy)
	if err != nil {
		return ListingConfig{}, err
	}
	direction, err := docsystem.ParseSortDirection(c.SingleSortOrder)
	if err != nil {
		return ListingConfig{}, err
	}
	concurrency := c.FetchConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return ListingConfig{
		Strategy:           strategy,
		Direction:          direction,
		IncludeDescendants: c.IncludeDescendants,
		OrderTopLevel:      c.OrderTopLevel,
		FetchConcurrency:   concurrency,
	}, nil
}

// DefaultListingConfig is the configuration used when no options are set.
func DefaultListingConfig() ListingConfig {
	return ListingConfig{
		Strategy:         docsystem.DefaultSortStrategy,
		Direction:        docsystem.SortAscending,
		FetchConcurrency: 1,
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s=%q is not an integer, using %d\n", key, value, defaultValue)
		return defaultValue
	}
	return n
}
