package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewTableNames(t *testing.T) {
	tests := []struct {
		prefix   string
		expected TableNames
	}{
		{
			prefix: "dev_",
			expected: TableNames{
				Prefix:             "dev_",
				Categories:         "dev_doc_categories",
				Documents:          "dev_docs",
				DocumentCategories: "dev_doc_category_links",
			},
		},
		{
			prefix: "",
			expected: TableNames{
				Categories:         "doc_categories",
				Documents:          "docs",
				DocumentCategories: "doc_category_links",
			},
		},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("prefix %q", tt.prefix), func(t *testing.T) {
			assert.Equal(t, tt.expected, *NewTableNames(tt.prefix))
		})
	}
}

func TestPgErrorClassifiers(t *testing.T) {
	wrap := func(code string) error {
		return fmt.Errorf("exec: %w", &pgconn.PgError{Code: code})
	}

	assert.True(t, IsPgDuplicateError(wrap("23505")))
	assert.False(t, IsPgDuplicateError(wrap("23503")))
	assert.True(t, IsPgForeignKeyError(wrap("23503")))
	assert.True(t, IsPgUndefinedTableError(wrap("42P01")))
	assert.True(t, IsPgNoRowsError(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.False(t, IsPgNoRowsError(errors.New("other")))
	assert.False(t, IsPgDuplicateError(nil))
}

func TestWrapQueryError(t *testing.T) {
	missing := WrapQueryError("list categories", &pgconn.PgError{Code: "42P01"})
	assert.ErrorIs(t, missing, ErrSchemaMissing)

	cause := errors.New("connection reset")
	other := WrapQueryError("list categories", cause)
	assert.ErrorIs(t, other, cause)
	assert.Contains(t, other.Error(), "list categories")
}

func TestGetExecutor_WithoutTransaction(t *testing.T) {
	var pool *pgxpool.Pool
	executor := GetExecutor(context.Background(), pool)
	assert.Equal(t, pool, executor)
}

func TestCreateConnectionPool_InvalidURL(t *testing.T) {
	_, err := CreateConnectionPool(context.Background(), "://not a url")
	assert.Error(t, err)
}
