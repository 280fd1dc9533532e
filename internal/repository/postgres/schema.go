package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunSchema creates the docs tables if they don't exist
func RunSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	createCategories := `
		CREATE TABLE IF NOT EXISTS ` + tables.Categories + ` (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			parent_id TEXT REFERENCES ` + tables.Categories + `(id) ON DELETE CASCADE,
			sort_order INTEGER,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			CHECK (parent_id IS NULL OR parent_id <> id)
		)
	`
	if _, err := pool.Exec(ctx, createCategories); err != nil {
		return fmt.Errorf("create %s: %w", tables.Categories, err)
	}

	createDocuments := `
		CREATE TABLE IF NOT EXISTS ` + tables.Documents + ` (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			published_at TIMESTAMPTZ NOT NULL,
			modified_at TIMESTAMPTZ NOT NULL,
			sort_order INTEGER,
			permalink TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT ''
		)
	`
	if _, err := pool.Exec(ctx, createDocuments); err != nil {
		return fmt.Errorf("create %s: %w", tables.Documents, err)
	}

	// position keeps a document's category order; the first link is its primary category
	createLinks := `
		CREATE TABLE IF NOT EXISTS ` + tables.DocumentCategories + ` (
			document_id TEXT NOT NULL REFERENCES ` + tables.Documents + `(id) ON DELETE CASCADE,
			category_id TEXT NOT NULL REFERENCES ` + tables.Categories + `(id) ON DELETE CASCADE,
			position INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (document_id, category_id)
		)
	`
	if _, err := pool.Exec(ctx, createLinks); err != nil {
		return fmt.Errorf("create %s: %w", tables.DocumentCategories, err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tables.Prefix + `doc_categories_parent ON ` + tables.Categories + `(parent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tables.Prefix + `doc_category_links_category ON ` + tables.DocumentCategories + `(category_id)`,
	}
	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}

// DropAllTables drops the docs tables in reverse dependency order
func DropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) ([]string, error) {
	tableNames := []string{
		tables.DocumentCategories,
		tables.Documents,
		tables.Categories,
	}

	dropped := make([]string, 0, len(tableNames))
	for _, table := range tableNames {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return dropped, fmt.Errorf("drop %s: %w", table, err)
		}
		dropped = append(dropped, table)
	}

	return dropped, nil
}

// ClearData removes all rows but keeps the schema
func ClearData(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	_, err := pool.Exec(ctx, "TRUNCATE "+tables.DocumentCategories+", "+tables.Documents+", "+tables.Categories)
	if err != nil {
		return fmt.Errorf("clear data: %w", err)
	}
	return nil
}
