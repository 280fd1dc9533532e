package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	"organizeddocs/internal/domain"
	models "organizeddocs/internal/domain/models/docsystem"
	docsysRepo "organizeddocs/internal/domain/repositories/docsystem"

	"organizeddocs/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryColumns = "id, name, slug, parent_id, sort_order"

// PostgresCategoryRepository implements the CategoryRepository interface
type PostgresCategoryRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(config *postgres.RepositoryConfig) docsysRepo.CategoryRepository {
	return &PostgresCategoryRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetByID retrieves a category by ID
func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, categoryColumns, r.tables.Categories)

	executor := postgres.GetExecutor(ctx, r.pool)
	category, err := scanCategory(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, domain.NewCategoryNotFound(id)
		}
		return nil, postgres.WrapQueryError("get category", err)
	}

	return category, nil
}

// GetBySlug retrieves a category by its archive slug
func (r *PostgresCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE slug = $1`, categoryColumns, r.tables.Categories)

	executor := postgres.GetExecutor(ctx, r.pool)
	category, err := scanCategory(executor.QueryRow(ctx, query, slug))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, domain.NewCategoryNotFound(slug)
		}
		return nil, postgres.WrapQueryError("get category by slug", err)
	}

	return category, nil
}

// ListByIDs retrieves categories in the order of ids
func (r *PostgresCategoryRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Category, error) {
	if len(ids) == 0 {
		return []models.Category{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = ANY($1::text[])
		ORDER BY array_position($1::text[], id)
	`, categoryColumns, r.tables.Categories)

	return r.list(ctx, "list categories by id", query, ids)
}

// ListChildIDs lists immediate children ordered by name, then id
func (r *PostgresCategoryRepository) ListChildIDs(ctx context.Context, id string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT id
		FROM %s
		WHERE parent_id = $1
		ORDER BY name, id
	`, r.tables.Categories)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, id)
	if err != nil {
		return nil, postgres.WrapQueryError("list child categories", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan child category ids: %w", err)
	}

	return ids, nil
}

// ListTopLevel lists parentless categories ordered by name, then id
func (r *PostgresCategoryRepository) ListTopLevel(ctx context.Context) ([]models.Category, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE parent_id IS NULL
		ORDER BY name, id
	`, categoryColumns, r.tables.Categories)

	return r.list(ctx, "list top-level categories", query)
}

// Create inserts a category. The parent must already exist.
func (r *PostgresCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, slug, parent_id, sort_order)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.Categories)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		category.ID,
		category.Name,
		category.Slug,
		category.ParentID,
		category.SortOrder,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return fmt.Errorf("%w: category %q or slug %q already exists", domain.ErrValidation, category.ID, category.Slug)
		}
		if postgres.IsPgForeignKeyError(err) && category.ParentID != nil {
			return fmt.Errorf("parent of category %q: %w", category.ID, domain.NewCategoryNotFound(*category.ParentID))
		}
		return postgres.WrapQueryError("create category", err)
	}

	r.logger.Debug("category created", "id", category.ID, "slug", category.Slug)
	return nil
}

func (r *PostgresCategoryRepository) list(ctx context.Context, op, query string, args ...any) ([]models.Category, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.WrapQueryError(op, err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		categories = append(categories, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return categories, nil
}

func scanCategory(row pgx.Row) (*models.Category, error) {
	var category models.Category
	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.ParentID,
		&category.SortOrder,
	)
	if err != nil {
		return nil, err
	}
	return &category, nil
}
