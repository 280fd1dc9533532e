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

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *postgres.RepositoryConfig) docsysRepo.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// documentSelect selects document columns plus category ids in link order
func (r *PostgresDocumentRepository) documentSelect() string {
	return fmt.Sprintf(`
		SELECT d.id, d.title, d.published_at, d.modified_at, d.sort_order, d.permalink, d.author,
			COALESCE(
				(SELECT array_agg(l.category_id ORDER BY l.position, l.category_id)
				 FROM %s l WHERE l.document_id = d.id),
				'{}'::text[]
			) AS category_ids
		FROM %s d
	`, r.tables.DocumentCategories, r.tables.Documents)
}

// GetByID retrieves a document by ID
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := r.documentSelect() + ` WHERE d.id = $1`

	executor := postgres.GetExecutor(ctx, r.pool)
	doc, err := scanDocument(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, domain.NewDocumentNotFound(id)
		}
		return nil, postgres.WrapQueryError("get document", err)
	}

	return doc, nil
}

// QueryByCategories lists documents linked to any requested category. With
// IncludeDescendants the category set is expanded through a recursive CTE;
// UNION drops revisited rows so a malformed parent chain still terminates.
// Results are ordered by id; callers apply the listing order.
func (r *PostgresDocumentRepository) QueryByCategories(ctx context.Context, q *models.DocumentQuery) ([]models.Document, error) {
	if len(q.CategoryIDs) == 0 {
		return []models.Document{}, nil
	}

	query := fmt.Sprintf(`
		WITH RECURSIVE scope AS (
			SELECT id FROM %[1]s WHERE id = ANY($1::text[])
			UNION
			SELECT c.id FROM %[1]s c JOIN scope s ON c.parent_id = s.id WHERE $2::boolean
		)
	`, r.tables.Categories) + r.documentSelect() + fmt.Sprintf(`
		WHERE EXISTS (
			SELECT 1 FROM %s l JOIN scope s ON s.id = l.category_id
			WHERE l.document_id = d.id
		)
		ORDER BY d.id
	`, r.tables.DocumentCategories)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, q.CategoryIDs, q.IncludeDescendants)
	if err != nil {
		return nil, postgres.WrapQueryError("query documents by category", err)
	}
	defer rows.Close()

	docs := make([]models.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query documents by category: %w", err)
	}

	r.logger.Debug("documents queried",
		"category_ids", q.CategoryIDs,
		"include_descendants", q.IncludeDescendants,
		"count", len(docs),
	)

	return docs, nil
}

// Create inserts a document and its category links. Link position follows
// CategoryIDs so the first category stays the primary one.
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	insertDoc := fmt.Sprintf(`
		INSERT INTO %s (id, title, published_at, modified_at, sort_order, permalink, author)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, insertDoc,
		doc.ID,
		doc.Title,
		doc.PublishedAt,
		doc.ModifiedAt,
		doc.SortOrder,
		doc.Permalink,
		doc.Author,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return fmt.Errorf("%w: document %q already exists", domain.ErrValidation, doc.ID)
		}
		return postgres.WrapQueryError("create document", err)
	}

	insertLink := fmt.Sprintf(`
		INSERT INTO %s (document_id, category_id, position)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`, r.tables.DocumentCategories)

	for position, categoryID := range doc.CategoryIDs {
		if _, err := executor.Exec(ctx, insertLink, doc.ID, categoryID, position); err != nil {
			if postgres.IsPgForeignKeyError(err) {
				return fmt.Errorf("link document %q: %w", doc.ID, domain.NewCategoryNotFound(categoryID))
			}
			return postgres.WrapQueryError("link document category", err)
		}
	}

	return nil
}

func scanDocument(row pgx.Row) (*models.Document, error) {
	var doc models.Document
	err := row.Scan(
		&doc.ID,
		&doc.Title,
		&doc.PublishedAt,
		&doc.ModifiedAt,
		&doc.SortOrder,
		&doc.Permalink,
		&doc.Author,
		&doc.CategoryIDs,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
