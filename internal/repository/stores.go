// Package repository picks the storage backend for the Docs catalog.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"organizeddocs/internal/config"
	"organizeddocs/internal/domain/repositories"
	docsysRepo "organizeddocs/internal/domain/repositories/docsystem"
	"organizeddocs/internal/repository/memory"
	"organizeddocs/internal/repository/postgres"
	postgresDocsys "organizeddocs/internal/repository/postgres/docsystem"
	"organizeddocs/internal/seed"
)

// Backend names
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Stores bundles the repositories every command needs.
type Stores struct {
	Categories docsysRepo.CategoryRepository
	Documents  docsysRepo.DocumentRepository
	TxManager  repositories.TransactionManager
	Backend    string
	close      func()
}

// Close releases the backend's resources
func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open connects to postgres when DATABASE_URL is set. Otherwise it loads
// CATALOG_FILE into an in-memory store.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Stores, error) {
	if cfg.DatabaseURL == "" {
		return openMemory(ctx, cfg.CatalogFile, logger)
	}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	logger.Info("database connected",
		"max_conns", postgres.PoolMaxConns,
		"min_conns", postgres.PoolMinConns,
		"table_prefix", cfg.TablePrefix,
	)

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}

	return &Stores{
		Categories: postgresDocsys.NewCategoryRepository(repoConfig),
		Documents:  postgresDocsys.NewDocumentRepository(repoConfig),
		TxManager:  postgres.NewTransactionManager(pool, logger),
		Backend:    BackendPostgres,
		close:      pool.Close,
	}, nil
}

func openMemory(ctx context.Context, catalogFile string, logger *slog.Logger) (*Stores, error) {
	catalog, err := seed.LoadCatalog(catalogFile)
	if err != nil {
		return nil, err
	}

	store := memory.NewStore()
	stores := &Stores{
		Categories: store.CategoryRepository(),
		Documents:  store.DocumentRepository(),
		TxManager:  store.TransactionManager(),
		Backend:    BackendMemory,
	}

	seeder := seed.NewCatalogSeeder(stores.Categories, stores.Documents, stores.TxManager, logger)
	if err := seeder.Seed(ctx, catalog); err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", catalogFile, err)
	}

	logger.Info("in-memory catalog loaded", "file", catalogFile)
	return stores, nil
}
