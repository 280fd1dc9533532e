package main

import (
	"context"
	"flag"
	"log"
	"os"

	"organizeddocs/internal/config"
	"organizeddocs/internal/repository/postgres"
	postgresDocsys "organizeddocs/internal/repository/postgres/docsystem"
	"organizeddocs/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't load the catalog")
	clearData := flag.Bool("clear-data", false, "Clear all categories and documents (keep schema)")
	catalogFile := flag.String("catalog", "", "Catalog YAML to load (defaults to CATALOG_FILE)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if *catalogFile != "" {
		cfg.CatalogFile = *catalogFile
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}
	if cfg.DatabaseURL == "" {
		log.Fatalf("DATABASE_URL is required for seeding")
	}

	logger := config.NewLogger(cfg, os.Stdout)

	if *clearData {
		log.Printf("🧹 Clearing data only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database from %s (environment: %s, prefix: %s)", cfg.CatalogFile, cfg.Environment, cfg.TablePrefix)
	}

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		dropped, err := postgres.DropAllTables(ctx, pool, tables)
		for _, table := range dropped {
			log.Printf("  ✓ Dropped %s", table)
		}
		if err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	log.Println("📋 Ensuring database schema is up to date...")
	if err := postgres.RunSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	if *clearData {
		log.Println("🧹 Clearing existing categories and documents...")
		if err := postgres.ClearData(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("✅ Data cleared successfully")
		return
	}

	catalog, err := seed.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	seeder := seed.NewCatalogSeeder(
		postgresDocsys.NewCategoryRepository(repoConfig),
		postgresDocsys.NewDocumentRepository(repoConfig),
		postgres.NewTransactionManager(pool, logger),
		logger,
	)

	// Replace any previous catalog so reseeding is repeatable
	log.Println("⚠️  Clearing existing categories and documents...")
	if err := postgres.ClearData(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to clear data: %v", err)
	}

	if err := seeder.Seed(ctx, catalog); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	log.Printf("✅ Seeded %d categories and %d documents", len(catalog.Categories), len(catalog.Documents))
}
