package main

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	"organizeddocs/internal/config"
	"organizeddocs/internal/repository/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}
	if cfg.Environment == "prod" {
		log.Fatal("Refusing to drop tables in production")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }() // Error ignored: script exiting

	tables := postgres.NewTableNames(cfg.TablePrefix)
	names := []string{tables.DocumentCategories, tables.Documents, tables.Categories}

	// Drop all tables with environment-specific prefix
	var dropSQL strings.Builder
	for _, name := range names {
		fmt.Fprintf(&dropSQL, "DROP TABLE IF EXISTS %s CASCADE;\n", name)
	}

	if _, err := db.Exec(dropSQL.String()); err != nil {
		log.Fatalf("Failed to drop tables: %v", err)
	}

	fmt.Printf("All tables dropped successfully (prefix: %s)\n", tables.Prefix)
}
