package main

import (
	"context"
	"flag"
	"log"
	"os"

	"organizeddocs/internal/config"
	"organizeddocs/internal/mcp"
	"organizeddocs/internal/repository"
	serviceDocsys "organizeddocs/internal/service/docsystem"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	// Define command line flags
	httpAddr := flag.String("http", "", "HTTP server address (e.g., ':8081'); stdio when empty")
	endpoint := flag.String("endpoint", mcp.DefaultEndpoint, "HTTP endpoint path")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// stdout carries the stdio transport, so logs go to stderr
	logger := config.NewLogger(cfg, os.Stderr)

	ctx := context.Background()
	stores, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer stores.Close()

	listingCfg, err := cfg.Listing()
	if err != nil {
		log.Fatalf("Invalid listing configuration: %v", err)
	}
	resolver := serviceDocsys.NewTaxonomyResolver(stores.Categories, logger)
	builder, err := serviceDocsys.NewListingBuilder(resolver, stores.Documents, listingCfg, logger)
	if err != nil {
		log.Fatalf("Failed to create listing builder: %v", err)
	}

	s := mcp.NewServer(resolver, builder, logger)

	if *httpAddr != "" {
		logger.Info("starting MCP server", "addr", *httpAddr, "endpoint", *endpoint, "backend", stores.Backend)
		if err := mcp.NewHTTPServer(s, *endpoint).Start(*httpAddr); err != nil {
			log.Fatal(err)
		}
		return
	}

	logger.Info("starting MCP server in stdio mode", "backend", stores.Backend)
	if err := server.ServeStdio(s); err != nil {
		log.Fatal(err)
	}
}
