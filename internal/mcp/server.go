// Package mcp exposes the Docs listings as MCP tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"organizeddocs/internal/domain"
	models "organizeddocs/internal/domain/models/docsystem"
	docsysSvc "organizeddocs/internal/domain/services/docsystem"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const Version = "0.1.0"

// DefaultEndpoint is the path the streamable HTTP transport listens on
const DefaultEndpoint = "/mcp"

type ListDocsRequest struct {
	CategoryID string `json:"category_id"` // Empty lists the top-level categories
}

type TopLevelAncestorRequest struct {
	CategoryID string `json:"category_id"`
}

type TableOfContentsRequest struct {
	DocumentID string `json:"document_id"`
}

// NewServer creates an MCP server with the listDocs, topLevelAncestor and
// tableOfContents tools
func NewServer(resolver docsysSvc.TaxonomyResolver, builder docsysSvc.ListingBuilder, logger *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"Organized Docs MCP",
		Version,
		server.WithToolCapabilities(false),
	)

	listDocsTool := mcp.NewTool("listDocs",
		mcp.WithDescription("List Docs categories and documents. Without category_id returns the top-level categories; with it returns that category's listing, nested by subcategory when it has children"),
		mcp.WithString("category_id",
			mcp.Description("Category to list (omit for the top-level index)"),
		),
	)
	s.AddTool(listDocsTool, mcp.NewTypedToolHandler(listDocsHandler(builder, logger)))

	ancestorTool := mcp.NewTool("topLevelAncestor",
		mcp.WithDescription("Resolve the top-level category a category belongs to"),
		mcp.WithString("category_id",
			mcp.Required(),
			mcp.Description("Category to resolve"),
		),
	)
	s.AddTool(ancestorTool, mcp.NewTypedToolHandler(topLevelAncestorHandler(resolver, logger)))

	tocTool := mcp.NewTool("tableOfContents",
		mcp.WithDescription("List the top-level section a document belongs to, used as its table of contents"),
		mcp.WithString("document_id",
			mcp.Required(),
			mcp.Description("Document to build the table of contents for"),
		),
	)
	s.AddTool(tocTool, mcp.NewTypedToolHandler(tableOfContentsHandler(builder, logger)))

	return s
}

// NewHTTPServer wraps s in the streamable HTTP transport
func NewHTTPServer(s *server.MCPServer, endpoint string) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(s, server.WithEndpointPath(endpoint))
}

func listDocsHandler(builder docsysSvc.ListingBuilder, logger *slog.Logger) func(ctx context.Context, request mcp.CallToolRequest, args ListDocsRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args ListDocsRequest) (*mcp.CallToolResult, error) {
		listingCtx := models.TopLevelContext()
		if args.CategoryID != "" {
			listingCtx = models.CategoryContext(args.CategoryID)
		}

		listing, err := builder.BuildListing(ctx, listingCtx)
		if err != nil {
			return toolError(logger, "list docs", err)
		}
		return jsonResult(listing)
	}
}

func topLevelAncestorHandler(resolver docsysSvc.TaxonomyResolver, logger *slog.Logger) func(ctx context.Context, request mcp.CallToolRequest, args TopLevelAncestorRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args TopLevelAncestorRequest) (*mcp.CallToolResult, error) {
		if args.CategoryID == "" {
			return mcp.NewToolResultError("category_id is required"), nil
		}

		ancestor, err := resolver.TopLevelAncestorOf(ctx, args.CategoryID)
		if err != nil {
			return toolError(logger, "resolve top-level ancestor", err)
		}
		return jsonResult(ancestor)
	}
}

func tableOfContentsHandler(builder docsysSvc.ListingBuilder, logger *slog.Logger) func(ctx context.Context, request mcp.CallToolRequest, args TableOfContentsRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args TableOfContentsRequest) (*mcp.CallToolResult, error) {
		if args.DocumentID == "" {
			return mcp.NewToolResultError("document_id is required"), nil
		}

		listing, err := builder.TableOfContents(ctx, args.DocumentID)
		if err != nil {
			return toolError(logger, "build table of contents", err)
		}
		return jsonResult(listing)
	}
}

// toolError reports caller mistakes as tool errors. Anything else is logged
// and reported without internals.
func toolError(logger *slog.Logger, op string, err error) (*mcp.CallToolResult, error) {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
		return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", op, err)), nil
	}
	logger.Error("mcp tool failed", "op", op, "error", err)
	return mcp.NewToolResultError(fmt.Sprintf("failed to %s: internal error", op)), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
