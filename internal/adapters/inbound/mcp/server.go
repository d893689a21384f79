package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/shellcon/aquacheck/internal/domain"
)

// Verifier renders a verdict for one category.
type Verifier interface {
	Verify(ctx context.Context, c domain.Category) (domain.Verdict, error)
}

// Catalog serves challenge metadata.
type Catalog interface {
	Catalog(ctx context.Context, withStatus bool) (domain.Catalog, error)
	Challenge(ctx context.Context, id int) (domain.Challenge, error)
}

// NewServer creates an MCP server exposing verification and the challenge
// catalog as tools and resources.
func NewServer(verifier Verifier, catalog Catalog, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"aquacheck",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, verifier, catalog)
	registerResources(s, catalog)

	return s
}
