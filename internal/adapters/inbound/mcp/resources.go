package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const catalogURI = "aquacheck://challenges"

func registerResources(s *server.MCPServer, catalog Catalog) {
	s.AddResource(
		mcplib.NewResource(
			catalogURI,
			"Challenge Catalog",
			mcplib.WithResourceDescription("All lab challenges with hints, lectures and solutions"),
			mcplib.WithMIMEType("application/json"),
		),
		handleCatalogResource(catalog),
	)

	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			catalogURI+"/{id}",
			"Challenge",
			mcplib.WithTemplateDescription("One lab challenge by number"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleChallengeResource(catalog),
	)
}

func handleCatalogResource(catalog Catalog) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cat, err := catalog.Catalog(ctx, false)
		if err != nil {
			return nil, fmt.Errorf("listing challenges: %w", err)
		}
		return jsonContents(catalogURI, cat)
	}
}

func handleChallengeResource(catalog Catalog) server.ResourceTemplateHandlerFunc {
	return func(ctx context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		id, err := templateID(request.Params.Arguments["id"])
		if err != nil {
			return nil, err
		}
		ch, err := catalog.Challenge(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("loading challenge %d: %w", id, err)
		}
		return jsonContents(request.Params.URI, ch)
	}
}

// templateID reads the {id} template variable, which mcp-go may deliver as
// a string or a single-element slice.
func templateID(v any) (int, error) {
	switch x := v.(type) {
	case []string:
		if len(x) > 0 {
			return templateID(x[0])
		}
	case string:
		id, err := strconv.Atoi(x)
		if err != nil {
			return 0, fmt.Errorf("invalid challenge id %q", x)
		}
		return id, nil
	}
	return 0, fmt.Errorf("challenge id is required")
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
