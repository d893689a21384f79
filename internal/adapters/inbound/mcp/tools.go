package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/shellcon/aquacheck/internal/domain"
)

func registerTools(s *server.MCPServer, verifier Verifier, catalog Catalog) {
	s.AddTool(
		mcplib.NewTool("aquacheck_verify",
			mcplib.WithDescription("Verify a lab challenge against the learner's current source and return the verdict as JSON"),
			mcplib.WithString("challenge",
				mcplib.Required(),
				mcplib.Description("Challenge number (1-5) or category name (async_io, query_optimization, memory_allocation, resource_leak, concurrency)"),
			),
		),
		handleVerify(verifier),
	)

	s.AddTool(
		mcplib.NewTool("aquacheck_list_challenges",
			mcplib.WithDescription("List the lab challenges with hints and learning material"),
			mcplib.WithBoolean("status", mcplib.Description("Verify every challenge and report its current status")),
		),
		handleListChallenges(catalog),
	)
}

func handleVerify(verifier Verifier) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		arg, err := challengeArg(request)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		category, err := domain.ParseCategory(arg)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		v, err := verifier.Verify(ctx, category)
		if err != nil {
			return errorResult(fmt.Sprintf("verification failed: %v", err)), nil
		}
		return jsonResult(v)
	}
}

// challengeArg accepts the challenge as a string or a JSON number.
func challengeArg(request mcplib.CallToolRequest) (string, error) {
	switch v := request.GetArguments()["challenge"].(type) {
	case string:
		if v != "" {
			return v, nil
		}
	case float64:
		return strconv.Itoa(int(v)), nil
	}
	return "", fmt.Errorf("required argument \"challenge\" not found")
}

func handleListChallenges(catalog Catalog) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cat, err := catalog.Catalog(ctx, request.GetBool("status", false))
		if err != nil {
			return errorResult(fmt.Sprintf("listing challenges failed: %v", err)), nil
		}
		return jsonResult(cat)
	}
}

func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
