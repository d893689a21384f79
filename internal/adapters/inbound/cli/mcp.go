package cli

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/shellcon/aquacheck/internal/adapters/inbound/mcp"
)

func newMCPCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the aquacheck MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(opts))
	return cmd
}

func newMCPServeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start aquacheck MCP server (stdio)",
		Long:  "Start the aquacheck MCP server using stdio transport so coding assistants can verify challenges and read the catalog.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol, so logs go to stderr.
			a, err := newApp(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close(context.Background()) }()

			s := mcpadapter.NewServer(a.verify, a.catalog, version)
			return server.ServeStdio(s)
		},
	}
}
