package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driving/mcp"
	"github.com/rmayank-24/MarketForgeAI/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can generate
launch kits and read saved ones.

By default, the server communicates over stdio using JSON-RPC.
Use --port to serve streamable HTTP instead.

Tools:     generate_launch_kit, build_schedule, list_launch_kits
Resources: marketforge://kits, marketforge://kits/{kitId}

Examples:
  # Stdio mode (default, for desktop assistants)
  marketforge mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  marketforge mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "marketforge": {
        "command": "/path/to/marketforge",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	svc, release, err := newLaunchKit(ctx)
	if err != nil {
		return describeError(err)
	}
	defer release()

	server, err := mcp.NewServer(&mcp.Ports{
		LaunchKit: svc,
		History:   historyService,
	})
	if err != nil {
		return err
	}

	if watchPrompts != nil {
		go func() {
			if err := watchPrompts(ctx); err != nil {
				logger.Warn("prompt hot reload stopped: %v", err)
			}
		}()
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s%s\n", addr, mcp.Endpoint)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
