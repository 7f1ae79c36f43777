package main

import (
	"log"
	"os"

	"github.com/aretw0/cfrac/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the engine as an MCP Server, exposing expand, reconstruct,
convergents and approximate as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		cfg, rt, err := setupRuntime(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		mcpCfg := cfg.MCP
		if cmd.Flags().Changed("transport") {
			mcpCfg.Transport, _ = cmd.Flags().GetString("transport")
		}
		if cmd.Flags().Changed("port") {
			mcpCfg.Port, _ = cmd.Flags().GetInt("port")
		}

		rt.Logger.Info("Starting cfrac MCP Server", "transport", mcpCfg.Transport)
		return cli.RunMCP(ctx, rt, mcpCfg)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse' (overrides mcp.transport)")
	mcpCmd.Flags().Int("port", 8081, "Port to listen on, only for SSE (overrides mcp.port)")
}
