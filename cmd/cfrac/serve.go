package main

import (
	"os"

	"github.com/aretw0/cfrac/internal/cli"
	"github.com/aretw0/cfrac/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the engine as a JSON API over HTTP.
Routes: POST /expand, /reconstruct, /convergents, /approximate; GET /cache,
/health, /info, /metrics, /openapi.yaml and /swagger.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		cfg, rt, err := setupRuntime(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(cmd.OutOrStdout())
		}

		if err := cli.RunServe(ctx, rt, port); err != nil {
			return err
		}
		rt.Logger.Info("HTTP Server stopped gracefully", "signal", ctx.Signal())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides server.port)")
}
