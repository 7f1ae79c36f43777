package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/cfrac/internal/cli"
	"github.com/aretw0/cfrac/internal/config"
	"github.com/aretw0/cfrac/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cfrac",
	Short: "cfrac expands rational numbers into continued fractions",
	Long: `cfrac computes simple continued fractions of rational numbers, folds
coefficients back into rationals, lists convergents and finds the best
approximation under a denominator bound. It can also serve these operations
over HTTP or as an MCP server.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format: text, json, markdown or mermaid")
}

// loadConfig reads --config and the CFRAC_* environment.
func loadConfig(cmd *cobra.Command) (*config.Config, bool, error) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, false, err
	}
	return cfg, debug, nil
}

// setupRuntime loads configuration and builds the engine shared by every subcommand.
func setupRuntime(ctx context.Context, cmd *cobra.Command) (*config.Config, *cli.Runtime, error) {
	cfg, debug, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	logger, err := cli.NewLogger(cfg.LogLevel, debug)
	if err != nil {
		return nil, nil, err
	}

	rt, err := cli.NewRuntime(ctx, cfg, logger, debug)
	if err != nil {
		return nil, nil, err
	}
	return cfg, rt, nil
}

// newOutput resolves --output. Markdown is rendered through glamour on terminals.
func newOutput(cmd *cobra.Command) (cli.Output, error) {
	raw, _ := cmd.Flags().GetString("output")
	format, err := cli.ParseFormat(raw)
	if err != nil {
		return cli.Output{}, err
	}

	out := cli.Output{W: cmd.OutOrStdout(), Format: format}
	if format == cli.FormatMarkdown && tui.IsTerminal(os.Stdout) {
		render, err := tui.NewRenderer(true)
		if err != nil {
			return cli.Output{}, err
		}
		out.Render = render
	}
	return out, nil
}

// runOperation wires a one-shot computation to the runtime and output.
func runOperation(cmd *cobra.Command, fn func(context.Context, *cli.Runtime, cli.Output) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out, err := newOutput(cmd)
	if err != nil {
		return err
	}

	_, rt, err := setupRuntime(ctx, cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	return fn(ctx, rt, out)
}
