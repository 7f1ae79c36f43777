package main

import (
	"context"

	"github.com/aretw0/cfrac/internal/cli"
	"github.com/spf13/cobra"
)

var approximateCmd = &cobra.Command{
	Use:   "approximate P/Q",
	Short: "Find the closest fraction whose denominator fits a bound",
	Example: `  cfrac approximate 314159/100000 --max-den 100
  cfrac approximate 355/113 --max-den 10 -o mermaid`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxDen, _ := cmd.Flags().GetInt64("max-den")
		return runOperation(cmd, func(ctx context.Context, rt *cli.Runtime, out cli.Output) error {
			return cli.RunApproximate(ctx, rt.Engine, args[0], maxDen, out)
		})
	},
}

func init() {
	rootCmd.AddCommand(approximateCmd)
	approximateCmd.Flags().Int64("max-den", 1000, "Largest allowed denominator")
}
