package main

import (
	"context"
	"strings"

	"github.com/aretw0/cfrac/internal/cli"
	"github.com/spf13/cobra"
)

var reconstructCmd = &cobra.Command{
	Use:   "reconstruct COEFFICIENTS...",
	Short: "Fold continued-fraction coefficients back into a rational",
	Example: `  cfrac reconstruct "[3; 7, 16]"
  cfrac reconstruct 4 2 6 7
  cfrac reconstruct -- 0 -2 -3`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(cmd, func(ctx context.Context, rt *cli.Runtime, out cli.Output) error {
			return cli.RunReconstruct(ctx, rt.Engine, strings.Join(args, " "), out)
		})
	},
}

func init() {
	rootCmd.AddCommand(reconstructCmd)
}
