package main

import (
	"context"

	"github.com/aretw0/cfrac/internal/cli"
	"github.com/spf13/cobra"
)

var expandCmd = &cobra.Command{
	Use:   "expand P/Q",
	Short: "Expand a rational into its continued fraction",
	Example: `  cfrac expand 415/93
  cfrac expand -- -3/7
  cfrac expand 178/110 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(cmd, func(ctx context.Context, rt *cli.Runtime, out cli.Output) error {
			return cli.RunExpand(ctx, rt.Engine, args[0], out)
		})
	},
}

func init() {
	rootCmd.AddCommand(expandCmd)
}
