package main

import (
	"context"

	"github.com/aretw0/cfrac/internal/cli"
	"github.com/spf13/cobra"
)

var convergentsCmd = &cobra.Command{
	Use:     "convergents P/Q",
	Short:   "List the convergents of a rational",
	Example: `  cfrac convergents 355/113 -o markdown`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(cmd, func(ctx context.Context, rt *cli.Runtime, out cli.Output) error {
			return cli.RunConvergents(ctx, rt.Engine, args[0], out)
		})
	},
}

func init() {
	rootCmd.AddCommand(convergentsCmd)
}
