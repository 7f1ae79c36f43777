package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/cfrac"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cfrac",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cfrac version %s\n", strings.TrimSpace(cfrac.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
