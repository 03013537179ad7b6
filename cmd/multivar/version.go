package main

import (
	"fmt"

	"github.com/aretw0/multivar"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of multivar",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "multivar version %s\n", multivar.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
