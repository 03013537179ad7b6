package main

import (
	"github.com/aretw0/multivar/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [worksheet]",
	Short: "Run every task of a worksheet file",
	Long: `Runs a YAML or JSON worksheet: a named list of tasks, each an operation with
the same parameters the HTTP API accepts. Failed tasks are reported and the run
continues; the command exits non-zero if any task failed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}

		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		return cli.RunWorksheet(cmd.Context(), app, args[0], cmd.OutOrStdout(), format)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
