package main

import (
	"github.com/aretw0/multivar/internal/cli"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the most recent journaled operations",
	Long:  `Reads the computation journal. Only the sqlite backend outlives a single process.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}

		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		entries, err := app.Service.History(cmd.Context(), limit)
		if err != nil {
			return err
		}
		return cli.Print(cmd.OutOrStdout(), format, "history", entries)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "Number of entries to show (0 for all)")
}
