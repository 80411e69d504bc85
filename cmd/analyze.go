package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/string-analyzer/internal/analyzer"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Print the computed properties of a string without storing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(cmd.OutOrStdout(), analyzer.Compute(args[0]))
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
