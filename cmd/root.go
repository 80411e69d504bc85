package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/string-analyzer/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "stranalyzer",
	Short: "Analyze, store and query strings",
	Long: `stranalyzer computes properties of strings (length, palindrome status,
unique characters, word count, SHA-256 hash, character frequencies), stores
them in SQLite and answers structured or plain-English queries over the
stored set through a REST API, a WebSocket console, MCP tools and the CLI.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
