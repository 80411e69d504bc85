package cmd

import (
	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/string-analyzer/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing string analysis and query tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// Stdout carries the protocol, so the logger must stay on stderr.
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		svc, database, err := openService(cfg, log, nil)
		if err != nil {
			return err
		}
		defer database.Close()

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		log.Info("stranalyzer MCP server started on stdio")
		return mcpserver.NewServer(svc, log).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
