package cmd

import (
	"github.com/shreyashpatel5506/smellscan/internal/iocache"
	"github.com/shreyashpatel5506/smellscan/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Smellscan MCP server",
	Long:  `Launch an MCP server that allows AI agents to scan repositories and browse the rule catalog via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Stdout carries the protocol in MCP mode, so setup must keep
		// its own chatter on stderr.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, ghClient, scanCache, iocache.Store())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
