// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/shreyashpatel5506/smellscan/internal/contract"
	"github.com/shreyashpatel5506/smellscan/internal/repocache"
)

// NewMCPServer initializes and configures the Smellscan MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.GitHubClient, cache *repocache.Cache, history contract.HistoryStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Smellscan Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
		cache:   cache,
		history: history,
	}

	// --- 1. Tool: scan_repository ---
	s.AddTool(mcp.NewTool("scan_repository",
		mcp.WithDescription("Scan a GitHub repository for code smells across maintainability, reliability, performance and security."),
		mcp.WithString("repository", mcp.Description("Repository in <owner>/<repo> form."), mcp.Required()),
		mcp.WithString("branch", mcp.Description("Branch to scan (defaults to the repository's default branch).")),
		mcp.WithString("plan", mcp.Description("Plan tier controlling scan limits (free, pro, enterprise)."), mcp.Enum("free", "pro", "enterprise")),
		mcp.WithString("min_severity", mcp.Description("Only report findings at or above this severity."), mcp.Enum("high", "medium", "low")),
	), h.handleScanRepository)

	// --- 2. Tool: list_smell_rules ---
	s.AddTool(mcp.NewTool("list_smell_rules",
		mcp.WithDescription("List the code smell rule catalog with severities and recommendations."),
		mcp.WithString("category", mcp.Description("Filter rules by category."), mcp.Enum("maintainability", "reliability", "performance", "security")),
	), h.handleListSmellRules)

	// --- 3. Tool: get_scan_history ---
	s.AddTool(mcp.NewTool("get_scan_history",
		mcp.WithDescription("List recorded scan runs from the history store, newest first."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of runs returned.")),
	), h.handleGetScanHistory)

	return s
}

// StartMCPServer starts the Smellscan MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.GitHubClient, cache *repocache.Cache, history contract.HistoryStore) error {
	s := NewMCPServer(baseCfg, client, cache, history)
	return server.ServeStdio(s)
}
