package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/shreyashpatel5506/smellscan/core"
	"github.com/shreyashpatel5506/smellscan/core/detect"
	"github.com/shreyashpatel5506/smellscan/internal/contract"
	"github.com/shreyashpatel5506/smellscan/internal/repocache"
	"github.com/shreyashpatel5506/smellscan/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.GitHubClient
	cache   *repocache.Cache
	history contract.HistoryStore
}

func (h *toolHandler) handleScanRepository(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	owner, repo, err := contract.SplitRepoArg(request.GetString("repository", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid repository: %v", err)), nil
	}
	cfg.Owner = owner
	cfg.Repo = repo
	cfg.Branch = request.GetString("branch", "")

	if p := request.GetString("plan", ""); p != "" {
		tier := schema.PlanTier(p)
		if _, ok := schema.ValidPlanTiers[tier]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid plan: %q", p)), nil
		}
		cfg.Plan = tier
		cfg.Limits = schema.GetScanLimits(tier)
	}
	minSeverity := schema.Severity(request.GetString("min_severity", ""))

	report, err := h.cache.GetOrStartScan(cfg.Owner, cfg.Repo, cfg.Branch, func() (*schema.ScanReport, error) {
		return core.ScanRepository(ctx, cfg, h.client, h.cache, h.history)
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}
	if minSeverity != "" {
		filtered := *report
		filtered.Smells = detect.FilterBySeverity(report.Smells, minSeverity)
		report = &filtered
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListSmellRules(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rules := schema.AllSmellRules()
	if c := request.GetString("category", ""); c != "" {
		rules = schema.SmellRulesByCategory(schema.Category(c))
		if len(rules) == 0 {
			return mcp.NewToolResultError(fmt.Sprintf("unknown category: %q", c)), nil
		}
	}
	jsonData, _ := json.MarshalIndent(rules, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetScanHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 0)
	runs, err := h.history.ListRuns(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history lookup failed: %v", err)), nil
	}
	jsonData, _ := json.MarshalIndent(runs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
