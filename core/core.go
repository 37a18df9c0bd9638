package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/shreyashpatel5506/smellscan/core/detect"
	"github.com/shreyashpatel5506/smellscan/internal/contract"
	"github.com/shreyashpatel5506/smellscan/internal/outwriter"
	"github.com/shreyashpatel5506/smellscan/internal/repocache"
	"github.com/shreyashpatel5506/smellscan/schema"
)

// ExecuteScan is the entry point for the scan command. It consults the
// report cache (coalescing concurrent scans of the same target), runs
// the pipeline on a miss, and writes the report in the configured
// output mode. A failed scan still writes its partial report before the
// error is returned.
func ExecuteScan(ctx context.Context, cfg *contract.Config, client contract.GitHubClient, cache *repocache.Cache, history contract.HistoryStore) error {
	contract.LogScanHeader(cfg)

	report, err := cache.GetOrStartScan(cfg.Owner, cfg.Repo, cfg.Branch, func() (*schema.ScanReport, error) {
		return ScanRepository(ctx, cfg, client, cache, history)
	})
	if err != nil {
		return err
	}

	display := report
	if cfg.MinSeverity != "" {
		filtered := *report
		filtered.Smells = detect.FilterBySeverity(report.Smells, cfg.MinSeverity)
		display = &filtered
	}
	if err := outwriter.WriteScanReport(cfg, display); err != nil {
		return err
	}
	if report.Failed() {
		return fmt.Errorf("scan failed: %s", strings.Join(report.Errors, "; "))
	}
	return nil
}

// ExecuteRules writes the smell rule catalog.
func ExecuteRules(cfg *contract.Config, category schema.Category) error {
	rules := schema.AllSmellRules()
	if category != "" {
		rules = schema.SmellRulesByCategory(category)
		if len(rules) == 0 {
			return fmt.Errorf("unknown category %q", category)
		}
	}
	return outwriter.WriteSmellRules(cfg, rules)
}
