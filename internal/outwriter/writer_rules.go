package outwriter

import (
	"encoding/csv"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/shreyashpatel5506/smellscan/internal/contract"
	"github.com/shreyashpatel5506/smellscan/schema"
)

// writeRulesTable prints the rule catalog as a table.
func writeRulesTable(w io.Writer, cfg *contract.Config, rules []schema.SmellRule) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Category", "Severity", "Title", "Recommendation"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, rule := range rules {
		label := contract.GetPlainLabel(rule.BaseSeverity)
		if cfg.Color {
			label = contract.GetColorLabel(rule.BaseSeverity)
		}
		data = append(data, []string{
			string(rule.ID),
			string(rule.Category),
			label,
			rule.Title,
			rule.Recommendation,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeRulesCSV writes the rule catalog as CSV.
func writeRulesCSV(w io.Writer, rules []schema.SmellRule) error {
	header := []string{"id", "category", "base_severity", "title", "description", "recommendation"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, rule := range rules {
			row := []string{
				string(rule.ID),
				string(rule.Category),
				string(rule.BaseSeverity),
				rule.Title,
				rule.Description,
				rule.Recommendation,
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
