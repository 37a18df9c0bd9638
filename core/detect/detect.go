// Package detect runs the code smell rules over fetched file contents.
//
// Detection is pure: one file in, one FileAnalysis out, no I/O. Each rule
// inspects a shared FileContext so the line split and metrics pass happen
// exactly once per file regardless of how many rules run.
package detect

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shreyashpatel5506/smellscan/schema"
)

// FileContext is the per-file input shared by all rules.
type FileContext struct {
	Path    string
	Lines   []string
	Metrics schema.Metrics
	Lang    schema.Language
	React   bool
}

var reactHint = regexp.MustCompile(`(?i)react`)

// Detect analyzes one file with the default rule set and returns its
// findings sorted by severity then starting line.
func Detect(content, filePath string) schema.FileAnalysis {
	return DetectWith(content, filePath, DefaultRules())
}

// DetectWith analyzes one file with an explicit rule set.
func DetectWith(content, filePath string, rules []Rule) schema.FileAnalysis {
	lines := strings.Split(content, "\n")
	fctx := &FileContext{
		Path:    filePath,
		Lines:   lines,
		Metrics: analyzeMetrics(lines),
		Lang:    schema.LanguageForPath(filePath),
	}
	fctx.React = fctx.Lang == schema.JSX || fctx.Lang == schema.TSX ||
		reactHint.MatchString(content)

	smells := []schema.SmellFinding{}
	for _, rule := range rules {
		smells = append(smells, rule.Evaluate(fctx)...)
	}
	sort.SliceStable(smells, func(i, j int) bool {
		ri, rj := schema.SeverityRank(smells[i].Severity), schema.SeverityRank(smells[j].Severity)
		if ri != rj {
			return ri < rj
		}
		return smells[i].LineStart < smells[j].LineStart
	})

	return schema.FileAnalysis{
		Path:     filePath,
		Language: fctx.Lang,
		Metrics:  fctx.Metrics,
		Smells:   smells,
	}
}

var (
	functionDecl  = regexp.MustCompile(`\bfunction\s+\w+|=>\s*\{|:\s*\(\)?\s*=>`)
	constFuncDecl = regexp.MustCompile(`const\s+\w+\s*=\s*(?:async\s*)?\(`)
	consoleCall   = regexp.MustCompile(`console\.(log|warn|error|debug)`)
	branchKeyword = regexp.MustCompile(`if|else|case|catch|for|while`)
)

// analyzeMetrics computes the structural summary in a single pass over
// the lines. Block comment tracking is line-granular: a line containing
// "/*" flips comment state until a line containing "*/".
func analyzeMetrics(lines []string) schema.Metrics {
	m := schema.Metrics{TotalLines: len(lines)}
	depth := 0
	inBlockComment := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		m.Complexity += len(branchKeyword.FindAllString(trimmed, -1))

		if strings.Contains(trimmed, "/*") {
			inBlockComment = true
		}
		if inBlockComment {
			m.CommentLines++
			if strings.Contains(trimmed, "*/") {
				inBlockComment = false
			}
			continue
		}
		if strings.HasPrefix(trimmed, "//") {
			m.CommentLines++
			continue
		}
		if trimmed == "" {
			m.BlankLines++
			continue
		}
		m.CodeLines++

		if functionDecl.MatchString(trimmed) || constFuncDecl.MatchString(trimmed) {
			if strings.Contains(trimmed, "async") {
				m.AsyncFunctions++
			} else {
				m.Functions++
			}
		}
		if consoleCall.MatchString(trimmed) {
			m.ConsoleCount++
		}

		depth += strings.Count(trimmed, "{") - strings.Count(trimmed, "}")
		if depth > m.MaxNestingDepth {
			m.MaxNestingDepth = depth
		}
		if depth < 0 {
			depth = 0
		}
	}
	if m.Complexity < 1 {
		m.Complexity = 1
	}
	return m
}
