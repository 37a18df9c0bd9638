package detect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shreyashpatel5506/smellscan/schema"
)

// Rule is one detection heuristic. Evaluate must be pure and safe for
// concurrent use across files.
type Rule interface {
	ID() schema.SmellID
	Category() schema.Category
	Evaluate(fctx *FileContext) []schema.SmellFinding
}

// DefaultRules returns the active rule set, grouped by category.
func DefaultRules() []Rule {
	return []Rule{
		largeFileRule{},
		deepNestingRule{},
		excessiveLoggingRule{},
		emptyCatchRule{},
		promiseNoCatchRule{},
		asyncNoTryCatchRule{},
		inlineJSXFunctionRule{},
		heavySyncLoopRule{},
		hardcodedSecretRule{},
		evalUsageRule{},
		openCORSRule{},
	}
}

func finding(id schema.SmellID, cat schema.Category, sev schema.Severity,
	lineStart, lineEnd int, msg string, confidence float64) schema.SmellFinding {
	return schema.SmellFinding{
		ID:         id,
		Category:   cat,
		Severity:   sev,
		LineStart:  lineStart,
		LineEnd:    lineEnd,
		Message:    msg,
		Confidence: confidence,
	}
}

// --- Maintainability ---

type largeFileRule struct{}

func (largeFileRule) ID() schema.SmellID        { return schema.LargeFile }
func (largeFileRule) Category() schema.Category { return schema.Maintainability }

func (r largeFileRule) Evaluate(fctx *FileContext) []schema.SmellFinding {
	if fctx.Metrics.TotalLines <= schema.LargeFileLOC {
		return nil
	}
	end := min(20, fctx.Metrics.TotalLines)
	msg := fmt.Sprintf("File has %d lines (threshold: %d)", fctx.Metrics.TotalLines, schema.LargeFileLOC)
	return []schema.SmellFinding{
		finding(r.ID(), r.Category(), schema.MediumSeverity, 1, end, msg, 0.95),
	}
}

type deepNestingRule struct{}

func (deepNestingRule) ID() schema.SmellID        { return schema.DeepNesting }
func (deepNestingRule) Category() schema.Category { return schema.Maintainability }

func (r deepNestingRule) Evaluate(fctx *FileContext) []schema.SmellFinding {
	if fctx.Metrics.MaxNestingDepth <= schema.MaxNestingDepth {
		return nil
	}
	msg := fmt.Sprintf("Max nesting depth is %d (threshold: %d)", fctx.Metrics.MaxNestingDepth, schema.MaxNestingDepth)
	return []schema.SmellFinding{
		finding(r.ID(), r.Category(), schema.MediumSeverity, 1, fctx.Metrics.TotalLines, msg, 0.9),
	}
}

type excessiveLoggingRule struct{}

func (excessiveLoggingRule) ID() schema.SmellID        { return schema.ExcessiveLogging }
func (excessiveLoggingRule) Category() schema.Category { return schema.Maintainability }

func (r excessiveLoggingRule) Evaluate(fctx *FileContext) []schema.SmellFinding {
	if fctx.Metrics.ConsoleCount <= schema.MaxConsoleLogs {
		return nil
	}
	msg := fmt.Sprintf("Found %d console calls (threshold: %d)", fctx.Metrics.ConsoleCount, schema.MaxConsoleLogs)
	return []schema.SmellFinding{
		finding(r.ID(), r.Category(), schema.LowSeverity, 1, fctx.Metrics.TotalLines, msg, 0.85),
	}
}

// --- Reliability ---

var (
	catchBlock = regexp.MustCompile(`catch\s*\(\w*\)\s*{`)
	thenCall   = regexp.MustCompile(`\.then\s*\(`)
	asyncDecl  = regexp.MustCompile(`\basync\s+function|\basync\s*\(|:\s*async`)
)

type emptyCatchRule struct{}

func (emptyCatchRule) ID() schema.SmellID        { return schema.EmptyCatch }
func (emptyCatchRule) Category() schema.Category { return schema.Reliability }

func (r emptyCatchRule) Evaluate(fctx *FileContext) []schema.SmellFinding {
	var smells []schema.SmellFinding
	for i, line := range fctx.Lines {
		trimmed := strings.TrimSpace(line)
		if !strings.Contains(trimmed, "catch") || !catchBlock.MatchString(trimmed) {
			continue
		}
		next := ""
		if i+1 < len(fctx.Lines) {
			next = strings.TrimSpace(fctx.Lines[i+1])
		}
		if next == "}" || next == "" || strings.HasPrefix(next, "//") {
			smells = append(smells, finding(r.ID(), r.Category(), schema.HighSeverity,
				i+1, i+2, "Empty catch block detected", 0.92))
		}
	}
	return smells
}

type promiseNoCatchRule struct{}

func (promiseNoCatchRule) ID() schema.SmellID        { return schema.PromiseNoCatch }
func (promiseNoCatchRule) Category() schema.Category { return schema.Reliability }

func (r promiseNoCatchRule) Evaluate(fctx *FileContext) []schema.SmellFinding {
	var smells []schema.SmellFinding
	for i, line := range fctx.Lines {
		if !thenCall.MatchString(strings.TrimSpace(line)) {
			continue
		}
		// Look for a .catch within a two-line window around the .then chain.
		window := fctx.Lines[max(0, i-2):min(i+3, len(fctx.Lines))]
		if strings.Contains(strings.Join(window, ""), ".catch") {
			continue
		}
		smells = append(smells, finding(r.ID(), r.Category(), schema.HighSeverity,
			i+1, i+1, "Promise without .catch() handler", 0.8))
	}
	return smells
}

type asyncNoTryCatchRule struct{}

func (asyncNoTryCatchRule) ID() schema.SmellID        { return schema.AsyncNoTryCatch }
func (asyncNoTryCatchRule) Category() schema.Category { return schema.Reliability }

func (r asyncNoTryCatchRule) Evaluate(fctx *FileContext) []schema.SmellFinding {
	asyncCount := 0
	hasTryBlock := false
	for _, line := range fctx.Lines {
		trimmed := strings.TrimSpace(line)
		if asyncDecl.MatchString(trimmed) {
			asyncCount++
		}
		if strings.Contains(trimmed, "try {") {
			hasTryBlock = true
		}
	}
	if asyncCount <= 2 || hasTryBlock {
		return nil
	}
	msg := fmt.Sprintf("%d async functions detected but no try/catch found", asyncCount)
	return []schema.SmellFinding{
		finding(r.ID(), r.Category(), schema.HighSeverity, 1, min(10, len(fctx.Lines)), msg, 0.75),
	}
}

// --- Performance ---

var (
	jsxHandler  = regexp.MustCompile(`onClick|onChange|onSubmit`)
	inlineArrow = regexp.MustCompile(`\(\)\s*=>`)
	loopStart   = regexp.MustCompile(`for\s*\(|while\s*\(`)
	heavyOp     = regexp.MustCompile(`fetch|await|\.map\(|\.filter\(`)
)

type inlineJSXFunctionRule struct{}

func (inlineJSXFunctionRule) ID() schema.SmellID        { return schema.InlineJSXFunction }
func (inlineJSXFunctionRule) Category() schema.Category { return schema.Performance }

func (r inlineJSXFunctionRule) Evaluate(fctx *FileContext) []schema.SmellFinding {
	if !fctx.React {
		return nil
	}
	var smells []schema.SmellFinding
	for i, line := range fctx.Lines {
		trimmed := strings.TrimSpace(line)
		if jsxHandler.MatchString(trimmed) && inlineArrow.MatchString(trimmed) {
			smells = append(smells, finding(r.ID(), r.Category(), schema.MediumSeverity,
				i+1, i+1, "Inline function in JSX causes unnecessary re-renders", 0.88))
		}
	}
	return smells
}

type heavySyncLoopRule struct{}

func (heavySyncLoopRule) ID() schema.SmellID        { return schema.HeavySyncLoop }
func (heavySyncLoopRule) Category() schema.Category { return schema.Performance }

func (r heavySyncLoopRule) Evaluate(fctx *FileContext) []schema.SmellFinding {
	var smells []schema.SmellFinding
	for i, line := range fctx.Lines {
		if !loopStart.MatchString(strings.TrimSpace(line)) {
			continue
		}
		end := min(i+10, len(fctx.Lines))
		heavy := 0
		for _, body := range fctx.Lines[i:end] {
			if heavyOp.MatchString(body) {
				heavy++
			}
		}
		if heavy > 3 {
			smells = append(smells, finding(r.ID(), r.Category(), schema.MediumSeverity,
				i+1, end, "Heavy operations in synchronous loop detected", 0.7))
		}
	}
	return smells
}

// --- Security ---

var (
	secretPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)api[_-]?key\s*[:=]`),
		regexp.MustCompile(`(?i)secret\s*[:=]`),
		regexp.MustCompile(`(?i)password\s*[:=]`),
		regexp.MustCompile(`(?i)token\s*[:=]`),
		regexp.MustCompile(`(?i)bearer\s+`),
	}
	stringLiteral = regexp.MustCompile("['\"`][^'\"`]*['\"`]")
	evalCall      = regexp.MustCompile(`\beval\s*\(|new\s+Function\s*\(`)
	corsKeyword   = regexp.MustCompile(`(?i)cors|origin|Access-Control`)
	corsOpenValue = regexp.MustCompile(`\*|true|undefined`)
)

type hardcodedSecretRule struct{}

func (hardcodedSecretRule) ID() schema.SmellID        { return schema.HardcodedSecret }
func (hardcodedSecretRule) Category() schema.Category { return schema.Security }

func (r hardcodedSecretRule) Evaluate(fctx *FileContext) []schema.SmellFinding {
	var smells []schema.SmellFinding
	for i, line := range fctx.Lines {
		trimmed := strings.TrimSpace(line)
		if !stringLiteral.MatchString(trimmed) {
			continue
		}
		for _, pattern := range secretPatterns {
			if pattern.MatchString(trimmed) {
				smells = append(smells, finding(r.ID(), r.Category(), schema.HighSeverity,
					i+1, i+1, "Potential hardcoded secret detected", 0.82))
			}
		}
	}
	return smells
}

type evalUsageRule struct{}

func (evalUsageRule) ID() schema.SmellID        { return schema.EvalUsage }
func (evalUsageRule) Category() schema.Category { return schema.Security }

func (r evalUsageRule) Evaluate(fctx *FileContext) []schema.SmellFinding {
	var smells []schema.SmellFinding
	for i, line := range fctx.Lines {
		if evalCall.MatchString(strings.TrimSpace(line)) {
			smells = append(smells, finding(r.ID(), r.Category(), schema.HighSeverity,
				i+1, i+1, "Usage of eval() or Function() constructor", 0.98))
		}
	}
	return smells
}

type openCORSRule struct{}

func (openCORSRule) ID() schema.SmellID        { return schema.OpenCORS }
func (openCORSRule) Category() schema.Category { return schema.Security }

func (r openCORSRule) Evaluate(fctx *FileContext) []schema.SmellFinding {
	var smells []schema.SmellFinding
	for i, line := range fctx.Lines {
		trimmed := strings.TrimSpace(line)
		if corsKeyword.MatchString(trimmed) && corsOpenValue.MatchString(trimmed) {
			smells = append(smells, finding(r.ID(), r.Category(), schema.HighSeverity,
				i+1, i+1, "CORS allows requests from any origin", 0.85))
		}
	}
	return smells
}
