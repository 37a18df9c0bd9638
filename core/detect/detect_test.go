package detect

import (
	"strings"
	"testing"

	"github.com/shreyashpatel5506/smellscan/schema"
	"github.com/stretchr/testify/assert"
)

func findSmell(smells []schema.SmellFinding, id schema.SmellID) *schema.SmellFinding {
	for i := range smells {
		if smells[i].ID == id {
			return &smells[i]
		}
	}
	return nil
}

func TestAnalyzeMetricsBasic(t *testing.T) {
	content := strings.Join([]string{
		"// header comment",
		"",
		"/*",
		" * block comment",
		" */",
		"function greet(name) {",
		"  console.log(name);",
		"}",
	}, "\n")

	analysis := Detect(content, "src/greet.js")
	m := analysis.Metrics

	assert.Equal(t, 8, m.TotalLines)
	assert.Equal(t, 4, m.CommentLines)
	assert.Equal(t, 1, m.BlankLines)
	assert.Equal(t, 3, m.CodeLines)
	assert.Equal(t, 1, m.Functions)
	assert.Equal(t, 1, m.ConsoleCount)
	assert.Equal(t, 1, m.MaxNestingDepth)
	assert.Equal(t, schema.JavaScript, analysis.Language)
}

func TestAnalyzeMetricsComplexityFloor(t *testing.T) {
	analysis := Detect("const x = 1;", "a.js")
	assert.Equal(t, 1, analysis.Metrics.Complexity)
}

func TestAnalyzeMetricsAsyncFunctions(t *testing.T) {
	content := strings.Join([]string{
		"const load = async () => {",
		"};",
		"function sync() {",
		"}",
	}, "\n")
	m := Detect(content, "a.ts").Metrics
	assert.Equal(t, 1, m.AsyncFunctions)
	assert.Equal(t, 1, m.Functions)
}

func TestDetectLargeFile(t *testing.T) {
	lines := make([]string, 1200)
	for i := range lines {
		lines[i] = "const x = 1;"
	}
	analysis := Detect(strings.Join(lines, "\n"), "src/big.ts")

	smell := findSmell(analysis.Smells, schema.LargeFile)
	assert.NotNil(t, smell)
	assert.Equal(t, schema.MediumSeverity, smell.Severity)
	assert.Equal(t, 1, smell.LineStart)
	assert.Equal(t, 20, smell.LineEnd)
	assert.InDelta(t, 0.95, smell.Confidence, 0.001)
	assert.Contains(t, smell.Message, "1200 lines")
}

func TestDetectLargeFileBoundary(t *testing.T) {
	// Exactly at the threshold is not a finding.
	lines := make([]string, schema.LargeFileLOC)
	for i := range lines {
		lines[i] = "let y = 2;"
	}
	analysis := Detect(strings.Join(lines, "\n"), "src/edge.ts")
	assert.Nil(t, findSmell(analysis.Smells, schema.LargeFile))
}

func TestDetectDeepNesting(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 7; i++ {
		b.WriteString("if (x) {\n")
	}
	for i := 0; i < 7; i++ {
		b.WriteString("}\n")
	}
	analysis := Detect(b.String(), "src/nest.js")

	smell := findSmell(analysis.Smells, schema.DeepNesting)
	assert.NotNil(t, smell)
	assert.Equal(t, schema.MediumSeverity, smell.Severity)
	assert.Equal(t, 7, analysis.Metrics.MaxNestingDepth)
}

func TestDetectExcessiveLogging(t *testing.T) {
	lines := make([]string, 6)
	for i := range lines {
		lines[i] = "console.log('x');"
	}
	analysis := Detect(strings.Join(lines, "\n"), "src/noisy.js")

	smell := findSmell(analysis.Smells, schema.ExcessiveLogging)
	assert.NotNil(t, smell)
	assert.Equal(t, schema.LowSeverity, smell.Severity)
}

func TestDetectEmptyCatch(t *testing.T) {
	content := strings.Join([]string{
		"try {",
		"  risky();",
		"} catch (e) {",
		"}",
	}, "\n")
	analysis := Detect(content, "src/x.js")

	smell := findSmell(analysis.Smells, schema.EmptyCatch)
	assert.NotNil(t, smell)
	assert.Equal(t, schema.HighSeverity, smell.Severity)
	assert.Equal(t, 3, smell.LineStart)
	assert.Equal(t, 4, smell.LineEnd)
}

func TestDetectCatchWithBodyIsClean(t *testing.T) {
	content := strings.Join([]string{
		"try {",
		"  risky();",
		"} catch (e) {",
		"  report(e);",
		"}",
	}, "\n")
	analysis := Detect(content, "src/x.js")
	assert.Nil(t, findSmell(analysis.Smells, schema.EmptyCatch))
}

func TestDetectPromiseNoCatch(t *testing.T) {
	analysis := Detect("fetchData().then((d) => use(d));", "src/p.js")
	smell := findSmell(analysis.Smells, schema.PromiseNoCatch)
	assert.NotNil(t, smell)
	assert.Equal(t, schema.HighSeverity, smell.Severity)
}

func TestDetectPromiseWithCatchNearbyIsClean(t *testing.T) {
	content := strings.Join([]string{
		"fetchData()",
		"  .then((d) => use(d))",
		"  .catch((e) => report(e));",
	}, "\n")
	analysis := Detect(content, "src/p.js")
	assert.Nil(t, findSmell(analysis.Smells, schema.PromiseNoCatch))
}

func TestDetectAsyncNoTryCatch(t *testing.T) {
	content := strings.Join([]string{
		"async function a() { return 1; }",
		"async function b() { return 2; }",
		"async function c() { return 3; }",
	}, "\n")
	analysis := Detect(content, "src/svc.ts")

	smell := findSmell(analysis.Smells, schema.AsyncNoTryCatch)
	assert.NotNil(t, smell)
	assert.Equal(t, schema.HighSeverity, smell.Severity)
	assert.Contains(t, smell.Message, "3 async functions")
}

func TestDetectAsyncWithTryIsClean(t *testing.T) {
	content := strings.Join([]string{
		"async function a() { return 1; }",
		"async function b() { return 2; }",
		"async function c() {",
		"  try {",
		"    return 3;",
		"  } catch (e) {",
		"    report(e);",
		"  }",
		"}",
	}, "\n")
	analysis := Detect(content, "src/svc.ts")
	assert.Nil(t, findSmell(analysis.Smells, schema.AsyncNoTryCatch))
}

func TestDetectTwoAsyncBelowThreshold(t *testing.T) {
	content := strings.Join([]string{
		"async function a() { return 1; }",
		"async function b() { return 2; }",
	}, "\n")
	analysis := Detect(content, "src/svc.ts")
	assert.Nil(t, findSmell(analysis.Smells, schema.AsyncNoTryCatch))
}

func TestDetectInlineJSXFunction(t *testing.T) {
	content := `<button onClick={() => handle()}>Go</button>`
	analysis := Detect(content, "src/Button.tsx")

	smell := findSmell(analysis.Smells, schema.InlineJSXFunction)
	assert.NotNil(t, smell)
	assert.Equal(t, schema.MediumSeverity, smell.Severity)
}

func TestDetectInlineJSXSkippedOutsideReact(t *testing.T) {
	content := `element.onClick = () => handle();`
	analysis := Detect(content, "src/handler.js")
	assert.Nil(t, findSmell(analysis.Smells, schema.InlineJSXFunction))
}

func TestDetectHardcodedSecret(t *testing.T) {
	analysis := Detect(`const key = "sk_live_abc123"; const apiKey = "xyz";`, "src/cfg.js")
	smell := findSmell(analysis.Smells, schema.HardcodedSecret)
	assert.NotNil(t, smell)
	assert.Equal(t, schema.HighSeverity, smell.Severity)
	assert.InDelta(t, 0.82, smell.Confidence, 0.001)
}

func TestDetectSecretWithoutLiteralIsClean(t *testing.T) {
	analysis := Detect("const apiKey = process.env.API_KEY;", "src/cfg.js")
	assert.Nil(t, findSmell(analysis.Smells, schema.HardcodedSecret))
}

func TestDetectEvalUsage(t *testing.T) {
	analysis := Detect("eval(userInput);", "src/danger.js")
	smell := findSmell(analysis.Smells, schema.EvalUsage)
	assert.NotNil(t, smell)
	assert.InDelta(t, 0.98, smell.Confidence, 0.001)
}

func TestDetectOpenCORS(t *testing.T) {
	analysis := Detect(`res.setHeader("Access-Control-Allow-Origin", "*");`, "src/api.js")
	smell := findSmell(analysis.Smells, schema.OpenCORS)
	assert.NotNil(t, smell)
	assert.Equal(t, schema.HighSeverity, smell.Severity)
}

func TestDetectSortsBySeverityThenLine(t *testing.T) {
	content := strings.Join([]string{
		"console.log(1);",
		"console.log(2);",
		"console.log(3);",
		"console.log(4);",
		"console.log(5);",
		"console.log(6);",
		"eval(x);",
	}, "\n")
	analysis := Detect(content, "src/mix.js")

	assert.GreaterOrEqual(t, len(analysis.Smells), 2)
	for i := 1; i < len(analysis.Smells); i++ {
		prev, cur := analysis.Smells[i-1], analysis.Smells[i]
		prevRank := schema.SeverityRank(prev.Severity)
		curRank := schema.SeverityRank(cur.Severity)
		assert.LessOrEqual(t, prevRank, curRank)
		if prevRank == curRank {
			assert.LessOrEqual(t, prev.LineStart, cur.LineStart)
		}
	}
}

func TestDetectEmptyContent(t *testing.T) {
	analysis := Detect("", "src/empty.js")
	assert.Empty(t, analysis.Smells)
	assert.Equal(t, 1, analysis.Metrics.TotalLines)
}
