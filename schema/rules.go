package schema

import "sort"

// SmellRule is a static catalog entry describing a rule. The catalog is
// read-only reference data and is never instantiated per scan. It includes
// rules that no heuristic currently emits; those document the taxonomy for
// downstream consumers.
type SmellRule struct {
	ID             SmellID  `json:"id"`
	Category       Category `json:"category"`
	BaseSeverity   Severity `json:"baseSeverity"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
}

// Smell rule identifiers.
const (
	LargeFile           SmellID = "LARGE_FILE"
	LargeFunction       SmellID = "LARGE_FUNCTION"
	DeepNesting         SmellID = "DEEP_NESTING"
	TooManyParameters   SmellID = "TOO_MANY_PARAMETERS"
	DuplicateLogic      SmellID = "DUPLICATE_LOGIC"
	UnusedVariable      SmellID = "UNUSED_VARIABLE"
	UnusedImport        SmellID = "UNUSED_IMPORT"
	ExcessiveLogging    SmellID = "EXCESSIVE_LOGGING"
	AsyncNoTryCatch     SmellID = "ASYNC_NO_TRY_CATCH"
	PromiseNoCatch      SmellID = "PROMISE_NO_CATCH"
	EmptyCatch          SmellID = "EMPTY_CATCH"
	SilentErrorSwallow  SmellID = "SILENT_ERROR_SWALLOW"
	MutableGlobalState  SmellID = "MUTABLE_GLOBAL_STATE"
	LargeReactComponent SmellID = "LARGE_REACT_COMPONENT"
	InlineJSXFunction   SmellID = "INLINE_JSX_FUNCTION"
	HeavySyncLoop       SmellID = "HEAVY_SYNC_LOOP"
	UnmemoizedEffect    SmellID = "UNMEMOIZED_EFFECT"
	ExcessiveImports    SmellID = "EXCESSIVE_IMPORTS"
	HardcodedSecret     SmellID = "HARDCODED_SECRET"
	EvalUsage           SmellID = "EVAL_USAGE"
	UnsanitizedInput    SmellID = "UNSANITIZED_INPUT"
	OpenCORS            SmellID = "OPEN_CORS"
	ClientSideSecret    SmellID = "CLIENT_SIDE_SECRET"
	SQLInjectionRisk    SmellID = "SQL_INJECTION_RISK"
)

var smellRules = map[SmellID]SmellRule{
	LargeFile: {
		ID: LargeFile, Category: Maintainability, BaseSeverity: MediumSeverity,
		Title:          "Large File",
		Description:    "File exceeds recommended size limit",
		Recommendation: "Consider splitting into smaller modules",
	},
	LargeFunction: {
		ID: LargeFunction, Category: Maintainability, BaseSeverity: MediumSeverity,
		Title:          "Large Function",
		Description:    "Function is too long and handles multiple concerns",
		Recommendation: "Extract logic into smaller, focused functions",
	},
	DeepNesting: {
		ID: DeepNesting, Category: Maintainability, BaseSeverity: MediumSeverity,
		Title:          "Deep Nesting",
		Description:    "Code has excessive nesting levels",
		Recommendation: "Use early returns and guard clauses",
	},
	TooManyParameters: {
		ID: TooManyParameters, Category: Maintainability, BaseSeverity: MediumSeverity,
		Title:          "Too Many Parameters",
		Description:    "Function has too many parameters",
		Recommendation: "Use object parameter or config object",
	},
	DuplicateLogic: {
		ID: DuplicateLogic, Category: Maintainability, BaseSeverity: MediumSeverity,
		Title:          "Duplicated Code",
		Description:    "Code is duplicated in multiple places",
		Recommendation: "Extract to a shared function or utility",
	},
	UnusedVariable: {
		ID: UnusedVariable, Category: Maintainability, BaseSeverity: LowSeverity,
		Title:          "Unused Variable",
		Description:    "Variable is declared but never used",
		Recommendation: "Remove unused variable or use it",
	},
	UnusedImport: {
		ID: UnusedImport, Category: Maintainability, BaseSeverity: LowSeverity,
		Title:          "Unused Import",
		Description:    "Import is declared but never used",
		Recommendation: "Remove unused import",
	},
	ExcessiveLogging: {
		ID: ExcessiveLogging, Category: Maintainability, BaseSeverity: LowSeverity,
		Title:          "Excessive Logging",
		Description:    "Too many console.log statements",
		Recommendation: "Use proper logging library or remove debug logs",
	},
	AsyncNoTryCatch: {
		ID: AsyncNoTryCatch, Category: Reliability, BaseSeverity: HighSeverity,
		Title:          "Missing Error Handling",
		Description:    "Async function without try/catch error handling",
		Recommendation: "Wrap in try/catch or handle promise rejection",
	},
	PromiseNoCatch: {
		ID: PromiseNoCatch, Category: Reliability, BaseSeverity: HighSeverity,
		Title:          "Unhandled Promise",
		Description:    "Promise chain without .catch() handler",
		Recommendation: "Add .catch() handler or use try/catch",
	},
	EmptyCatch: {
		ID: EmptyCatch, Category: Reliability, BaseSeverity: HighSeverity,
		Title:          "Empty Catch Block",
		Description:    "Catch block is empty or only logs silently",
		Recommendation: "Add proper error handling or re-throw",
	},
	SilentErrorSwallow: {
		ID: SilentErrorSwallow, Category: Reliability, BaseSeverity: HighSeverity,
		Title:          "Silent Error Swallowing",
		Description:    "Errors are caught but not logged or handled",
		Recommendation: "Log or re-throw errors appropriately",
	},
	MutableGlobalState: {
		ID: MutableGlobalState, Category: Reliability, BaseSeverity: HighSeverity,
		Title:          "Mutable Global State",
		Description:    "Code modifies global/module-level state",
		Recommendation: "Use dependency injection or scoped state",
	},
	LargeReactComponent: {
		ID: LargeReactComponent, Category: Performance, BaseSeverity: MediumSeverity,
		Title:          "Large React Component",
		Description:    "React component file is too large",
		Recommendation: "Extract logic into custom hooks or child components",
	},
	InlineJSXFunction: {
		ID: InlineJSXFunction, Category: Performance, BaseSeverity: MediumSeverity,
		Title:          "Inline JSX Function",
		Description:    "Function defined inline in JSX causes re-renders",
		Recommendation: "Move function outside component or use useCallback",
	},
	HeavySyncLoop: {
		ID: HeavySyncLoop, Category: Performance, BaseSeverity: MediumSeverity,
		Title:          "Heavy Synchronous Loop",
		Description:    "Synchronous loop with heavy operations",
		Recommendation: "Use batch processing or debouncing",
	},
	UnmemoizedEffect: {
		ID: UnmemoizedEffect, Category: Performance, BaseSeverity: MediumSeverity,
		Title:          "Unmemoized Hook Dependency",
		Description:    "useEffect/useMemo missing or incorrect dependency array",
		Recommendation: "Add proper dependency array to hook",
	},
	ExcessiveImports: {
		ID: ExcessiveImports, Category: Performance, BaseSeverity: LowSeverity,
		Title:          "Excessive Imports",
		Description:    "Many imports from single module",
		Recommendation: "Consider code splitting or tree-shaking",
	},
	HardcodedSecret: {
		ID: HardcodedSecret, Category: Security, BaseSeverity: HighSeverity,
		Title:          "Hardcoded Secret",
		Description:    "API key, token, or password in source code",
		Recommendation: "Move to environment variables or secrets manager",
	},
	EvalUsage: {
		ID: EvalUsage, Category: Security, BaseSeverity: HighSeverity,
		Title:          "Eval Usage",
		Description:    "Using eval() or Function() constructor",
		Recommendation: "Use safer alternatives like JSON.parse or libraries",
	},
	UnsanitizedInput: {
		ID: UnsanitizedInput, Category: Security, BaseSeverity: HighSeverity,
		Title:          "Unsanitized User Input",
		Description:    "User input used without validation/sanitization",
		Recommendation: "Validate and sanitize all user inputs",
	},
	OpenCORS: {
		ID: OpenCORS, Category: Security, BaseSeverity: HighSeverity,
		Title:          "Open CORS Policy",
		Description:    "CORS allows requests from any origin",
		Recommendation: "Restrict CORS to specific trusted origins",
	},
	ClientSideSecret: {
		ID: ClientSideSecret, Category: Security, BaseSeverity: HighSeverity,
		Title:          "Secret in Client Code",
		Description:    "Sensitive data in browser-accessible code",
		Recommendation: "Move secrets to server-side only",
	},
	SQLInjectionRisk: {
		ID: SQLInjectionRisk, Category: Security, BaseSeverity: HighSeverity,
		Title:          "SQL Injection Risk",
		Description:    "Unsanitized SQL query construction",
		Recommendation: "Use parameterized queries or ORM",
	},
}

// GetSmellRule returns the catalog entry for an ID.
func GetSmellRule(id SmellID) (SmellRule, bool) {
	rule, ok := smellRules[id]
	return rule, ok
}

// AllSmellRules returns the full catalog ordered by category then ID.
func AllSmellRules() []SmellRule {
	rules := make([]SmellRule, 0, len(smellRules))
	for _, r := range smellRules {
		rules = append(rules, r)
	}
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Category != rules[j].Category {
			return rules[i].Category < rules[j].Category
		}
		return rules[i].ID < rules[j].ID
	})
	return rules
}

// SmellRulesByCategory returns the catalog entries for one category, ordered by ID.
func SmellRulesByCategory(c Category) []SmellRule {
	var rules []SmellRule
	for _, r := range smellRules {
		if r.Category == c {
			rules = append(rules, r)
		}
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules
}
