package schema

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSmellRule(t *testing.T) {
	rule, ok := GetSmellRule(EvalUsage)
	require.True(t, ok)
	assert.Equal(t, Security, rule.Category)
	assert.Equal(t, HighSeverity, rule.BaseSeverity)
	assert.Equal(t, "Eval Usage", rule.Title)

	_, ok = GetSmellRule(SmellID("NOT_A_RULE"))
	assert.False(t, ok)
}

func TestAllSmellRulesOrderedAndComplete(t *testing.T) {
	rules := AllSmellRules()
	assert.Len(t, rules, 24)

	ordered := sort.SliceIsSorted(rules, func(i, j int) bool {
		if rules[i].Category != rules[j].Category {
			return rules[i].Category < rules[j].Category
		}
		return rules[i].ID < rules[j].ID
	})
	assert.True(t, ordered)

	for _, rule := range rules {
		assert.NotEmpty(t, rule.Title, "rule %s", rule.ID)
		assert.NotEmpty(t, rule.Description, "rule %s", rule.ID)
		assert.NotEmpty(t, rule.Recommendation, "rule %s", rule.ID)
		assert.Contains(t, AllCategories, rule.Category, "rule %s", rule.ID)
	}
}

func TestSmellRulesByCategory(t *testing.T) {
	security := SmellRulesByCategory(Security)
	require.NotEmpty(t, security)
	for _, rule := range security {
		assert.Equal(t, Security, rule.Category)
	}

	// Category lists partition the catalog.
	total := 0
	for _, category := range AllCategories {
		total += len(SmellRulesByCategory(category))
	}
	assert.Equal(t, len(AllSmellRules()), total)

	assert.Empty(t, SmellRulesByCategory(Category("style")))
}
