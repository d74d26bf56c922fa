package categorize

import (
	"strings"

	"github.com/moneymind/backend/internal/domain"
)

// KeywordRule maps a set of keywords to a category. A rule matches when
// any keyword appears in the transaction description or merchant,
// case-insensitively.
type KeywordRule struct {
	Keywords   []string
	Category   *domain.Category
	Confidence float64
}

// KeywordRuleEngine is the deterministic fast path: a flat table of
// keyword rules checked in order, first match wins. It satisfies
// RuleEngine.
type KeywordRuleEngine struct {
	rules []KeywordRule
}

// NewKeywordRuleEngine builds an engine from an ordered rule table.
// Keywords are normalized to lower case once, at construction.
func NewKeywordRuleEngine(rules []KeywordRule) *KeywordRuleEngine {
	normalized := make([]KeywordRule, len(rules))
	for i, rule := range rules {
		keywords := make([]string, len(rule.Keywords))
		for j, kw := range rule.Keywords {
			keywords[j] = strings.ToLower(kw)
		}
		normalized[i] = KeywordRule{
			Keywords:   keywords,
			Category:   rule.Category,
			Confidence: rule.Confidence,
		}
	}
	return &KeywordRuleEngine{rules: normalized}
}

// Categorize returns the first matching rule's category and confidence,
// or nil when no rule matches.
func (e *KeywordRuleEngine) Categorize(t *domain.Transaction) *CategoryResult {
	haystack := strings.ToLower(t.Description)
	if t.Merchant != "" {
		haystack += " " + strings.ToLower(t.Merchant)
	}

	for _, rule := range e.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(haystack, kw) {
				return &CategoryResult{Category: rule.Category, Confidence: rule.Confidence}
			}
		}
	}
	return nil
}

var _ RuleEngine = (*KeywordRuleEngine)(nil)
