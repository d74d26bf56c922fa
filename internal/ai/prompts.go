package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/moneymind/backend/internal/domain"
	"github.com/moneymind/backend/internal/insights"
)

// buildCategoryList renders the active taxonomy for the model,
// distinguishing subcategories by their parent.
func buildCategoryList(categories []*domain.Category) string {
	byID := make(map[string]*domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	var b strings.Builder
	b.WriteString("Use ONLY the following categories:\n\n")
	for _, c := range categories {
		if c.ParentID != "" {
			if parent, ok := byID[c.ParentID]; ok {
				b.WriteString(fmt.Sprintf("- %s (subcategory of %s)\n", c.Name, parent.Name))
				continue
			}
		}
		b.WriteString("- " + c.Name + "\n")
	}
	return b.String()
}

func buildCategorizePrompt(categories []*domain.Category, description, merchant string, amount domain.Money) string {
	var b strings.Builder
	b.WriteString("You are a personal-finance transaction classifier.\n\n")
	b.WriteString("Task:\n")
	b.WriteString("- Assign the single best category to the transaction below.\n")
	b.WriteString("- Output STRICT JSON only (no comments, no extra text).\n")
	b.WriteString("- Output a JSON object: {\"category\": \"<name>\"}.\n\n")

	b.WriteString(buildCategoryList(categories))

	b.WriteString("\nTransaction:\n")
	b.WriteString(fmt.Sprintf("- description: %q\n", description))
	if merchant != "" {
		b.WriteString(fmt.Sprintf("- merchant: %q\n", merchant))
	}
	b.WriteString(fmt.Sprintf("- amount: %s (negative means money OUT)\n\n", amount))

	b.WriteString("Return ONLY valid raw JSON.\n")
	b.WriteString("Do NOT wrap the response in code fences.\n")
	return b.String()
}

func buildSuggestPrompt(categories []*domain.Category, description string) string {
	var b strings.Builder
	b.WriteString("You are a personal-finance transaction classifier.\n\n")
	b.WriteString("Task:\n")
	b.WriteString("- Suggest up to 3 plausible categories for the description below, best first.\n")
	b.WriteString("- Output STRICT JSON only: a JSON array of objects\n")
	b.WriteString("  [{\"category\": \"<name>\", \"confidence\": <number 0..1>}].\n\n")

	b.WriteString(buildCategoryList(categories))

	b.WriteString(fmt.Sprintf("\nDescription: %q\n\n", description))
	b.WriteString("Return ONLY valid raw JSON.\n")
	b.WriteString("Do NOT wrap the response in code fences.\n")
	b.WriteString("Output must begin with \"[\" and end with \"]\".\n")
	return b.String()
}

func buildInsightsPrompt(patterns insights.SpendingPatterns, analysis map[string]insights.BudgetPerformance) (string, error) {
	patternsJSON, err := json.MarshalIndent(patterns, "", "  ")
	if err != nil {
		return "", fmt.Errorf("buildInsightsPrompt: marshal patterns: %w", err)
	}
	analysisJSON, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", fmt.Errorf("buildInsightsPrompt: marshal analysis: %w", err)
	}

	var b strings.Builder
	b.WriteString("You are a personal-finance assistant generating monthly insights.\n\n")
	b.WriteString("Task:\n")
	b.WriteString("- Read the spending patterns and budget analysis below.\n")
	b.WriteString("- Produce 3 to 5 concise, actionable insights.\n")
	b.WriteString("- Output STRICT JSON only: a JSON array of objects with fields\n")
	b.WriteString("  \"title\" (string), \"description\" (string),\n")
	b.WriteString("  \"type\" (one of: pattern, anomaly, suggestion, warning),\n")
	b.WriteString("  \"severity\" (one of: low, medium, high),\n")
	b.WriteString("  \"data\" (object with any supporting numbers).\n\n")

	b.WriteString("Spending patterns (all totals are positive magnitudes):\n")
	b.Write(patternsJSON)
	b.WriteString("\n\nBudget analysis (keyed by category name):\n")
	b.Write(analysisJSON)
	b.WriteString("\n\nReturn ONLY valid raw JSON.\n")
	b.WriteString("Do NOT wrap the response in code fences.\n")
	b.WriteString("Output must begin with \"[\" and end with \"]\".\n")
	return b.String(), nil
}
