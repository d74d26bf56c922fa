// Package ai implements the AI collaborator contracts against Gemini.
// The analytics core treats these as opaque capabilities; every call
// here may block on the network and failures surface to the caller
// untouched - retry and timeout policy belongs upstream.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/moneymind/backend/internal/categorize"
	"github.com/moneymind/backend/internal/domain"
	"github.com/moneymind/backend/internal/insights"
	"google.golang.org/genai"
)

// DefaultModelName is the Gemini model used for classification and
// insight generation.
const DefaultModelName = "gemini-2.5-flash"

// CategoryLister supplies the active category taxonomy for prompt
// construction and for resolving model answers back to categories.
// This is a minimal interface to avoid depending on the full store.
type CategoryLister interface {
	GetActive(ctx context.Context) ([]*domain.Category, error)
}

// Gemini implements categorize.AIService and insights.InsightAI.
type Gemini struct {
	client     *genai.Client
	categories CategoryLister
	model      string
}

// NewGemini creates a Gemini-backed AI service. Credentials come from
// the environment, same as any genai client.
func NewGemini(ctx context.Context, categories CategoryLister, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("NewGemini: create genai client: %w", err)
	}
	if model == "" {
		model = DefaultModelName
	}
	return &Gemini{client: client, categories: categories, model: model}, nil
}

// Categorize asks the model to pick exactly one active category for the
// transaction and resolves the answer against the taxonomy.
func (g *Gemini) Categorize(ctx context.Context, description, merchant string, amount domain.Money) (*domain.Category, error) {
	active, err := g.categories.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("Categorize: list categories: %w", err)
	}
	if len(active) == 0 {
		return nil, fmt.Errorf("Categorize: no active categories")
	}

	prompt := buildCategorizePrompt(active, description, merchant, amount)

	raw, err := g.generateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("Categorize: %w", err)
	}

	var answer struct {
		Category string `json:"category"`
	}
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &answer); err != nil {
		return nil, fmt.Errorf("Categorize: unmarshal model answer: %w\nraw response: %s", err, raw)
	}

	category := findCategoryByName(active, answer.Category)
	if category == nil {
		return nil, fmt.Errorf("Categorize: model returned unknown category %q", answer.Category)
	}
	return category, nil
}

// SuggestCategories asks the model for ranked category suggestions with
// confidences. Names that do not resolve against the taxonomy are
// dropped; confidences are clamped into [0, 1].
func (g *Gemini) SuggestCategories(ctx context.Context, description string) ([]categorize.CategorySuggestion, error) {
	active, err := g.categories.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("SuggestCategories: list categories: %w", err)
	}
	if len(active) == 0 {
		return nil, fmt.Errorf("SuggestCategories: no active categories")
	}

	prompt := buildSuggestPrompt(active, description)

	raw, err := g.generateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("SuggestCategories: %w", err)
	}

	var answers []struct {
		Category   string  `json:"category"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &answers); err != nil {
		return nil, fmt.Errorf("SuggestCategories: unmarshal model answer: %w\nraw response: %s", err, raw)
	}

	var suggestions []categorize.CategorySuggestion
	for _, a := range answers {
		category := findCategoryByName(active, a.Category)
		if category == nil {
			continue
		}
		confidence := a.Confidence
		if confidence < 0 {
			confidence = 0
		}
		if confidence > 1 {
			confidence = 1
		}
		suggestions = append(suggestions, categorize.CategorySuggestion{
			Category:   category,
			Confidence: confidence,
		})
	}
	return suggestions, nil
}

// GenerateInsights hands the aggregated structures to the model and
// parses the returned insight list. Unknown type/severity values fail
// the call rather than degrade silently.
func (g *Gemini) GenerateInsights(ctx context.Context, patterns insights.SpendingPatterns, analysis map[string]insights.BudgetPerformance) ([]insights.Insight, error) {
	prompt, err := buildInsightsPrompt(patterns, analysis)
	if err != nil {
		return nil, fmt.Errorf("GenerateInsights: %w", err)
	}

	raw, err := g.generateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("GenerateInsights: %w", err)
	}

	var answers []struct {
		Title       string         `json:"title"`
		Description string         `json:"description"`
		Type        string         `json:"type"`
		Severity    string         `json:"severity"`
		Data        map[string]any `json:"data"`
	}
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &answers); err != nil {
		return nil, fmt.Errorf("GenerateInsights: unmarshal model answer: %w\nraw response: %s", err, raw)
	}

	result := make([]insights.Insight, 0, len(answers))
	for _, a := range answers {
		insightType, err := insights.ParseInsightType(a.Type)
		if err != nil {
			return nil, fmt.Errorf("GenerateInsights: %w", err)
		}
		severity, err := insights.ParseSeverity(a.Severity)
		if err != nil {
			return nil, fmt.Errorf("GenerateInsights: %w", err)
		}
		data := a.Data
		if data == nil {
			data = map[string]any{}
		}
		result = append(result, insights.Insight{
			Title:       a.Title,
			Description: a.Description,
			Type:        insightType,
			Severity:    severity,
			Data:        data,
		})
	}
	return result, nil
}

func (g *Gemini) generateText(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

func findCategoryByName(categories []*domain.Category, name string) *domain.Category {
	for _, c := range categories {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c
		}
	}
	return nil
}

// cleanModelJSON strips Markdown fences and surrounding junk the model
// sometimes emits despite instructions, keeping only the outermost JSON
// value.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	// Keep only from the first JSON opener to its matching closer.
	objStart := strings.Index(s, "{")
	arrStart := strings.Index(s, "[")
	if arrStart != -1 && (objStart == -1 || arrStart < objStart) {
		if end := strings.LastIndex(s, "]"); end > arrStart {
			return strings.TrimSpace(s[arrStart : end+1])
		}
	}
	if objStart != -1 {
		if end := strings.LastIndex(s, "}"); end > objStart {
			return strings.TrimSpace(s[objStart : end+1])
		}
	}
	return s
}

var (
	_ categorize.AIService = (*Gemini)(nil)
	_ insights.InsightAI   = (*Gemini)(nil)
)
