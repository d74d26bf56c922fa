// Package categorize implements two-stage transaction categorization:
// a deterministic rule engine first, with an AI collaborator as the
// fallback for low-confidence or unmatched transactions.
package categorize

import (
	"context"
	"fmt"

	"github.com/moneymind/backend/internal/domain"
)

// ruleConfidenceThreshold is the confidence above which a rule-engine
// match is accepted without consulting the AI collaborator.
// TODO: tunable parameter pending product input; no algorithmic basis
// for the current value.
const ruleConfidenceThreshold = 0.9

// CategoryResult is a rule-engine classification with its confidence.
type CategoryResult struct {
	Category   *domain.Category
	Confidence float64
}

// CategorySuggestion is one AI-suggested category for interactive
// review, with a confidence in [0, 1].
type CategorySuggestion struct {
	Category   *domain.Category
	Confidence float64
}

// RuleEngine is deterministic, human-authored categorization logic.
// Categorize returns nil when no rule matches.
type RuleEngine interface {
	Categorize(t *domain.Transaction) *CategoryResult
}

// AIService is the external classification collaborator. Calls may
// block on the network; errors are the caller's to handle.
type AIService interface {
	Categorize(ctx context.Context, description, merchant string, amount domain.Money) (*domain.Category, error)
	SuggestCategories(ctx context.Context, description string) ([]CategorySuggestion, error)
}

// Service routes each transaction through the rule engine and falls
// back to the AI collaborator. It holds no state of its own.
type Service struct {
	rules RuleEngine
	ai    AIService
}

// NewService wires the two collaborators.
func NewService(rules RuleEngine, ai AIService) *Service {
	return &Service{rules: rules, ai: ai}
}

// CategorizeTransaction classifies one transaction. A rule-engine match
// above the confidence threshold wins outright; everything else goes to
// the AI collaborator. AI failures propagate unretried.
func (s *Service) CategorizeTransaction(ctx context.Context, t *domain.Transaction) (*domain.Category, error) {
	if result := s.rules.Categorize(t); result != nil && result.Confidence > ruleConfidenceThreshold {
		return result.Category, nil
	}

	category, err := s.ai.Categorize(ctx, t.Description, t.Merchant, t.Amount)
	if err != nil {
		return nil, fmt.Errorf("CategorizeTransaction: ai categorize: %w", err)
	}
	return category, nil
}

// SuggestCategories returns AI suggestions for a description. The rule
// engine is not consulted; this path exists for review UIs.
func (s *Service) SuggestCategories(ctx context.Context, description string) ([]CategorySuggestion, error) {
	return s.ai.SuggestCategories(ctx, description)
}
