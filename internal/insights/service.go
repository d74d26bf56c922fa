// Package insights aggregates spending patterns and budget performance
// and detects statistical spending anomalies. The arithmetic here is
// deterministic local work; narrative generation is delegated to an AI
// collaborator.
package insights

import (
	"context"
	"fmt"
	"math"

	"github.com/moneymind/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Anomaly thresholds in standard deviations.
// TODO: tunable parameters pending product input; the current values
// carry no algorithmic justification.
const (
	anomalyZThreshold = 2.0
	severeZThreshold  = 3.0
)

// InsightAI turns the aggregated structures into narrative insights.
// It is an external network collaborator; errors propagate unretried.
type InsightAI interface {
	GenerateInsights(ctx context.Context, patterns SpendingPatterns, analysis map[string]BudgetPerformance) ([]Insight, error)
}

// Service computes spending analytics over in-memory transaction and
// budget snapshots. It is stateless and safe for concurrent use.
type Service struct {
	ai InsightAI
}

// NewService wires the AI collaborator.
func NewService(ai InsightAI) *Service {
	return &Service{ai: ai}
}

// GenerateMonthlyInsights aggregates the transactions and budgets and
// delegates narrative generation to the AI collaborator. This method
// never fabricates insights itself.
func (s *Service) GenerateMonthlyInsights(ctx context.Context, transactions []*domain.Transaction, budgets []*domain.Budget) ([]Insight, error) {
	patterns := AnalyzeSpendingPatterns(transactions)
	analysis := AnalyzeBudgetPerformance(transactions, budgets)

	generated, err := s.ai.GenerateInsights(ctx, patterns, analysis)
	if err != nil {
		return nil, fmt.Errorf("GenerateMonthlyInsights: %w", err)
	}
	return generated, nil
}

// DetectAnomalies flags expense transactions whose amount lies more
// than anomalyZThreshold population standard deviations from the mean
// expense. It is self-contained: no AI involvement.
//
// The z-score uses the signed amounts of expenses only. A zero standard
// deviation (uniform expenses) flags nothing. Results keep the input
// transaction order.
func (s *Service) DetectAnomalies(transactions []*domain.Transaction) []Anomaly {
	var amounts []float64
	for _, t := range transactions {
		if t.IsExpense() {
			amounts = append(amounts, t.Amount.Amount.InexactFloat64())
		}
	}
	if len(amounts) == 0 {
		return nil
	}

	mean := 0.0
	for _, a := range amounts {
		mean += a
	}
	mean /= float64(len(amounts))

	variance := 0.0
	for _, a := range amounts {
		variance += (a - mean) * (a - mean)
	}
	// Population variance: divide by N, not N-1.
	stdDev := math.Sqrt(variance / float64(len(amounts)))

	var anomalies []Anomaly
	for _, t := range transactions {
		if !t.IsExpense() {
			continue
		}
		z := 0.0
		if stdDev > 0 {
			z = math.Abs(t.Amount.Amount.InexactFloat64()-mean) / stdDev
		}
		if z > anomalyZThreshold {
			severity := SeverityMedium
			if z > severeZThreshold {
				severity = SeverityHigh
			}
			anomalies = append(anomalies, Anomaly{
				Transaction: t,
				Reason:      fmt.Sprintf("Unusually high expense (z-score: %.2f)", z),
				Severity:    severity,
			})
		}
	}
	return anomalies
}

// AnalyzeSpendingPatterns aggregates totals, per-category and
// per-merchant sums. Transactions without a category or merchant are
// left out of the respective maps rather than zero-filled.
func AnalyzeSpendingPatterns(transactions []*domain.Transaction) SpendingPatterns {
	patterns := SpendingPatterns{
		TransactionCount: len(transactions),
		Categories:       make(map[string]decimal.Decimal),
		Merchants:        make(map[string]decimal.Decimal),
	}

	for _, t := range transactions {
		switch {
		case t.IsExpense():
			patterns.TotalSpending = patterns.TotalSpending.Add(t.Amount.Abs())
		case t.IsIncome():
			patterns.TotalIncome = patterns.TotalIncome.Add(t.Amount.Amount)
		}

		if t.Category != nil {
			name := t.Category.Name
			patterns.Categories[name] = patterns.Categories[name].Add(t.Amount.Abs())
		}
		if t.Merchant != "" {
			patterns.Merchants[t.Merchant] = patterns.Merchants[t.Merchant].Add(t.Amount.Abs())
		}
	}
	return patterns
}

// AnalyzeBudgetPerformance computes, per budget, the absolute expense
// total of the budget's category against its limit. Percentage used is
// clamped to 100 and a zero limit reports 100 outright.
func AnalyzeBudgetPerformance(transactions []*domain.Transaction, budgets []*domain.Budget) map[string]BudgetPerformance {
	analysis := make(map[string]BudgetPerformance, len(budgets))

	for _, budget := range budgets {
		spending := decimal.Zero
		for _, t := range transactions {
			if t.Category != nil && t.Category.ID == budget.CategoryID && t.IsExpense() {
				spending = spending.Add(t.Amount.Abs())
			}
		}

		analysis[budget.CategoryName] = BudgetPerformance{
			BudgetLimit:    budget.Limit.Amount,
			ActualSpending: spending,
			Remaining:      budget.Limit.Amount.Sub(spending),
			PercentageUsed: budget.PercentageUsed(spending),
			IsExceeded:     budget.IsExceeded(spending),
		}
	}
	return analysis
}
