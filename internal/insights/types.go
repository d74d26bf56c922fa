package insights

import (
	"fmt"

	"github.com/moneymind/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// InsightType classifies what kind of observation an insight is.
type InsightType string

const (
	TypePattern    InsightType = "pattern"
	TypeAnomaly    InsightType = "anomaly"
	TypeSuggestion InsightType = "suggestion"
	TypeWarning    InsightType = "warning"
)

// ParseInsightType converts a type string into an InsightType.
func ParseInsightType(s string) (InsightType, error) {
	switch InsightType(s) {
	case TypePattern, TypeAnomaly, TypeSuggestion, TypeWarning:
		return InsightType(s), nil
	}
	return "", fmt.Errorf("unknown insight type: %q", s)
}

// Severity grades how much an insight or anomaly matters.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ParseSeverity converts a severity string into a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return Severity(s), nil
	}
	return "", fmt.Errorf("unknown severity: %q", s)
}

// Insight is one narrative observation about a user's finances. It is
// generated per request and never persisted.
type Insight struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Type        InsightType    `json:"type"`
	Severity    Severity       `json:"severity"`
	Data        map[string]any `json:"data"`
}

// Anomaly flags one transaction as a statistical outlier.
type Anomaly struct {
	Transaction *domain.Transaction `json:"transaction"`
	Reason      string              `json:"reason"`
	Severity    Severity            `json:"severity"`
}

// SpendingPatterns is the deterministic aggregation handed to the AI
// collaborator for narrative generation. All totals are positive
// magnitudes, uniformly: TotalSpending is the absolute sum of expenses.
type SpendingPatterns struct {
	TotalSpending    decimal.Decimal            `json:"total_spending"`
	TotalIncome      decimal.Decimal            `json:"total_income"`
	TransactionCount int                        `json:"transaction_count"`
	Categories       map[string]decimal.Decimal `json:"categories"`
	Merchants        map[string]decimal.Decimal `json:"merchants"`
}

// BudgetPerformance compares actual category spending against one
// budget's limit.
type BudgetPerformance struct {
	BudgetLimit    decimal.Decimal `json:"budget_limit"`
	ActualSpending decimal.Decimal `json:"actual_spending"`
	Remaining      decimal.Decimal `json:"remaining"`
	PercentageUsed float64         `json:"percentage_used"`
	IsExceeded     bool            `json:"is_exceeded"`
}
