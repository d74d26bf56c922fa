package insights

import (
	"fmt"
	"sort"

	"github.com/moneymind/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// topCategoryCount caps how many categories a summary reports.
const topCategoryCount = 5

// CategorySpending is one category's share of a month's expenses.
type CategorySpending struct {
	CategoryID       string          `json:"category_id"`
	CategoryName     string          `json:"category_name"`
	Amount           decimal.Decimal `json:"amount"`
	Percentage       float64         `json:"percentage"`
	TransactionCount int             `json:"transaction_count"`
	Color            string          `json:"color"`
}

// MonthlySummary is a month's financial roll-up.
type MonthlySummary struct {
	Month             int                          `json:"month"`
	Year              int                          `json:"year"`
	TotalIncome       decimal.Decimal              `json:"total_income"`
	TotalExpenses     decimal.Decimal              `json:"total_expenses"`
	NetIncome         decimal.Decimal              `json:"net_income"`
	Currency          domain.Currency              `json:"currency"`
	TopCategories     []CategorySpending           `json:"top_categories"`
	TransactionCount  int                          `json:"transaction_count"`
	BudgetPerformance map[string]BudgetPerformance `json:"budget_performance"`
}

// Summarize rolls up one calendar month. Transactions outside the month
// are ignored; budgets are analyzed against the month's transactions
// only. Totals are positive magnitudes.
func Summarize(transactions []*domain.Transaction, budgets []*domain.Budget, month, year int, currency domain.Currency) (*MonthlySummary, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	if year < 2000 {
		return nil, fmt.Errorf("year must be 2000 or later, got %d", year)
	}

	var monthly []*domain.Transaction
	for _, t := range transactions {
		if t.Date.Year() == year && int(t.Date.Month()) == month {
			monthly = append(monthly, t)
		}
	}

	summary := &MonthlySummary{
		Month:            month,
		Year:             year,
		Currency:         currency,
		TransactionCount: len(monthly),
	}

	type categoryAccum struct {
		category *domain.Category
		amount   decimal.Decimal
		count    int
	}
	byCategory := make(map[string]*categoryAccum)

	for _, t := range monthly {
		switch {
		case t.IsExpense():
			summary.TotalExpenses = summary.TotalExpenses.Add(t.Amount.Abs())
		case t.IsIncome():
			summary.TotalIncome = summary.TotalIncome.Add(t.Amount.Amount)
		}
		if t.Category != nil && t.IsExpense() {
			accum, ok := byCategory[t.Category.ID]
			if !ok {
				accum = &categoryAccum{category: t.Category}
				byCategory[t.Category.ID] = accum
			}
			accum.amount = accum.amount.Add(t.Amount.Abs())
			accum.count++
		}
	}
	summary.NetIncome = summary.TotalIncome.Sub(summary.TotalExpenses)

	spending := make([]CategorySpending, 0, len(byCategory))
	for _, accum := range byCategory {
		pct := 0.0
		if summary.TotalExpenses.IsPositive() {
			pct, _ = accum.amount.Div(summary.TotalExpenses).Mul(decimal.NewFromInt(100)).Float64()
		}
		spending = append(spending, CategorySpending{
			CategoryID:       accum.category.ID,
			CategoryName:     accum.category.Name,
			Amount:           accum.amount,
			Percentage:       pct,
			TransactionCount: accum.count,
			Color:            accum.category.Color,
		})
	}
	sort.Slice(spending, func(i, j int) bool {
		return spending[i].Amount.GreaterThan(spending[j].Amount)
	})
	if len(spending) > topCategoryCount {
		spending = spending[:topCategoryCount]
	}
	summary.TopCategories = spending

	summary.BudgetPerformance = AnalyzeBudgetPerformance(monthly, budgets)
	return summary, nil
}
