package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetPeriod is the cadence a budget applies to.
type BudgetPeriod string

const (
	PeriodWeekly    BudgetPeriod = "weekly"
	PeriodMonthly   BudgetPeriod = "monthly"
	PeriodQuarterly BudgetPeriod = "quarterly"
	PeriodYearly    BudgetPeriod = "yearly"
)

// ParseBudgetPeriod converts a period string into a BudgetPeriod.
func ParseBudgetPeriod(s string) (BudgetPeriod, error) {
	switch BudgetPeriod(s) {
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return BudgetPeriod(s), nil
	}
	return "", fmt.Errorf("unsupported budget period: %q", s)
}

// Budget caps spending for one category over a period. The category is
// referenced by ID; CategoryName is carried along for reporting so the
// analytics code does not need a category lookup.
type Budget struct {
	ID           string
	CategoryID   string
	CategoryName string
	Limit        Money
	Period       BudgetPeriod
	StartDate    time.Time
	EndDate      time.Time
}

// NewBudget builds a budget with a fresh ID. The limit must be strictly
// positive and the start date must precede the end date.
func NewBudget(categoryID, categoryName string, limit Money, period BudgetPeriod, start, end time.Time) (*Budget, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("budget start date must be before end date")
	}
	if !limit.IsPositive() {
		return nil, fmt.Errorf("budget limit must be positive")
	}
	return &Budget{
		ID:           uuid.NewString(),
		CategoryID:   categoryID,
		CategoryName: categoryName,
		Limit:        limit,
		Period:       period,
		StartDate:    start,
		EndDate:      end,
	}, nil
}

// Remaining returns limit minus spent; negative when overspent.
func (b *Budget) Remaining(spent Money) (Money, error) {
	return b.Limit.Sub(spent)
}

// IsExceeded reports whether spent exceeds the limit. Spent is expected
// as a positive magnitude.
func (b *Budget) IsExceeded(spent decimal.Decimal) bool {
	return spent.GreaterThan(b.Limit.Amount)
}

// PercentageUsed returns how much of the limit is consumed, clamped to
// 100. A zero limit reports 100 rather than dividing by zero.
func (b *Budget) PercentageUsed(spent decimal.Decimal) float64 {
	if b.Limit.Amount.IsZero() {
		return 100
	}
	pct, _ := spent.Div(b.Limit.Amount).Mul(decimal.NewFromInt(100)).Float64()
	if pct > 100 {
		return 100
	}
	return pct
}

// IsActiveForDate reports whether the date falls inside the budget
// window, inclusive on both ends.
func (b *Budget) IsActiveForDate(date time.Time) bool {
	return !date.Before(b.StartDate) && !date.After(b.EndDate)
}

// UpdateLimit replaces the limit; the new limit must stay positive.
func (b *Budget) UpdateLimit(limit Money) error {
	if !limit.IsPositive() {
		return fmt.Errorf("budget limit must be positive")
	}
	b.Limit = limit
	return nil
}
