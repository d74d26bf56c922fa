package insights

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/moneymind/backend/internal/domain"
	"github.com/shopspring/decimal"
)

type mockInsightAI struct {
	insights    []Insight
	err         error
	gotPatterns SpendingPatterns
	gotAnalysis map[string]BudgetPerformance
	calls       int
}

func (m *mockInsightAI) GenerateInsights(_ context.Context, patterns SpendingPatterns, analysis map[string]BudgetPerformance) ([]Insight, error) {
	m.calls++
	m.gotPatterns = patterns
	m.gotAnalysis = analysis
	return m.insights, m.err
}

func tx(t *testing.T, amount string, category *domain.Category, merchant string, date time.Time) *domain.Transaction {
	t.Helper()
	m, err := domain.MoneyFromString(amount, domain.USD)
	if err != nil {
		t.Fatalf("MoneyFromString(%q) failed: %v", amount, err)
	}
	transaction, err := domain.NewTransaction("acc-1", date, m, "test transaction", merchant, nil)
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}
	transaction.Category = category
	return transaction
}

func category(t *testing.T, name string) *domain.Category {
	t.Helper()
	c, err := domain.NewCategory(name, "#4444ff", "tag", "", nil)
	if err != nil {
		t.Fatalf("NewCategory failed: %v", err)
	}
	return c
}

func TestDetectAnomaliesFlagsOutlier(t *testing.T) {
	now := time.Now()
	service := NewService(nil)

	// Five -10 expenses and one -1000: the outlier sits sqrt(5) ~ 2.24
	// standard deviations out, past the 2.0 threshold but below 3.0.
	transactions := []*domain.Transaction{
		tx(t, "-10", nil, "", now),
		tx(t, "-10", nil, "", now),
		tx(t, "-10", nil, "", now),
		tx(t, "-10", nil, "", now),
		tx(t, "-10", nil, "", now),
		tx(t, "-1000", nil, "", now),
	}

	anomalies := service.DetectAnomalies(transactions)
	if len(anomalies) != 1 {
		t.Fatalf("got %d anomalies, want 1", len(anomalies))
	}
	if anomalies[0].Transaction != transactions[5] {
		t.Error("the -1000 transaction should be the flagged one")
	}
	if anomalies[0].Reason != "Unusually high expense (z-score: 2.24)" {
		t.Errorf("unexpected reason: %q", anomalies[0].Reason)
	}
	if anomalies[0].Severity != SeverityMedium {
		t.Errorf("got severity %s, want medium", anomalies[0].Severity)
	}
}

func TestDetectAnomaliesSevereOutlier(t *testing.T) {
	now := time.Now()
	service := NewService(nil)

	// Sixteen identical expenses and one huge one: z = sqrt(16) = 4,
	// past the high-severity threshold.
	transactions := make([]*domain.Transaction, 0, 17)
	for i := 0; i < 16; i++ {
		transactions = append(transactions, tx(t, "-10", nil, "", now))
	}
	outlier := tx(t, "-1000", nil, "", now)
	transactions = append(transactions, outlier)

	anomalies := service.DetectAnomalies(transactions)
	if len(anomalies) != 1 {
		t.Fatalf("got %d anomalies, want 1", len(anomalies))
	}
	if anomalies[0].Transaction != outlier {
		t.Error("the -1000 transaction should be the flagged one")
	}
	if anomalies[0].Severity != SeverityHigh {
		t.Errorf("got severity %s, want high", anomalies[0].Severity)
	}
	if !strings.HasPrefix(anomalies[0].Reason, "Unusually high expense (z-score: 4.00") {
		t.Errorf("unexpected reason: %q", anomalies[0].Reason)
	}
}

func TestDetectAnomaliesUniformExpenses(t *testing.T) {
	now := time.Now()
	service := NewService(nil)

	transactions := []*domain.Transaction{
		tx(t, "-25", nil, "", now),
		tx(t, "-25", nil, "", now),
		tx(t, "-25", nil, "", now),
	}
	if got := service.DetectAnomalies(transactions); got != nil {
		t.Errorf("identical expenses should flag nothing, got %v", got)
	}
}

func TestDetectAnomaliesSingleExpense(t *testing.T) {
	service := NewService(nil)
	transactions := []*domain.Transaction{tx(t, "-50", nil, "", time.Now())}
	if got := service.DetectAnomalies(transactions); got != nil {
		t.Errorf("single expense should flag nothing, got %v", got)
	}
}

func TestDetectAnomaliesIgnoresIncome(t *testing.T) {
	now := time.Now()
	service := NewService(nil)

	// The large income must neither be flagged nor skew the expense stats.
	transactions := []*domain.Transaction{
		tx(t, "-20", nil, "", now),
		tx(t, "-20", nil, "", now),
		tx(t, "-20", nil, "", now),
		tx(t, "5000", nil, "", now),
	}
	if got := service.DetectAnomalies(transactions); got != nil {
		t.Errorf("income should be excluded from anomaly detection, got %v", got)
	}
}

func TestAnalyzeSpendingPatterns(t *testing.T) {
	now := time.Now()
	groceries := category(t, "Groceries")

	transactions := []*domain.Transaction{
		tx(t, "-30", groceries, "Tesco", now),
		tx(t, "-20", groceries, "Tesco", now),
		tx(t, "-15.50", nil, "", now),
		tx(t, "2000", nil, "", now),
	}

	patterns := AnalyzeSpendingPatterns(transactions)

	if want := decimal.RequireFromString("65.5"); !patterns.TotalSpending.Equal(want) {
		t.Errorf("TotalSpending = %s, want %s", patterns.TotalSpending, want)
	}
	if want := decimal.NewFromInt(2000); !patterns.TotalIncome.Equal(want) {
		t.Errorf("TotalIncome = %s, want %s", patterns.TotalIncome, want)
	}
	if patterns.TransactionCount != 4 {
		t.Errorf("TransactionCount = %d, want 4", patterns.TransactionCount)
	}
	if want := decimal.NewFromInt(50); !patterns.Categories["Groceries"].Equal(want) {
		t.Errorf("Categories[Groceries] = %s, want %s", patterns.Categories["Groceries"], want)
	}
	if _, ok := patterns.Categories[""]; ok {
		t.Error("uncategorized transactions should not appear in the category map")
	}
	if want := decimal.NewFromInt(50); !patterns.Merchants["Tesco"].Equal(want) {
		t.Errorf("Merchants[Tesco] = %s, want %s", patterns.Merchants["Tesco"], want)
	}
	if _, ok := patterns.Merchants[""]; ok {
		t.Error("transactions without a merchant should not appear in the merchant map")
	}
}

func TestAnalyzeBudgetPerformance(t *testing.T) {
	now := time.Now()
	groceries := category(t, "Groceries")
	limit, _ := domain.MoneyFromString("100", domain.USD)
	budget, err := domain.NewBudget(groceries.ID, groceries.Name, limit, domain.PeriodMonthly, now.AddDate(0, -1, 0), now.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("NewBudget failed: %v", err)
	}

	transactions := []*domain.Transaction{
		tx(t, "-60", groceries, "", now),
		tx(t, "-80", groceries, "", now),
		tx(t, "-500", category(t, "Rent"), "", now), // other category, ignored
	}

	analysis := AnalyzeBudgetPerformance(transactions, []*domain.Budget{budget})
	perf, ok := analysis["Groceries"]
	if !ok {
		t.Fatal("budget performance missing for Groceries")
	}
	if want := decimal.NewFromInt(140); !perf.ActualSpending.Equal(want) {
		t.Errorf("ActualSpending = %s, want %s", perf.ActualSpending, want)
	}
	if want := decimal.NewFromInt(-40); !perf.Remaining.Equal(want) {
		t.Errorf("Remaining = %s, want %s", perf.Remaining, want)
	}
	if !perf.IsExceeded {
		t.Error("spending 140 of 100 should be exceeded")
	}
	if perf.PercentageUsed != 100 {
		t.Errorf("PercentageUsed = %v, want clamped 100", perf.PercentageUsed)
	}
}

func TestGenerateMonthlyInsightsDelegates(t *testing.T) {
	now := time.Now()
	ai := &mockInsightAI{insights: []Insight{{
		Type:     TypePattern,
		Title:    "Groceries dominate",
		Severity: SeverityLow,
	}}}
	service := NewService(ai)

	transactions := []*domain.Transaction{tx(t, "-30", category(t, "Groceries"), "", now)}

	got, err := service.GenerateMonthlyInsights(context.Background(), transactions, nil)
	if err != nil {
		t.Fatalf("GenerateMonthlyInsights failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Groceries dominate" {
		t.Errorf("insights not returned from the AI collaborator: %v", got)
	}
	if ai.calls != 1 {
		t.Errorf("AI called %d times, want 1", ai.calls)
	}
	if want := decimal.NewFromInt(30); !ai.gotPatterns.TotalSpending.Equal(want) {
		t.Errorf("AI received TotalSpending %s, want %s", ai.gotPatterns.TotalSpending, want)
	}
}

func TestGenerateMonthlyInsightsAIError(t *testing.T) {
	wantErr := errors.New("quota exceeded")
	service := NewService(&mockInsightAI{err: wantErr})

	_, err := service.GenerateMonthlyInsights(context.Background(), nil, nil)
	if !errors.Is(err, wantErr) {
		t.Errorf("got %v, want wrapped %v", err, wantErr)
	}
}
