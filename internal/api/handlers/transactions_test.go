package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/moneymind/backend/internal/categorize"
	"github.com/moneymind/backend/internal/domain"
	"github.com/moneymind/backend/internal/search"
	"github.com/moneymind/backend/internal/store/inmemory"
	"github.com/rs/zerolog"
)

type stubAI struct {
	category    *domain.Category
	suggestions []categorize.CategorySuggestion
	err         error
}

func (s *stubAI) Categorize(_ context.Context, _, _ string, _ domain.Money) (*domain.Category, error) {
	return s.category, s.err
}

func (s *stubAI) SuggestCategories(_ context.Context, _ string) ([]categorize.CategorySuggestion, error) {
	return s.suggestions, s.err
}

func timeMustParse(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return parsed
}

type handlerFixture struct {
	handler      *TransactionsHandler
	transactions *inmemory.TransactionStore
	categories   *inmemory.CategoryStore
}

func newFixture(t *testing.T, ai categorize.AIService) *handlerFixture {
	t.Helper()
	transactions := inmemory.NewTransactionStore()
	categories := inmemory.NewCategoryStore()
	categorizer := categorize.NewService(categorize.NewKeywordRuleEngine(nil), ai)
	searcher := search.NewHandler(transactions)
	return &handlerFixture{
		handler:      NewTransactionsHandler(transactions, categories, searcher, categorizer, zerolog.Nop()),
		transactions: transactions,
		categories:   categories,
	}
}

func TestCreateTransaction(t *testing.T) {
	f := newFixture(t, &stubAI{})

	body := `{"account_id":"acc-1","date":"2025-06-01","amount":"-12.50","currency":"USD","description":"Lunch","merchant":"Cafe Nero","tags":["food"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body))
	rec := httptest.NewRecorder()

	f.handler.CreateTransaction(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}
	var dto search.TransactionDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("response is not a transaction DTO: %v", err)
	}
	if dto.Description != "Lunch" || dto.ID == "" {
		t.Errorf("unexpected DTO: %+v", dto)
	}

	if _, err := f.transactions.GetByID(req.Context(), dto.ID); err != nil {
		t.Errorf("created transaction not retrievable: %v", err)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	f := newFixture(t, &stubAI{})

	tests := []struct {
		name string
		body string
	}{
		{"bad json", `{`},
		{"missing account", `{"date":"2025-06-01","amount":"-5","currency":"USD","description":"x"}`},
		{"bad date", `{"account_id":"a","date":"June 1st","amount":"-5","currency":"USD","description":"x"}`},
		{"bad currency", `{"account_id":"a","date":"2025-06-01","amount":"-5","currency":"XXX","description":"x"}`},
		{"bad amount", `{"account_id":"a","date":"2025-06-01","amount":"five","currency":"USD","description":"x"}`},
		{"blank description", `{"account_id":"a","date":"2025-06-01","amount":"-5","currency":"USD","description":"  "}`},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(tt.body))
		rec := httptest.NewRecorder()
		f.handler.CreateTransaction(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tt.name, rec.Code)
		}
	}
}

func TestGetTransactionNotFound(t *testing.T) {
	f := newFixture(t, &stubAI{})

	req := httptest.NewRequest(http.MethodGet, "/api/transactions/missing", nil)
	rec := httptest.NewRecorder()
	f.handler.GetTransaction(rec, req, "missing")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSearchTransactions(t *testing.T) {
	f := newFixture(t, &stubAI{})
	ctx := context.Background()

	for _, desc := range []string{"Morning coffee", "Lunch", "Evening coffee"} {
		m, _ := domain.MoneyFromString("-5", domain.USD)
		tx, err := domain.NewTransaction("acc-1", timeMustParse(t, "2025-06-01"), m, desc, "", nil)
		if err != nil {
			t.Fatalf("NewTransaction failed: %v", err)
		}
		if err := f.transactions.Save(ctx, tx); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/transactions?search=coffee", nil)
	rec := httptest.NewRecorder()
	f.handler.SearchTransactions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Transactions []search.TransactionDTO `json:"transactions"`
		Count        int                     `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.Count != 2 || len(resp.Transactions) != 2 {
		t.Errorf("got %d matches, want 2", resp.Count)
	}
}

func TestSearchTransactionsBadLimit(t *testing.T) {
	f := newFixture(t, &stubAI{})

	req := httptest.NewRequest(http.MethodGet, "/api/transactions?limit=nope", nil)
	rec := httptest.NewRecorder()
	f.handler.SearchTransactions(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCategorizeTransactionEndpoint(t *testing.T) {
	ctx := context.Background()
	dining, err := domain.NewCategory("Dining", "#ff0000", "fork", "", nil)
	if err != nil {
		t.Fatalf("NewCategory failed: %v", err)
	}
	f := newFixture(t, &stubAI{category: dining})

	m, _ := domain.MoneyFromString("-20", domain.USD)
	tx, err := domain.NewTransaction("acc-1", timeMustParse(t, "2025-06-01"), m, "Dinner out", "", nil)
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}
	if err := f.transactions.Save(ctx, tx); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/transactions/"+tx.ID+"/categorize", nil)
	rec := httptest.NewRecorder()
	f.handler.CategorizeTransaction(rec, req, tx.ID)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	saved, err := f.transactions.GetByID(ctx, tx.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if saved.Category == nil || saved.Category.ID != dining.ID {
		t.Error("categorization was not persisted")
	}
}

func TestCategorizeTransactionAIFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &stubAI{err: errors.New("model unavailable")})

	m, _ := domain.MoneyFromString("-20", domain.USD)
	tx, _ := domain.NewTransaction("acc-1", timeMustParse(t, "2025-06-01"), m, "Dinner out", "", nil)
	if err := f.transactions.Save(ctx, tx); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/transactions/"+tx.ID+"/categorize", nil)
	rec := httptest.NewRecorder()
	f.handler.CategorizeTransaction(rec, req, tx.ID)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}
