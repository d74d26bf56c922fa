package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/moneymind/backend/internal/api/middleware"
	"github.com/moneymind/backend/internal/domain"
	"github.com/moneymind/backend/internal/store"
	"github.com/rs/zerolog"
)

// BudgetsHandler handles budget endpoints.
type BudgetsHandler struct {
	budgets    store.BudgetRepository
	categories store.CategoryRepository
	log        zerolog.Logger
}

// NewBudgetsHandler creates a new budgets handler.
func NewBudgetsHandler(budgets store.BudgetRepository, categories store.CategoryRepository, log zerolog.Logger) *BudgetsHandler {
	return &BudgetsHandler{budgets: budgets, categories: categories, log: log}
}

type budgetDTO struct {
	ID           string `json:"id"`
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Limit        string `json:"limit"`
	Currency     string `json:"currency"`
	Period       string `json:"period"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

func newBudgetDTO(b *domain.Budget) budgetDTO {
	return budgetDTO{
		ID:           b.ID,
		CategoryID:   b.CategoryID,
		CategoryName: b.CategoryName,
		Limit:        b.Limit.Amount.String(),
		Currency:     string(b.Limit.Currency),
		Period:       string(b.Period),
		StartDate:    b.StartDate.Format("2006-01-02"),
		EndDate:      b.EndDate.Format("2006-01-02"),
	}
}

// ListBudgets handles GET /api/budgets
func (h *BudgetsHandler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.budgets.GetAll(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list budgets")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list budgets")
		return
	}

	dtos := make([]budgetDTO, 0, len(budgets))
	for _, b := range budgets {
		dtos = append(dtos, newBudgetDTO(b))
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"budgets": dtos,
		"count":   len(dtos),
	})
}

type createBudgetRequest struct {
	CategoryID string `json:"category_id"`
	Limit      string `json:"limit"`
	Currency   string `json:"currency"`
	Period     string `json:"period"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

// CreateBudget handles POST /api/budgets
func (h *BudgetsHandler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.categories.GetByID(ctx, req.CategoryID)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Unknown category")
		return
	}

	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := domain.MoneyFromString(req.Limit, currency)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid limit")
		return
	}
	period, err := domain.ParseBudgetPeriod(req.Period)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
		return
	}

	budget, err := domain.NewBudget(category.ID, category.Name, limit, period, start, end)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.budgets.Save(ctx, budget); err != nil {
		h.log.Error().Err(err).Msg("Failed to save budget")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to save budget")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, newBudgetDTO(budget))
}
