package handlers

import (
	"net/http"
	"strconv"

	"github.com/moneymind/backend/internal/api/middleware"
	"github.com/moneymind/backend/internal/config"
	"github.com/moneymind/backend/internal/domain"
	"github.com/moneymind/backend/internal/insights"
	"github.com/moneymind/backend/internal/store"
	"github.com/rs/zerolog"
)

// InsightsHandler handles analytics endpoints.
type InsightsHandler struct {
	transactions store.TransactionRepository
	budgets      store.BudgetRepository
	service      *insights.Service
	cfg          config.Config
	log          zerolog.Logger
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(
	transactions store.TransactionRepository,
	budgets store.BudgetRepository,
	service *insights.Service,
	cfg config.Config,
	log zerolog.Logger,
) *InsightsHandler {
	return &InsightsHandler{
		transactions: transactions,
		budgets:      budgets,
		service:      service,
		cfg:          cfg,
		log:          log,
	}
}

// GenerateInsights handles GET /api/insights
func (h *InsightsHandler) GenerateInsights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	all, err := h.transactions.GetAll(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}
	budgets, err := h.budgets.GetAll(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list budgets")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list budgets")
		return
	}

	// Monthly insights cover the current calendar month.
	window := domain.ThisMonth()
	var transactions []*domain.Transaction
	for _, t := range all {
		if window.Contains(t.Date) {
			transactions = append(transactions, t)
		}
	}

	generated, err := h.service.GenerateMonthlyInsights(ctx, transactions, budgets)
	if err != nil {
		h.log.Error().Err(err).Msg("Insight generation failed")
		middleware.WriteError(w, http.StatusBadGateway, "Insight generation failed")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"insights": generated,
		"count":    len(generated),
	})
}

// DetectAnomalies handles GET /api/insights/anomalies
func (h *InsightsHandler) DetectAnomalies(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactions.GetAll(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	anomalies := h.service.DetectAnomalies(transactions)
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"anomalies": anomalies,
		"count":     len(anomalies),
	})
}

// MonthlySummary handles GET /api/insights/summary?month=M&year=Y
func (h *InsightsHandler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "month must be an integer")
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "year must be an integer")
		return
	}

	transactions, err := h.transactions.GetAll(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}
	budgets, err := h.budgets.GetAll(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list budgets")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list budgets")
		return
	}

	summary, err := insights.Summarize(transactions, budgets, month, year, domain.Currency(h.cfg.DefaultCurrency))
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	middleware.WriteJSON(w, http.StatusOK, summary)
}
