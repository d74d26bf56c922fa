package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/moneymind/backend/internal/api/middleware"
	"github.com/moneymind/backend/internal/categorize"
	"github.com/moneymind/backend/internal/domain"
	"github.com/moneymind/backend/internal/search"
	"github.com/moneymind/backend/internal/store"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TransactionsHandler handles transaction endpoints.
type TransactionsHandler struct {
	transactions store.TransactionRepository
	categories   store.CategoryRepository
	searcher     *search.Handler
	categorizer  *categorize.Service
	log          zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(
	transactions store.TransactionRepository,
	categories store.CategoryRepository,
	searcher *search.Handler,
	categorizer *categorize.Service,
	log zerolog.Logger,
) *TransactionsHandler {
	return &TransactionsHandler{
		transactions: transactions,
		categories:   categories,
		searcher:     searcher,
		categorizer:  categorizer,
		log:          log,
	}
}

type createTransactionRequest struct {
	AccountID   string   `json:"account_id"`
	Date        string   `json:"date"`
	Amount      string   `json:"amount"`
	Currency    string   `json:"currency"`
	Description string   `json:"description"`
	Merchant    string   `json:"merchant"`
	CategoryID  string   `json:"category_id"`
	Tags        []string `json:"tags"`
}

// CreateTransaction handles POST /api/transactions
func (h *TransactionsHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.AccountID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Account ID is required")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Date must be YYYY-MM-DD")
		return
	}
	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := domain.MoneyFromString(req.Amount, currency)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid amount")
		return
	}

	t, err := domain.NewTransaction(req.AccountID, date, amount, req.Description, req.Merchant, req.Tags)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.CategoryID != "" {
		category, err := h.categories.GetByID(ctx, req.CategoryID)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Unknown category")
			return
		}
		if err := t.Categorize(category); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if err := h.transactions.Save(ctx, t); err != nil {
		h.log.Error().Err(err).Msg("Failed to save transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to save transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, search.NewTransactionDTO(t))
}

// GetTransaction handles GET /api/transactions/{id}
func (h *TransactionsHandler) GetTransaction(w http.ResponseWriter, r *http.Request, id string) {
	t, err := h.transactions.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to get transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to get transaction")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, search.NewTransactionDTO(t))
}

// DeleteTransaction handles DELETE /api/transactions/{id}
func (h *TransactionsHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.transactions.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to delete transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type updateTransactionRequest struct {
	Description *string   `json:"description"`
	Merchant    *string   `json:"merchant"`
	CategoryID  *string   `json:"category_id"`
	Tags        *[]string `json:"tags"`
}

// UpdateTransaction handles PUT /api/transactions/{id}
func (h *TransactionsHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := h.transactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to get transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to get transaction")
		return
	}

	if req.Description != nil {
		if err := t.UpdateDescription(*req.Description); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Merchant != nil {
		t.UpdateMerchant(*req.Merchant)
	}
	if req.CategoryID != nil {
		category, err := h.categories.GetByID(ctx, *req.CategoryID)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Unknown category")
			return
		}
		if err := t.Categorize(category); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Tags != nil {
		t.Tags = *req.Tags
	}

	if err := h.transactions.Save(ctx, t); err != nil {
		h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to save transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to save transaction")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, search.NewTransactionDTO(t))
}

// SearchTransactions handles GET /api/transactions
func (h *TransactionsHandler) SearchTransactions(w http.ResponseWriter, r *http.Request) {
	query, err := queryFromURL(r.URL.Query())
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.searcher.Handle(r.Context(), query)
	if err != nil {
		h.log.Error().Err(err).Msg("Transaction search failed")
		middleware.WriteError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": results,
		"count":        len(results),
	})
}

// CategorizeTransaction handles POST /api/transactions/{id}/categorize
func (h *TransactionsHandler) CategorizeTransaction(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	t, err := h.transactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to get transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to get transaction")
		return
	}

	category, err := h.categorizer.CategorizeTransaction(ctx, t)
	if err != nil {
		h.log.Error().Err(err).Str("transaction_id", id).Msg("Categorization failed")
		middleware.WriteError(w, http.StatusBadGateway, "Categorization failed")
		return
	}

	if err := t.Categorize(category); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.transactions.Save(ctx, t); err != nil {
		h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to save transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to save transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, search.NewTransactionDTO(t))
}

// SuggestCategories handles GET /api/transactions/suggest-categories?description=...
func (h *TransactionsHandler) SuggestCategories(w http.ResponseWriter, r *http.Request) {
	description := r.URL.Query().Get("description")
	if description == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Description is required")
		return
	}

	suggestions, err := h.categorizer.SuggestCategories(r.Context(), description)
	if err != nil {
		h.log.Error().Err(err).Msg("Category suggestion failed")
		middleware.WriteError(w, http.StatusBadGateway, "Suggestion failed")
		return
	}

	type suggestionDTO struct {
		CategoryID   string  `json:"category_id"`
		CategoryName string  `json:"category_name"`
		Confidence   float64 `json:"confidence"`
	}
	dtos := make([]suggestionDTO, 0, len(suggestions))
	for _, s := range suggestions {
		dtos = append(dtos, suggestionDTO{
			CategoryID:   s.Category.ID,
			CategoryName: s.Category.Name,
			Confidence:   s.Confidence,
		})
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"suggestions": dtos})
}

// queryFromURL maps URL parameters onto a search query, applying the
// default page size when limit is absent.
func queryFromURL(values url.Values) (search.Query, error) {
	query := search.Query{
		SearchTerm: values.Get("search"),
		CategoryID: values.Get("category_id"),
		Limit:      50,
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return search.Query{}, errors.New("limit must be an integer")
		}
		query.Limit = limit
	}
	if raw := values.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return search.Query{}, errors.New("offset must be an integer")
		}
		query.Offset = offset
	}
	if raw := values.Get("start_date"); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return search.Query{}, errors.New("start_date must be YYYY-MM-DD")
		}
		query.StartDate = &start
	}
	if raw := values.Get("end_date"); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return search.Query{}, errors.New("end_date must be YYYY-MM-DD")
		}
		query.EndDate = &end
	}
	if raw := values.Get("min_amount"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			return search.Query{}, errors.New("min_amount must be a decimal number")
		}
		query.MinAmount = &min
	}
	if raw := values.Get("max_amount"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			return search.Query{}, errors.New("max_amount must be a decimal number")
		}
		query.MaxAmount = &max
	}
	return query, nil
}
