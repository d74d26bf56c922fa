package search

import (
	"context"
	"fmt"
	"time"

	"github.com/moneymind/backend/internal/domain"
)

// TransactionSource is the minimal read contract the handler needs.
// The full store.TransactionRepository satisfies it.
type TransactionSource interface {
	GetAll(ctx context.Context) ([]*domain.Transaction, error)
}

// Handler executes search queries against a transaction source.
type Handler struct {
	transactions TransactionSource
}

// NewHandler wires the transaction source.
func NewHandler(transactions TransactionSource) *Handler {
	return &Handler{transactions: transactions}
}

// Handle validates the query, applies the composed filter, then slices
// the page. The full match list keeps the source order; no implicit
// sort happens anywhere. An offset past the end yields an empty page.
func (h *Handler) Handle(ctx context.Context, query Query) ([]TransactionDTO, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("Handle: invalid query: %w", err)
	}

	transactions, err := h.transactions.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("Handle: list transactions: %w", err)
	}

	spec := buildSpecification(query)

	var matched []*domain.Transaction
	for _, t := range transactions {
		if spec.IsSatisfiedBy(t) {
			matched = append(matched, t)
		}
	}

	start := query.Offset
	if start >= len(matched) {
		return []TransactionDTO{}, nil
	}
	end := start + query.Limit
	if end > len(matched) {
		end = len(matched)
	}

	page := make([]TransactionDTO, 0, end-start)
	for _, t := range matched[start:end] {
		page = append(page, NewTransactionDTO(t))
	}
	return page, nil
}

// buildSpecification AND-combines the optional filters. The search term
// matches description or merchant; the other filters map one-to-one
// onto domain predicates.
func buildSpecification(query Query) domain.Specification {
	var specs []domain.Specification

	if query.SearchTerm != "" {
		specs = append(specs, domain.Or(
			domain.ByDescription(query.SearchTerm),
			domain.ByMerchant(query.SearchTerm),
		))
	}
	if query.CategoryID != "" {
		specs = append(specs, domain.ByCategory(query.CategoryID))
	}
	if query.StartDate != nil || query.EndDate != nil {
		start := distantPast
		if query.StartDate != nil {
			start = *query.StartDate
		}
		end := distantFuture
		if query.EndDate != nil {
			end = *query.EndDate
		}
		specs = append(specs, domain.ByDateRange(start, end))
	}
	if query.MinAmount != nil || query.MaxAmount != nil {
		specs = append(specs, domain.ByAmountRange(query.MinAmount, query.MaxAmount))
	}

	return domain.And(specs...)
}

// Sentinels for half-open date filters.
var (
	distantPast   = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	distantFuture = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)
)
