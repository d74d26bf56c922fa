package search

import (
	"time"

	"github.com/moneymind/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionDTO is the projected search result shape returned to the
// presentation layer.
type TransactionDTO struct {
	ID           string          `json:"id"`
	AccountID    string          `json:"account_id"`
	Date         time.Time       `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Description  string          `json:"description"`
	Merchant     string          `json:"merchant,omitempty"`
	CategoryID   string          `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
	Tags         []string        `json:"tags"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
}

// NewTransactionDTO projects a domain transaction.
func NewTransactionDTO(t *domain.Transaction) TransactionDTO {
	dto := TransactionDTO{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Date:        t.Date,
		Amount:      t.Amount.Amount,
		Currency:    string(t.Amount.Currency),
		Description: t.Description,
		Merchant:    t.Merchant,
		Tags:        t.Tags,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Category != nil {
		dto.CategoryID = t.Category.ID
		dto.CategoryName = t.Category.Name
	}
	return dto
}
