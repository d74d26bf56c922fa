package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors raised at construction or mutation time.
var (
	ErrEmptyDescription = errors.New("transaction description cannot be empty")
	ErrInactiveCategory = errors.New("cannot assign inactive category")
)

// Transaction is a single financial movement on an account.
// A positive amount is income, a negative amount is an expense.
// Analytics code treats transactions as immutable snapshots; the only
// mutations the domain allows after creation are categorization and the
// small description/merchant/tag updates below, each of which bumps
// UpdatedAt.
type Transaction struct {
	ID          string
	AccountID   string
	Date        time.Time
	Amount      Money
	Description string
	Merchant    string // empty when unknown
	Category    *Category
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// NewTransaction builds a transaction with a fresh ID. The description
// must be non-empty after trimming; this is enforced here, not deferred.
func NewTransaction(accountID string, date time.Time, amount Money, description, merchant string, tags []string) (*Transaction, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}
	if tags == nil {
		tags = []string{}
	}
	return &Transaction{
		ID:          uuid.NewString(),
		AccountID:   accountID,
		Date:        date,
		Amount:      amount,
		Description: description,
		Merchant:    merchant,
		Tags:        tags,
		CreatedAt:   time.Now(),
	}, nil
}

// IsIncome reports whether the amount is positive.
func (t *Transaction) IsIncome() bool { return t.Amount.IsPositive() }

// IsExpense reports whether the amount is negative.
func (t *Transaction) IsExpense() bool { return t.Amount.IsNegative() }

// Categorize assigns a category to the transaction. Inactive categories
// are rejected.
func (t *Transaction) Categorize(category *Category) error {
	if !category.IsActive {
		return ErrInactiveCategory
	}
	t.Category = category
	t.touch()
	return nil
}

// AddTag appends a tag if not already present.
func (t *Transaction) AddTag(tag string) {
	for _, existing := range t.Tags {
		if existing == tag {
			return
		}
	}
	t.Tags = append(t.Tags, tag)
	t.touch()
}

// RemoveTag removes a tag if present.
func (t *Transaction) RemoveTag(tag string) {
	for i, existing := range t.Tags {
		if existing == tag {
			t.Tags = append(t.Tags[:i], t.Tags[i+1:]...)
			t.touch()
			return
		}
	}
}

// UpdateDescription replaces the description. Empty descriptions are
// rejected the same way as at construction.
func (t *Transaction) UpdateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return ErrEmptyDescription
	}
	t.Description = description
	t.touch()
	return nil
}

// UpdateMerchant replaces the merchant. An empty merchant clears it.
func (t *Transaction) UpdateMerchant(merchant string) {
	t.Merchant = merchant
	t.touch()
}

func (t *Transaction) touch() {
	now := time.Now()
	t.UpdatedAt = &now
}
