// Package store defines the repository contracts the analytics and API
// layers consume. Implementations own persistence; callers receive
// snapshots and never share mutable state with the store.
package store

import (
	"context"
	"errors"

	"github.com/moneymind/backend/internal/domain"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// TransactionRepository stores transactions.
type TransactionRepository interface {
	Save(ctx context.Context, t *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByAccount(ctx context.Context, accountID string) ([]*domain.Transaction, error)
	GetAll(ctx context.Context) ([]*domain.Transaction, error)
	Delete(ctx context.Context, id string) error
}

// CategoryRepository stores the category taxonomy.
type CategoryRepository interface {
	Save(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	GetAll(ctx context.Context) ([]*domain.Category, error)
	GetActive(ctx context.Context) ([]*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

// BudgetRepository stores budgets.
type BudgetRepository interface {
	Save(ctx context.Context, b *domain.Budget) error
	GetByID(ctx context.Context, id string) (*domain.Budget, error)
	GetByCategory(ctx context.Context, categoryID string) ([]*domain.Budget, error)
	GetAll(ctx context.Context) ([]*domain.Budget, error)
	Delete(ctx context.Context, id string) error
}
