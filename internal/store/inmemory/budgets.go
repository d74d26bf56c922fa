package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/moneymind/backend/internal/domain"
	"github.com/moneymind/backend/internal/store"
)

// BudgetStore is an in-memory BudgetRepository.
type BudgetStore struct {
	mu      sync.RWMutex
	budgets map[string]*domain.Budget
	order   []string
}

// NewBudgetStore creates an empty budget store.
func NewBudgetStore() *BudgetStore {
	return &BudgetStore{
		budgets: make(map[string]*domain.Budget),
	}
}

// Save inserts or updates a budget.
func (s *BudgetStore) Save(ctx context.Context, b *domain.Budget) error {
	if b.ID == "" {
		return fmt.Errorf("budget ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.budgets[b.ID]; !exists {
		s.order = append(s.order, b.ID)
	}
	copied := *b
	s.budgets[b.ID] = &copied
	return nil
}

// GetByID retrieves one budget.
func (s *BudgetStore) GetByID(ctx context.Context, id string) (*domain.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, exists := s.budgets[id]
	if !exists {
		return nil, fmt.Errorf("budget %s: %w", id, store.ErrNotFound)
	}
	copied := *b
	return &copied, nil
}

// GetByCategory lists budgets for one category in insertion order.
func (s *BudgetStore) GetByCategory(ctx context.Context, categoryID string) ([]*domain.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Budget
	for _, id := range s.order {
		if b := s.budgets[id]; b.CategoryID == categoryID {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

// GetAll lists every budget in insertion order.
func (s *BudgetStore) GetAll(ctx context.Context) ([]*domain.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Budget, 0, len(s.order))
	for _, id := range s.order {
		copied := *s.budgets[id]
		result = append(result, &copied)
	}
	return result, nil
}

// Delete removes a budget.
func (s *BudgetStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.budgets[id]; !exists {
		return fmt.Errorf("budget %s: %w", id, store.ErrNotFound)
	}
	delete(s.budgets, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

var _ store.BudgetRepository = (*BudgetStore)(nil)
