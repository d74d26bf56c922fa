package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/moneymind/backend/internal/domain"
	"github.com/moneymind/backend/internal/store"
)

// CategoryStore is an in-memory CategoryRepository.
type CategoryStore struct {
	mu         sync.RWMutex
	categories map[string]*domain.Category
	order      []string
}

// NewCategoryStore creates an empty category store.
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{
		categories: make(map[string]*domain.Category),
	}
}

// Save inserts or updates a category.
func (s *CategoryStore) Save(ctx context.Context, c *domain.Category) error {
	if c.ID == "" {
		return fmt.Errorf("category ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.categories[c.ID]; !exists {
		s.order = append(s.order, c.ID)
	}
	s.categories[c.ID] = copyCategory(c)
	return nil
}

// GetByID retrieves one category.
func (s *CategoryStore) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.categories[id]
	if !exists {
		return nil, fmt.Errorf("category %s: %w", id, store.ErrNotFound)
	}
	return copyCategory(c), nil
}

// GetAll lists every category in insertion order.
func (s *CategoryStore) GetAll(ctx context.Context) ([]*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Category, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, copyCategory(s.categories[id]))
	}
	return result, nil
}

// GetActive lists active categories in insertion order.
func (s *CategoryStore) GetActive(ctx context.Context) ([]*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Category
	for _, id := range s.order {
		if c := s.categories[id]; c.IsActive {
			result = append(result, copyCategory(c))
		}
	}
	return result, nil
}

// Delete removes a category.
func (s *CategoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.categories[id]; !exists {
		return fmt.Errorf("category %s: %w", id, store.ErrNotFound)
	}
	delete(s.categories, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func copyCategory(c *domain.Category) *domain.Category {
	copied := *c
	if c.BudgetLimit != nil {
		limit := *c.BudgetLimit
		copied.BudgetLimit = &limit
	}
	return &copied
}

var _ store.CategoryRepository = (*CategoryStore)(nil)
