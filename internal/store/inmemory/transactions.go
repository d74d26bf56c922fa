// Package inmemory provides map-backed repository implementations.
// Data is lost on restart - for persistence, wire a database-backed
// store behind the same interfaces.
package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/moneymind/backend/internal/domain"
	"github.com/moneymind/backend/internal/store"
)

// TransactionStore is an in-memory TransactionRepository. It is safe
// for concurrent use and returns copies so callers cannot mutate stored
// state behind its back.
type TransactionStore struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction
	order        []string // insertion order, so listings are stable
}

// NewTransactionStore creates an empty transaction store.
func NewTransactionStore() *TransactionStore {
	return &TransactionStore{
		transactions: make(map[string]*domain.Transaction),
	}
}

// Save inserts or updates a transaction.
func (s *TransactionStore) Save(ctx context.Context, t *domain.Transaction) error {
	if t.ID == "" {
		return fmt.Errorf("transaction ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.transactions[t.ID]; !exists {
		s.order = append(s.order, t.ID)
	}
	s.transactions[t.ID] = copyTransaction(t)
	return nil
}

// GetByID retrieves one transaction.
func (s *TransactionStore) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.transactions[id]
	if !exists {
		return nil, fmt.Errorf("transaction %s: %w", id, store.ErrNotFound)
	}
	return copyTransaction(t), nil
}

// GetByAccount lists an account's transactions in insertion order.
func (s *TransactionStore) GetByAccount(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Transaction
	for _, id := range s.order {
		if t := s.transactions[id]; t.AccountID == accountID {
			result = append(result, copyTransaction(t))
		}
	}
	return result, nil
}

// GetAll lists every transaction in insertion order.
func (s *TransactionStore) GetAll(ctx context.Context) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Transaction, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, copyTransaction(s.transactions[id]))
	}
	return result, nil
}

// Delete removes a transaction.
func (s *TransactionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.transactions[id]; !exists {
		return fmt.Errorf("transaction %s: %w", id, store.ErrNotFound)
	}
	delete(s.transactions, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func copyTransaction(t *domain.Transaction) *domain.Transaction {
	c := *t
	c.Tags = append([]string(nil), t.Tags...)
	if t.Category != nil {
		cat := *t.Category
		c.Category = &cat
	}
	if t.UpdatedAt != nil {
		ts := *t.UpdatedAt
		c.UpdatedAt = &ts
	}
	return &c
}

var _ store.TransactionRepository = (*TransactionStore)(nil)
