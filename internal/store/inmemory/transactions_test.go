package inmemory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/moneymind/backend/internal/domain"
	"github.com/moneymind/backend/internal/store"
)

func newTransaction(t *testing.T, account, description string) *domain.Transaction {
	t.Helper()
	m, err := domain.MoneyFromString("-9.99", domain.USD)
	if err != nil {
		t.Fatalf("MoneyFromString failed: %v", err)
	}
	tx, err := domain.NewTransaction(account, time.Now(), m, description, "", nil)
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}
	return tx
}

func TestTransactionStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewTransactionStore()
	tx := newTransaction(t, "acc-1", "Coffee")

	if err := s.Save(ctx, tx); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.GetByID(ctx, tx.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Description != "Coffee" || got.AccountID != "acc-1" {
		t.Errorf("retrieved transaction differs: %+v", got)
	}
}

func TestTransactionStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewTransactionStore()

	if _, err := s.GetByID(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetByID: got %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Delete: got %v, want ErrNotFound", err)
	}
}

func TestTransactionStoreSaveRequiresID(t *testing.T) {
	s := NewTransactionStore()
	tx := newTransaction(t, "acc-1", "Coffee")
	tx.ID = ""

	if err := s.Save(context.Background(), tx); err == nil {
		t.Error("Save without an ID should fail")
	}
}

func TestTransactionStoreInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewTransactionStore()

	var ids []string
	for i := 0; i < 5; i++ {
		tx := newTransaction(t, "acc-1", fmt.Sprintf("item %d", i))
		if err := s.Save(ctx, tx); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		ids = append(ids, tx.ID)
	}

	all, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("got %d transactions, want 5", len(all))
	}
	for i, tx := range all {
		if tx.ID != ids[i] {
			t.Errorf("position %d: got %s, want %s (insertion order)", i, tx.ID, ids[i])
		}
	}

	// Updating an existing transaction keeps its position.
	all[2].UpdateDescription("renamed")
	if err := s.Save(ctx, all[2]); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	again, _ := s.GetAll(ctx)
	if len(again) != 5 || again[2].Description != "renamed" {
		t.Error("update should replace in place, not append")
	}
}

func TestTransactionStoreGetByAccount(t *testing.T) {
	ctx := context.Background()
	s := NewTransactionStore()

	for _, account := range []string{"acc-1", "acc-2", "acc-1"} {
		if err := s.Save(ctx, newTransaction(t, account, "x")); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	got, err := s.GetByAccount(ctx, "acc-1")
	if err != nil {
		t.Fatalf("GetByAccount failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d transactions for acc-1, want 2", len(got))
	}
}

func TestTransactionStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewTransactionStore()
	tx := newTransaction(t, "acc-1", "Coffee")
	tx.AddTag("morning")
	if err := s.Save(ctx, tx); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Mutating the original after Save must not leak into the store.
	tx.UpdateDescription("tampered")
	tx.Tags[0] = "tampered"

	got, err := s.GetByID(ctx, tx.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Description != "Coffee" || got.Tags[0] != "morning" {
		t.Errorf("stored state was mutated through the caller's pointer: %+v", got)
	}

	// Mutating a retrieved copy must not leak either.
	got.UpdateDescription("tampered again")
	again, _ := s.GetByID(ctx, tx.ID)
	if again.Description != "Coffee" {
		t.Error("stored state was mutated through a retrieved copy")
	}
}

func TestTransactionStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewTransactionStore()
	tx := newTransaction(t, "acc-1", "Coffee")
	if err := s.Save(ctx, tx); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := s.Delete(ctx, tx.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.GetByID(ctx, tx.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("deleted transaction still retrievable: %v", err)
	}
	all, _ := s.GetAll(ctx)
	if len(all) != 0 {
		t.Errorf("GetAll after delete: got %d, want 0", len(all))
	}
}
