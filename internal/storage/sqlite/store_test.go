package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"financas/internal/core"
	"financas/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "financas.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func add(t *testing.T, s *Store, kind core.Kind, amount, desc, category, date string) int64 {
	t.Helper()
	a, _ := core.ParseAmount(amount)
	d, _ := core.ParseDate(date)
	id, err := s.Add(context.Background(), "", core.Transaction{
		Kind: kind, Amount: a, Description: desc, Category: category, Date: d,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	return id
}

func TestAddListDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id1 := add(t, s, core.Expense, "45,90", "groceries", "food", "2024-03-05")
	id2 := add(t, s, core.Income, "1000.00", "salary", "", "2024-03-01")
	if id1 == id2 {
		t.Fatalf("ids not unique: %d", id1)
	}

	txs, err := s.List(ctx, "", storage.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2, got %d", len(txs))
	}
	// Ordered by entry date: the income (03-01) comes first.
	if txs[0].Description != "salary" || txs[1].Description != "groceries" {
		t.Fatalf("date ordering broken: %+v", txs)
	}
	if core.FormatAmount(txs[1].Amount) != "45.90" {
		t.Fatalf("amount drifted: %s", txs[1].Amount)
	}
	if txs[0].Category != core.DefaultCategory {
		t.Fatalf("blank category not defaulted: %q", txs[0].Category)
	}

	if err := s.Delete(ctx, "", id1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	txs, _ = s.List(ctx, "", storage.Filter{})
	if len(txs) != 1 || txs[0].ID != id2 {
		t.Fatalf("wrong record deleted: %+v", txs)
	}

	if err := s.Delete(ctx, "", id1); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	add(t, s, core.Expense, "10", "a", "food", "2024-03-01")
	add(t, s, core.Expense, "20", "b", "transport", "2024-03-02")
	add(t, s, core.Income, "30", "c", "other", "2024-03-03")

	expenses, err := s.List(ctx, "", storage.Filter{Kind: core.Expense})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(expenses) != 2 {
		t.Fatalf("kind filter: expected 2, got %d", len(expenses))
	}

	food, _ := s.List(ctx, "", storage.Filter{Kind: core.Expense, Category: "food"})
	if len(food) != 1 || food[0].Description != "a" {
		t.Fatalf("combined filter: got %+v", food)
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "financas.db")

	s1, err := New(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	add(t, s1, core.Expense, "10", "a", "food", "2024-03-01")
	s1.Close()

	// Re-opening runs migrations again over an up-to-date schema.
	s2, err := New(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()
	txs, err := s2.List(context.Background(), "", storage.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("data lost across reopen: %d", len(txs))
	}
}
