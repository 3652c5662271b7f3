package jsonfile

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
	return New(filepath.Join(t.TempDir(), "data.json"))
}

func mustAdd(t *testing.T, s *Store, kind core.Kind, amount, desc, category, card, date string) int64 {
	t.Helper()
	a, err := core.ParseAmount(amount)
	if err != nil {
		t.Fatalf("parse amount %q: %v", amount, err)
	}
	d, err := core.ParseDate(date)
	if err != nil {
		t.Fatalf("parse date %q: %v", date, err)
	}
	id, err := s.Add(context.Background(), "", core.Transaction{
		Kind:        kind,
		Amount:      a,
		Description: desc,
		Category:    category,
		Card:        card,
		Date:        d,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	return id
}

func TestEmptyStore(t *testing.T) {
	s := newTestStore(t)
	txs, err := s.List(context.Background(), "", storage.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 0 {
		t.Fatalf("expected empty list, got %d", len(txs))
	}
	sum := core.Summarize(txs, 2024, 3)
	if !sum.Income.IsZero() || !sum.Expenses.IsZero() {
		t.Fatalf("expected zero summary, got %+v", sum)
	}
}

func TestRoundTrip(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, core.Expense, "45,90", "groceries", "food", "Nubank", "2024-03-05")
	mustAdd(t, s, core.Income, "1000.00", "salary", "", "", "2024-03-01")

	// A second store over the same file sees identical content.
	reloaded, err := New(s.path).List(context.Background(), "", storage.Filter{})
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(reloaded))
	}
	if reloaded[0].Description != "groceries" || reloaded[0].Card != "Nubank" {
		t.Fatalf("first record mangled: %+v", reloaded[0])
	}
	if core.FormatAmount(reloaded[0].Amount) != "45.90" {
		t.Fatalf("amount drifted: %s", reloaded[0].Amount)
	}
	if reloaded[1].Category != core.DefaultCategory {
		t.Fatalf("blank category not defaulted: %q", reloaded[1].Category)
	}
	if reloaded[1].Date.String() != "2024-03-01" {
		t.Fatalf("date mangled: %s", reloaded[1].Date)
	}
}

func TestRoundTripRewriteStable(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, core.Expense, "12.34", "a", "food", "", "2024-01-02")
	mustAdd(t, s, core.Income, "0.01", "b", "other", "Inter", "2024-01-03")

	first, err := s.List(context.Background(), "", storage.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// Rewrite by deleting and re-adding the last record; earlier values must
	// come back unchanged.
	if err := s.Delete(context.Background(), "", 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	mustAdd(t, s, core.Income, "0.01", "b", "other", "Inter", "2024-01-03")

	second, err := s.List(context.Background(), "", storage.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("length changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Amount.Equal(second[i].Amount) || first[i].Description != second[i].Description {
			t.Fatalf("record %d changed: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestListFilters(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, core.Expense, "10", "a", "food", "Nubank", "2024-03-01")
	mustAdd(t, s, core.Expense, "20", "b", "transport", "Inter", "2024-03-02")
	mustAdd(t, s, core.Income, "30", "c", "other", "Nubank", "2024-03-03")

	ctx := context.Background()

	all, _ := s.List(ctx, "", storage.Filter{})
	unfiltered, _ := s.List(ctx, "", storage.Filter{Kind: "", Category: "", Card: ""})
	if len(all) != 3 || len(unfiltered) != 3 {
		t.Fatalf("empty filter should match everything: %d vs %d", len(all), len(unfiltered))
	}

	expenses, _ := s.List(ctx, "", storage.Filter{Kind: core.Expense})
	if len(expenses) != 2 {
		t.Fatalf("kind filter: expected 2, got %d", len(expenses))
	}
	food, _ := s.List(ctx, "", storage.Filter{Category: "food"})
	if len(food) != 1 || food[0].Description != "a" {
		t.Fatalf("category filter: got %+v", food)
	}
	nubank, _ := s.List(ctx, "", storage.Filter{Card: "Nubank"})
	if len(nubank) != 2 {
		t.Fatalf("card filter: expected 2, got %d", len(nubank))
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, core.Expense, "10", "first", "food", "", "2024-03-01")
	mustAdd(t, s, core.Expense, "20", "second", "food", "", "2024-03-02")
	mustAdd(t, s, core.Expense, "30", "third", "food", "", "2024-03-03")

	ctx := context.Background()
	if err := s.Delete(ctx, "", 2); err != nil {
		t.Fatalf("delete: %v", err)
	}

	txs, _ := s.List(ctx, "", storage.Filter{})
	if len(txs) != 2 {
		t.Fatalf("expected 2 remaining, got %d", len(txs))
	}
	if txs[0].Description != "first" || txs[1].Description != "third" {
		t.Fatalf("relative order broken: %+v", txs)
	}

	if err := s.Delete(ctx, "", 99); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	after, _ := s.List(ctx, "", storage.Filter{})
	if len(after) != 2 {
		t.Fatalf("failed delete mutated collection: %d", len(after))
	}
}

func TestAddRejectsInvalid(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add(context.Background(), "", core.Transaction{
		Kind:        "transfer",
		Description: "x",
		Date:        core.NewDate(2024, 1, 1),
	})
	if !errors.Is(err, core.ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
	txs, _ := s.List(context.Background(), "", storage.Filter{})
	if len(txs) != 0 {
		t.Fatal("rejected add must not mutate the store")
	}
}
