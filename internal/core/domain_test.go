package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"income", Income, true},
		{"expense", Expense, true},
		{" income ", Income, true},
		{"", "", false},
		{"transfer", "", false},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.want, got, err)
			}
		} else if !errors.Is(err, ErrInvalidKind) {
			t.Fatalf("%q expected ErrInvalidKind, got %v", tc.in, err)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-05")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.String() != "2024-03-05" {
		t.Fatalf("round-trip: got %s", d.String())
	}
	if !d.In(2024, 3) || d.In(2024, 4) {
		t.Fatalf("In() misclassified %s", d)
	}
	for _, bad := range []string{"", "2024-13-01", "05/03/2024", "2024-3-5"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("%q expected error", bad)
		}
	}
}

func validTx() Transaction {
	return Transaction{
		Kind:        Expense,
		Amount:      decimal.RequireFromString("45.90"),
		Description: "lunch",
		Category:    "food",
		Date:        NewDate(2024, 3, 5),
	}
}

func TestTransactionValidate(t *testing.T) {
	if err := validTx().Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Transaction)
		want   error
	}{
		{"bad kind", func(tx *Transaction) { tx.Kind = "transfer" }, ErrInvalidKind},
		{"negative amount", func(tx *Transaction) { tx.Amount = decimal.RequireFromString("-1") }, ErrInvalidAmount},
		{"zero date", func(tx *Transaction) { tx.Date = Date{} }, ErrInvalidDate},
		{"empty description", func(tx *Transaction) { tx.Description = "  " }, ErrEmptyDescription},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := validTx()
			tc.mutate(&tx)
			if err := tx.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	long := validTx()
	long.Description = strings.Repeat("x", 201)
	if err := long.Validate(); err == nil {
		t.Fatal("expected error for long description")
	}
}

func TestNormalizeDefaultsCategory(t *testing.T) {
	tx := validTx()
	tx.Category = "  "
	tx = tx.Normalize()
	if tx.Category != DefaultCategory {
		t.Fatalf("expected %q, got %q", DefaultCategory, tx.Category)
	}

	tx = validTx()
	tx = tx.Normalize()
	if tx.Category != "food" {
		t.Fatalf("explicit category overwritten: %q", tx.Category)
	}
}
