package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func tx(kind Kind, amount, category, date string) Transaction {
	d, _ := ParseDate(date)
	return Transaction{
		Kind:        kind,
		Amount:      decimal.RequireFromString(amount),
		Description: "t",
		Category:    category,
		Date:        d,
	}
}

func TestSummarizeMarchScenario(t *testing.T) {
	amount, err := ParseAmount("45,90")
	if err != nil {
		t.Fatalf("parse amount: %v", err)
	}
	txs := []Transaction{
		{Kind: Expense, Amount: amount, Description: "groceries", Category: "food", Date: NewDate(2024, 3, 5)},
		tx(Income, "1000.00", "other", "2024-03-01"),
	}

	s := Summarize(txs, 2024, 3)
	if FormatAmount(s.Income) != "1000.00" {
		t.Fatalf("income: got %s", FormatAmount(s.Income))
	}
	if FormatAmount(s.Expenses) != "45.90" {
		t.Fatalf("expenses: got %s", FormatAmount(s.Expenses))
	}
	if FormatAmount(s.Balance) != "954.10" {
		t.Fatalf("balance: got %s", FormatAmount(s.Balance))
	}

	byCat := ExpensesByCategory(txs, 2024, 3)
	if len(byCat) != 1 || FormatAmount(byCat["food"]) != "45.90" {
		t.Fatalf("expenses by category: got %v", byCat)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, 2024, 3)
	if !s.Income.IsZero() || !s.Expenses.IsZero() || !s.Balance.IsZero() {
		t.Fatalf("expected zero summary, got %+v", s)
	}
	if m := ExpensesByCategory(nil, 2024, 3); len(m) != 0 {
		t.Fatalf("expected empty map, got %v", m)
	}
}

func TestSummarizeIgnoresOtherMonths(t *testing.T) {
	txs := []Transaction{
		tx(Expense, "10.00", "food", "2024-02-29"),
		tx(Expense, "20.00", "food", "2024-03-01"),
		tx(Income, "5.00", "other", "2024-04-01"),
	}
	s := Summarize(txs, 2024, 3)
	if FormatAmount(s.Expenses) != "20.00" || !s.Income.IsZero() {
		t.Fatalf("month filter broken: %+v", s)
	}
}

func TestSummarizeAdditive(t *testing.T) {
	txs := []Transaction{tx(Income, "100.00", "other", "2024-03-10")}
	before := Summarize(txs, 2024, 3)

	txs = append(txs, tx(Income, "25.50", "other", "2024-03-11"))
	after := Summarize(txs, 2024, 3)

	delta := after.Income.Sub(before.Income)
	if FormatAmount(delta) != "25.50" {
		t.Fatalf("expected income delta 25.50, got %s", FormatAmount(delta))
	}
}
