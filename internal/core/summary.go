package core

import "github.com/shopspring/decimal"

// MonthSummary holds the income/expense/balance totals for one year+month.
type MonthSummary struct {
	Year     int
	Month    int // 1-12
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}

// CategoryAmount is an expense total aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// Summarize filters the transactions to the given year+month and totals them.
// All arithmetic is decimal; an empty month yields a zero summary.
func Summarize(txs []Transaction, year, month int) MonthSummary {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, t := range txs {
		if !t.Date.In(year, month) {
			continue
		}
		switch t.Kind {
		case Income:
			income = income.Add(t.Amount)
		case Expense:
			expenses = expenses.Add(t.Amount)
		}
	}
	return MonthSummary{
		Year:     year,
		Month:    month,
		Income:   income,
		Expenses: expenses,
		Balance:  income.Sub(expenses),
	}
}

// ExpensesByCategory groups the month's expense transactions by category and
// sums each group. The result is empty when the month has no expenses; the
// presentation layer decides how to render that.
func ExpensesByCategory(txs []Transaction, year, month int) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Kind != Expense || !t.Date.In(year, month) {
			continue
		}
		out[t.Category] = out[t.Category].Add(t.Amount)
	}
	return out
}
