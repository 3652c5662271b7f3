package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"financas/internal/core"
	"financas/internal/storage"
)

// monthData is the cached dashboard payload for one owner and month.
type monthData struct {
	Summary    core.MonthSummary
	ByCategory []core.CategoryAmount
}

func summaryKey(owner string, year, month int) string {
	return owner + "|" + strconv.Itoa(year) + "-" + strconv.Itoa(month)
}

func (s *Server) invalidateSummary(owner string, year, month int) {
	s.summaryCache.Delete(summaryKey(owner, year, month))
}

func (s *Server) getMonthData(ctx context.Context, owner string, year, month int) (monthData, error) {
	key := summaryKey(owner, year, month)

	if data, found := s.summaryCache.Get(key); found {
		slog.DebugContext(ctx, "Summary cache hit", "year", year, "month", month)
		return data, nil
	}

	// A small timeout keeps partials from hanging on a slow backing.
	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()

	txs, err := s.store.List(cctx, owner, storage.Filter{})
	if err != nil {
		return monthData{}, fmt.Errorf("list transactions (year=%d, month=%d): %w", year, month, err)
	}

	data := monthData{Summary: core.Summarize(txs, year, month)}
	for name, amount := range core.ExpensesByCategory(txs, year, month) {
		data.ByCategory = append(data.ByCategory, core.CategoryAmount{Name: name, Amount: amount})
	}
	sort.Slice(data.ByCategory, func(i, j int) bool {
		if data.ByCategory[i].Amount.Equal(data.ByCategory[j].Amount) {
			return data.ByCategory[i].Name < data.ByCategory[j].Name
		}
		return data.ByCategory[i].Amount.GreaterThan(data.ByCategory[j].Amount)
	})

	s.summaryCache.Set(key, data)
	slog.DebugContext(ctx, "Summary cached", "year", year, "month", month, "categories", len(data.ByCategory))
	return data, nil
}

// handleMonthSummary renders the monthly summary partial: income, expenses,
// balance, and the expense breakdown by category.
func (s *Server) handleMonthSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	year, month := parseYearMonth(r)

	md, err := s.getMonthData(r.Context(), owner(r), year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Month summary error", "error", err, "year", year, "month", month)
		_, _ = w.Write([]byte(`<section id="month-summary" class="month-summary"><div class="placeholder">Erro carregando resumo</div></section>`))
		return
	}

	// Scale category bars against the largest expense.
	var max core.CategoryAmount
	if len(md.ByCategory) > 0 {
		max = md.ByCategory[0]
	}

	type row struct {
		Name, Amount string
		Width        int
	}
	data := struct {
		Year     int
		Month    int
		Income   string
		Expenses string
		Balance  string
		Rows     []row
	}{
		Year:     year,
		Month:    month,
		Income:   formatReais(md.Summary.Income),
		Expenses: formatReais(md.Summary.Expenses),
		Balance:  formatReais(md.Summary.Balance),
	}
	for _, c := range md.ByCategory {
		width := 0
		if max.Amount.IsPositive() && c.Amount.IsPositive() {
			// rounded percent of the largest category
			width = int(c.Amount.Mul(hundred).Div(max.Amount).Round(0).IntPart())
			if width > 0 && width < 2 { // keep tiny slices visible
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		data.Rows = append(data.Rows, row{Name: c.Name, Amount: formatReais(c.Amount), Width: width})
	}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="month-summary" class="month-summary"><div class="placeholder">Saldo: ` + data.Balance + `</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "month_summary.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "month_summary.html", "year", year, "month", month)
		_, _ = w.Write([]byte(`<section id="month-summary" class="month-summary"><div class="placeholder">Erro renderizando resumo</div></section>`))
	}
}
