package http

import (
	"log/slog"
	"net/http"

	"financas/internal/export"
	"financas/internal/storage"
)

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.List(r.Context(), owner(r), storage.Filter{})
	if err != nil {
		slog.ErrorContext(r.Context(), "Export list error", "error", err, "format", "csv")
		http.Error(w, "erro ao exportar", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transacoes.csv"`)
	if err := export.WriteCSV(w, txs); err != nil {
		slog.ErrorContext(r.Context(), "CSV export error", "error", err)
	}
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.List(r.Context(), owner(r), storage.Filter{})
	if err != nil {
		slog.ErrorContext(r.Context(), "Export list error", "error", err, "format", "xlsx")
		http.Error(w, "erro ao exportar", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="transacoes.xlsx"`)
	if err := export.WriteXLSX(w, txs); err != nil {
		slog.ErrorContext(r.Context(), "XLSX export error", "error", err)
	}
}
