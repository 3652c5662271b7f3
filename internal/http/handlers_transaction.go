package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"financas/internal/core"
	"financas/internal/storage"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	data := struct {
		Today     string
		Year      int
		Month     int
		MultiUser bool
	}{
		Today:     core.Today().String(),
		Year:      now.Year(),
		Month:     int(now.Month()),
		MultiUser: s.auth != nil,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Formato de requisição inválido</div>`))
		return
	}

	kind, err := core.ParseKind(r.Form.Get("kind"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Tipo inválido: use income ou expense</div>`))
		return
	}

	amount, err := core.ParseAmount(r.Form.Get("amount"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Valor inválido</div>`))
		return
	}

	date := core.Today()
	if v := strings.TrimSpace(r.Form.Get("date")); v != "" {
		date, err = core.ParseDate(v)
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">Data inválida: use AAAA-MM-DD</div>`))
			return
		}
	}

	t := core.Transaction{
		Kind:        kind,
		Amount:      amount,
		Description: sanitizeInput(r.Form.Get("description")),
		Category:    sanitizeInput(r.Form.Get("category")),
		Card:        sanitizeInput(r.Form.Get("card")),
		Date:        date,
		Owner:       owner(r),
	}.Normalize()
	if err := t.Validate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Dados inválidos: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	id, err := s.store.Add(r.Context(), owner(r), t)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction add error", "error", err, "description", t.Description)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Erro ao salvar</div>`))
		return
	}

	if s.publisher != nil {
		if err := s.publisher.PublishCreated(r.Context(), id, t); err != nil {
			// The record is saved; a lost mirror event only delays the sheet.
			slog.WarnContext(r.Context(), "Failed to publish created event", "id", id, "error", err)
		}
	}

	s.invalidateSummary(owner(r), date.Year(), int(date.Month()))
	w.Header().Set("HX-Trigger", `{"transaction:created": {"year": `+strconv.Itoa(date.Year())+`, "month": `+strconv.Itoa(int(date.Month()))+`}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Registrado (#` + strconv.FormatInt(id, 10) + `): ` +
		template.HTMLEscapeString(t.Description) +
		` ` + template.HTMLEscapeString(formatReais(t.Amount)) +
		` (` + template.HTMLEscapeString(t.Category) + `)</div>`))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Formato de requisição inválido</div>`))
		return
	}

	id, err := strconv.ParseInt(strings.TrimSpace(r.Form.Get("id")), 10, 64)
	if err != nil || id <= 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Identificador inválido</div>`))
		return
	}

	// Snapshot the record before the delete: file-backed ids shift after
	// removal and the mirror event needs the full row.
	snapshot, found := s.findByID(r, id)

	if err := s.store.Delete(r.Context(), owner(r), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`<div class="error">Lançamento não encontrado</div>`))
			return
		}
		slog.ErrorContext(r.Context(), "Transaction delete error", "error", err, "id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Erro ao excluir</div>`))
		return
	}

	if found {
		if s.publisher != nil {
			if err := s.publisher.PublishDeleted(r.Context(), id, snapshot); err != nil {
				slog.WarnContext(r.Context(), "Failed to publish deleted event", "id", id, "error", err)
			}
		}
		s.invalidateSummary(owner(r), snapshot.Date.Year(), int(snapshot.Date.Month()))
	}

	w.Header().Set("HX-Trigger", `{"transaction:deleted": {"id": `+strconv.FormatInt(id, 10)+`}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Lançamento excluído</div>`))
}

func (s *Server) findByID(r *http.Request, id int64) (core.Transaction, bool) {
	txs, err := s.store.List(r.Context(), owner(r), storage.Filter{})
	if err != nil {
		return core.Transaction{}, false
	}
	for _, t := range txs {
		if t.ID == id {
			return t, true
		}
	}
	return core.Transaction{}, false
}

// handleTransactionsPartial renders the transaction history partial, filtered
// by kind, category, and card query parameters.
func (s *Server) handleTransactionsPartial(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var f storage.Filter
	if v := strings.TrimSpace(r.URL.Query().Get("kind")); v != "" {
		kind, err := core.ParseKind(v)
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">Tipo inválido: use income ou expense</div>`))
			return
		}
		f.Kind = kind
	}
	f.Category = strings.TrimSpace(r.URL.Query().Get("category"))
	f.Card = strings.TrimSpace(r.URL.Query().Get("card"))

	txs, err := s.store.List(r.Context(), owner(r), f)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction list error", "error", err)
		_, _ = w.Write([]byte(`<div class="placeholder">Erro carregando lançamentos</div>`))
		return
	}

	// The file backing keeps insertion order; present by calendar date.
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.Before(txs[j].Date.Time)
	})

	type row struct {
		ID       int64
		Date     string
		Kind     string
		Desc     string
		Amount   string
		Category string
		Card     string
	}
	data := struct {
		Rows []row
	}{}
	for _, t := range txs {
		data.Rows = append(data.Rows, row{
			ID:       t.ID,
			Date:     t.Date.String(),
			Kind:     string(t.Kind),
			Desc:     t.Description,
			Amount:   formatReais(t.Amount),
			Category: t.Category,
			Card:     t.Card,
		})
	}

	if err := s.templates.ExecuteTemplate(w, "transactions.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "transactions.html")
		_, _ = w.Write([]byte(`<div class="placeholder">Erro renderizando lançamentos</div>`))
	}
}
