// Package sqlite stores transactions in a local SQLite table. Single-user:
// the owner argument is ignored.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"financas/internal/core"
	"financas/internal/storage"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite database: %v", storage.ErrUnavailable, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping database: %v", storage.ErrUnavailable, err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) Add(ctx context.Context, _ string, t core.Transaction) (int64, error) {
	t = t.Normalize()
	if err := t.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (kind, amount, description, category, card, entry_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		string(t.Kind), t.Amount.String(), t.Description, t.Category, t.Card, t.Date.String())
	if err != nil {
		return 0, fmt.Errorf("%w: insert transaction: %v", storage.ErrUnavailable, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", id,
		"kind", t.Kind,
		"amount", t.Amount.String(),
		"entry_date", t.Date.String())
	return id, nil
}

// List returns matching transactions ordered by entry date, then id.
func (s *Store) List(ctx context.Context, _ string, f storage.Filter) ([]core.Transaction, error) {
	query := `SELECT id, kind, amount, description, category, card, entry_date
		 FROM transactions`
	var conds []string
	var args []any
	if f.Kind != "" {
		conds = append(conds, "kind = ?")
		args = append(args, string(f.Kind))
	}
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if f.Card != "" {
		conds = append(conds, "card = ?")
		args = append(args, f.Card)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY entry_date, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query transactions: %v", storage.ErrUnavailable, err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			t                       core.Transaction
			kind, amount, entryDate string
		)
		if err := rows.Scan(&t.ID, &kind, &amount, &t.Description, &t.Category, &t.Card, &entryDate); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if t.Kind, err = core.ParseKind(kind); err != nil {
			return nil, fmt.Errorf("row %d: %w", t.ID, err)
		}
		if t.Amount, err = core.ParseAmount(amount); err != nil {
			return nil, fmt.Errorf("row %d: %w", t.ID, err)
		}
		if t.Date, err = core.ParseDate(entryDate); err != nil {
			return nil, fmt.Errorf("row %d: %w", t.ID, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate transactions: %v", storage.ErrUnavailable, err)
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, _ string, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: delete transaction: %v", storage.ErrUnavailable, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction deleted from SQLite", "id", id)
	return nil
}
