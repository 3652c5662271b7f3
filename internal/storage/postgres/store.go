// Package postgres stores transactions in a remote Postgres table. This is
// the multi-user backing: every statement carries the owner predicate, so one
// user's records are never visible to another.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"financas/internal/core"
	"financas/internal/storage"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
}

// New opens the database and creates the schema idempotently. user_id is
// nullable so data recorded by the single-user version survives the upgrade
// to the multi-user one.
func New(connStr string) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("%w: open postgres: %v", storage.ErrUnavailable, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping postgres: %v", storage.ErrUnavailable, err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			id   TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id          SERIAL PRIMARY KEY,
			user_id     TEXT,
			kind        TEXT NOT NULL,
			amount      NUMERIC NOT NULL,
			description TEXT NOT NULL,
			category    TEXT NOT NULL DEFAULT 'other',
			card        TEXT NOT NULL DEFAULT '',
			entry_date  DATE NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("%w: create schema: %v", storage.ErrUnavailable, err)
		}
	}
	return nil
}

// DB exposes the underlying handle for the identity layer, which shares this
// database.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Add(ctx context.Context, owner string, t core.Transaction) (int64, error) {
	t = t.Normalize()
	if err := t.Validate(); err != nil {
		return 0, err
	}

	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO transactions (user_id, kind, amount, description, category, card, entry_date)
		 VALUES (NULLIF($1, ''), $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		owner, string(t.Kind), t.Amount.String(), t.Description, t.Category, t.Card, t.Date.String(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: insert transaction: %v", storage.ErrUnavailable, err)
	}

	slog.InfoContext(ctx, "Transaction saved to Postgres",
		"id", id,
		"kind", t.Kind,
		"amount", t.Amount.String())
	return id, nil
}

// List returns the owner's transactions ordered by entry date, then id.
func (s *Store) List(ctx context.Context, owner string, f storage.Filter) ([]core.Transaction, error) {
	query := `SELECT id, COALESCE(user_id, ''), kind, amount::text, description, category, card,
		 to_char(entry_date, 'YYYY-MM-DD')
		 FROM transactions`
	conds := []string{"($1 = '' OR user_id = $1)"}
	args := []any{owner}
	if f.Kind != "" {
		args = append(args, string(f.Kind))
		conds = append(conds, fmt.Sprintf("kind = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Card != "" {
		args = append(args, f.Card)
		conds = append(conds, fmt.Sprintf("card = $%d", len(args)))
	}
	query += " WHERE " + strings.Join(conds, " AND ") + " ORDER BY entry_date, id"

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
		if err := rows.Scan(&t.ID, &t.Owner, &kind, &amount, &t.Description, &t.Category, &t.Card, &entryDate); err != nil {
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

func (s *Store) Delete(ctx context.Context, owner string, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = $1 AND ($2 = '' OR user_id = $2)`,
		id, owner)
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

	slog.InfoContext(ctx, "Transaction deleted from Postgres", "id", id, "owner", owner)
	return nil
}

// ProfileName returns the display name stored for an owner, or "" when none
// has been saved yet.
func (s *Store) ProfileName(ctx context.Context, ownerID string) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM profiles WHERE id = $1`, ownerID).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: get profile: %v", storage.ErrUnavailable, err)
	}
	return name, nil
}

// SaveProfileName inserts or updates the display name for an owner.
func (s *Store) SaveProfileName(ctx context.Context, ownerID, name string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, name) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`,
		ownerID, name)
	if err != nil {
		return fmt.Errorf("%w: save profile: %v", storage.ErrUnavailable, err)
	}
	return nil
}
