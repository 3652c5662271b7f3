// Package jsonfile persists transactions as a UTF-8 JSON array in a single
// local file.
//
// The whole collection is read into memory and rewritten on every mutation.
// There is no locking between concurrent writers: two processes mutating the
// same file can lose updates (last writer wins). That is an accepted
// limitation of this backing, kept as-is.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"financas/internal/core"
	"financas/internal/storage"
)

// Store is a file-backed transaction store. Identifiers are 1-based list
// positions and shift after a delete, mirroring how the history view
// addresses rows.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// record is the wire shape of one transaction. amount stays decimal text so
// values round-trip exactly.
type record struct {
	Kind        string `json:"kind"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Card        string `json:"card,omitempty"`
	EntryDate   string `json:"entry_date"`
}

func toRecord(t core.Transaction) record {
	return record{
		Kind:        string(t.Kind),
		Amount:      t.Amount.String(),
		Description: t.Description,
		Category:    t.Category,
		Card:        t.Card,
		EntryDate:   t.Date.String(),
	}
}

func fromRecord(r record, id int64) (core.Transaction, error) {
	kind, err := core.ParseKind(r.Kind)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("record %d: %w", id, err)
	}
	amount, err := core.ParseAmount(r.Amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("record %d: %w", id, err)
	}
	date, err := core.ParseDate(r.EntryDate)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("record %d: %w", id, err)
	}
	category := r.Category
	if category == "" {
		category = core.DefaultCategory
	}
	return core.Transaction{
		ID:          id,
		Kind:        kind,
		Amount:      amount,
		Description: r.Description,
		Category:    category,
		Card:        r.Card,
		Date:        date,
	}, nil
}

func (s *Store) load() ([]record, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", storage.ErrUnavailable, s.path, err)
	}
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", storage.ErrUnavailable, s.path, err)
	}
	return records, nil
}

func (s *Store) save(records []record) error {
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: create %s: %v", storage.ErrUnavailable, dir, err)
		}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %v", storage.ErrUnavailable, s.path, err)
	}
	return nil
}

// Add appends the transaction and rewrites the file. The returned id is the
// new record's 1-based position.
func (s *Store) Add(ctx context.Context, _ string, t core.Transaction) (int64, error) {
	t = t.Normalize()
	if err := t.Validate(); err != nil {
		return 0, err
	}
	records, err := s.load()
	if err != nil {
		return 0, err
	}
	records = append(records, toRecord(t))
	if err := s.save(records); err != nil {
		return 0, err
	}
	id := int64(len(records))
	slog.InfoContext(ctx, "Transaction saved to file",
		"path", s.path,
		"id", id,
		"kind", t.Kind,
		"amount", t.Amount.String())
	return id, nil
}

// List returns matching transactions in insertion order.
func (s *Store) List(_ context.Context, _ string, f storage.Filter) ([]core.Transaction, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}
	var out []core.Transaction
	for i, r := range records {
		t, err := fromRecord(r, int64(i+1))
		if err != nil {
			return nil, err
		}
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Delete removes the record at the given 1-based position and rewrites the
// file. Positions after it shift down by one.
func (s *Store) Delete(ctx context.Context, _ string, id int64) error {
	records, err := s.load()
	if err != nil {
		return err
	}
	if id < 1 || id > int64(len(records)) {
		return storage.ErrNotFound
	}
	records = append(records[:id-1], records[id:]...)
	if err := s.save(records); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Transaction deleted from file", "path", s.path, "id", id)
	return nil
}

func (s *Store) Close() error { return nil }
