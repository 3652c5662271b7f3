// Package storage defines the transaction store port and the errors shared by
// its backings (JSON file, SQLite, Postgres).
package storage

import (
	"context"
	"errors"

	"financas/internal/core"
)

var (
	// ErrNotFound is returned by Delete when no record matches the id (and
	// owner, where applicable).
	ErrNotFound = errors.New("transaction not found")

	// ErrUnavailable wraps failures to reach or write the backing store.
	ErrUnavailable = errors.New("store unavailable")
)

// Filter restricts List results. Zero-value fields do not filter.
type Filter struct {
	Kind     core.Kind
	Category string
	Card     string
}

// Matches reports whether a transaction passes the filter. Backings that
// filter in SQL do not use it; the file backing filters loaded records with
// it.
func (f Filter) Matches(t core.Transaction) bool {
	if f.Kind != "" && t.Kind != f.Kind {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Card != "" && t.Card != f.Card {
		return false
	}
	return true
}

// TransactionStore is the port every backing implements.
//
// owner scopes the operation in the multi-user backing; single-user backings
// ignore it. Ordering of List results is backing-specific: the file backing
// returns insertion order, the SQL backings order by entry date then id.
// Callers that need a particular order re-sort downstream.
type TransactionStore interface {
	// Add appends a record and returns the identifier the backing assigned.
	Add(ctx context.Context, owner string, t core.Transaction) (int64, error)

	// List returns all records matching the filter.
	List(ctx context.Context, owner string, f Filter) ([]core.Transaction, error)

	// Delete removes exactly one record by identifier, or ErrNotFound.
	Delete(ctx context.Context, owner string, id int64) error

	Close() error
}
