// Package memory is an in-memory MirrorWriter used in tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"financas/internal/core"
	"financas/internal/sheets"
)

type Mirror struct {
	mu   sync.Mutex
	rows []core.Transaction
}

var _ sheets.MirrorWriter = (*Mirror)(nil)

func New() *Mirror {
	return &Mirror{}
}

func (m *Mirror) AppendTransaction(_ context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, t)
	return fmt.Sprintf("row-%d", len(m.rows)), nil
}

func (m *Mirror) RemoveTransaction(_ context.Context, t core.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, row := range m.rows {
		if row.Date.String() == t.Date.String() &&
			row.Kind == t.Kind &&
			row.Amount.Equal(t.Amount) &&
			row.Description == t.Description {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

// Rows returns a copy of the mirrored transactions.
func (m *Mirror) Rows() []core.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.Transaction, len(m.rows))
	copy(out, m.rows)
	return out
}
