package amqp

import (
	"encoding/json"
	"time"

	"financas/internal/core"
)

// Event names carried in the message envelope.
const (
	EventCreated = "transaction.created"
	EventDeleted = "transaction.deleted"
)

// TransactionMessage is the mirror event published on create and delete.
// It carries a full snapshot of the record: file-backed identifiers are list
// positions and shift after deletes, so the worker cannot re-read by id.
type TransactionMessage struct {
	Event       string    `json:"event"`
	ID          int64     `json:"id"`
	Kind        string    `json:"kind"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Card        string    `json:"card,omitempty"`
	EntryDate   string    `json:"entry_date"`
	Owner       string    `json:"owner,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewTransactionMessage snapshots a transaction into an event message.
func NewTransactionMessage(event string, id int64, t core.Transaction) *TransactionMessage {
	return &TransactionMessage{
		Event:       event,
		ID:          id,
		Kind:        string(t.Kind),
		Amount:      t.Amount.String(),
		Description: t.Description,
		Category:    t.Category,
		Card:        t.Card,
		EntryDate:   t.Date.String(),
		Owner:       t.Owner,
		Timestamp:   time.Now(),
	}
}

// Transaction reconstructs the snapshot for the mirror writer.
func (m *TransactionMessage) Transaction() (core.Transaction, error) {
	kind, err := core.ParseKind(m.Kind)
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := core.ParseAmount(m.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	date, err := core.ParseDate(m.EntryDate)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		ID:          m.ID,
		Kind:        kind,
		Amount:      amount,
		Description: m.Description,
		Category:    m.Category,
		Card:        m.Card,
		Date:        date,
		Owner:       m.Owner,
	}, nil
}

// ToJSON converts the message to JSON bytes
func (m *TransactionMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionMessageFromJSON creates a message from JSON bytes
func TransactionMessageFromJSON(data []byte) (*TransactionMessage, error) {
	var msg TransactionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
