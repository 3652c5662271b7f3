package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"

	// DefaultCategory is applied when a transaction is recorded without one.
	DefaultCategory = "other"

	// DateFormat is the textual form of entry dates everywhere: storage,
	// CLI arguments, and form fields.
	DateFormat = "2006-01-02"
)

type (
	// Kind classifies a transaction as money coming in or going out.
	Kind string

	// Date is a calendar date with no time component. The zero value is
	// invalid.
	Date struct {
		time.Time
	}

	// Transaction is one recorded income or expense event. Transactions are
	// immutable once created; there is no update operation, only create and
	// delete. Amount is always non-negative: the sign is implied by Kind.
	Transaction struct {
		ID          int64
		Kind        Kind
		Amount      decimal.Decimal
		Description string
		Category    string
		Card        string
		Date        Date
		// Owner scopes visibility in the multi-user backing. Empty in the
		// single-user variants.
		Owner string
	}
)

var (
	ErrInvalidKind      = errors.New("invalid kind")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyDescription = errors.New("empty description")
)

// ParseKind validates a kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.TrimSpace(s)) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	default:
		return "", ErrInvalidKind
	}
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// String renders the date in its canonical YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format(DateFormat)
}

// In reports whether the date falls in the given year and month.
func (d Date) In(year, month int) bool {
	return d.Year() == year && int(d.Month()) == month
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Normalize fills defaulted fields. Category falls back to DefaultCategory
// when blank, matching what the add form and the CLI do.
func (t Transaction) Normalize() Transaction {
	t.Description = strings.TrimSpace(t.Description)
	t.Category = strings.TrimSpace(t.Category)
	t.Card = strings.TrimSpace(t.Card)
	if t.Category == "" {
		t.Category = DefaultCategory
	}
	return t
}

func (t Transaction) Validate() error {
	if _, err := ParseKind(string(t.Kind)); err != nil {
		return err
	}
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}
