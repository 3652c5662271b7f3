package sheets

import (
	"context"

	"financas/internal/core"
)

// MirrorWriter is the outbound port of the mirror worker: it reflects
// recorded transactions into an external spreadsheet.
type MirrorWriter interface {
	// AppendTransaction adds one row and returns a reference to it.
	AppendTransaction(ctx context.Context, t core.Transaction) (rowRef string, err error)

	// RemoveTransaction clears the first row matching the snapshot. Removing
	// a row that is not mirrored is not an error.
	RemoveTransaction(ctx context.Context, t core.Transaction) error
}
