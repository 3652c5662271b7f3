// Package worker consumes transaction events and mirrors them into a
// spreadsheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"financas/internal/amqp"
	"financas/internal/sheets"
)

type MirrorWorker struct {
	mirror sheets.MirrorWriter
}

func NewMirrorWorker(mirror sheets.MirrorWriter) *MirrorWorker {
	return &MirrorWorker{mirror: mirror}
}

// HandleMessage dispatches a single event. Messages carry a full snapshot of
// the transaction, so no store lookup is needed here.
func (w *MirrorWorker) HandleMessage(ctx context.Context, msg *amqp.TransactionMessage) error {
	switch msg.Event {
	case amqp.EventCreated:
		return w.handleCreated(ctx, msg)
	case amqp.EventDeleted:
		return w.handleDeleted(ctx, msg)
	default:
		return fmt.Errorf("unknown event %q", msg.Event)
	}
}

func (w *MirrorWorker) handleCreated(ctx context.Context, msg *amqp.TransactionMessage) error {
	t, err := msg.Transaction()
	if err != nil {
		return fmt.Errorf("decode transaction: %w", err)
	}

	ref, err := w.mirror.AppendTransaction(ctx, t)
	if err != nil {
		return fmt.Errorf("append to mirror: %w", err)
	}

	slog.InfoContext(ctx, "Transaction mirrored",
		"id", msg.ID,
		"ref", ref,
		"kind", msg.Kind,
		"amount", msg.Amount)
	return nil
}

func (w *MirrorWorker) handleDeleted(ctx context.Context, msg *amqp.TransactionMessage) error {
	t, err := msg.Transaction()
	if err != nil {
		return fmt.Errorf("decode transaction: %w", err)
	}

	if err := w.mirror.RemoveTransaction(ctx, t); err != nil {
		slog.ErrorContext(ctx, "Failed to remove mirrored transaction",
			"id", msg.ID,
			"error", err,
			"timestamp", msg.Timestamp)
		return fmt.Errorf("remove from mirror: %w", err)
	}

	slog.InfoContext(ctx, "Mirrored transaction removed", "id", msg.ID)
	return nil
}
