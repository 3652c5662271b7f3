package worker

import (
	"context"
	"testing"

	"financas/internal/amqp"
	"financas/internal/core"
	"financas/internal/sheets/memory"
)

func sampleTransaction(t *testing.T) core.Transaction {
	t.Helper()
	amount, err := core.ParseAmount("45,90")
	if err != nil {
		t.Fatalf("ParseAmount: %v", err)
	}
	date, err := core.ParseDate("2024-03-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	return core.Transaction{
		Kind:        core.Expense,
		Amount:      amount,
		Description: "mercado",
		Category:    "food",
		Date:        date,
	}
}

func TestHandleCreatedAppendsToMirror(t *testing.T) {
	mirror := memory.New()
	w := NewMirrorWorker(mirror)

	msg := amqp.NewTransactionMessage(amqp.EventCreated, 1, sampleTransaction(t))
	if err := w.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}

	rows := mirror.Rows()
	if len(rows) != 1 {
		t.Fatalf("mirror rows = %d, want 1", len(rows))
	}
	if got := core.FormatAmount(rows[0].Amount); got != "45.90" {
		t.Errorf("mirrored amount = %s, want 45.90", got)
	}
	if rows[0].Description != "mercado" {
		t.Errorf("mirrored description = %q, want %q", rows[0].Description, "mercado")
	}
}

func TestHandleDeletedRemovesFromMirror(t *testing.T) {
	mirror := memory.New()
	w := NewMirrorWorker(mirror)
	ctx := context.Background()

	tx := sampleTransaction(t)
	if err := w.HandleMessage(ctx, amqp.NewTransactionMessage(amqp.EventCreated, 1, tx)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := w.HandleMessage(ctx, amqp.NewTransactionMessage(amqp.EventDeleted, 1, tx)); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if rows := mirror.Rows(); len(rows) != 0 {
		t.Errorf("mirror rows = %d, want 0", len(rows))
	}
}

func TestHandleDeletedMissingRowIsNotAnError(t *testing.T) {
	mirror := memory.New()
	w := NewMirrorWorker(mirror)

	msg := amqp.NewTransactionMessage(amqp.EventDeleted, 7, sampleTransaction(t))
	if err := w.HandleMessage(context.Background(), msg); err != nil {
		t.Errorf("HandleMessage() error = %v, want nil", err)
	}
}

func TestHandleUnknownEvent(t *testing.T) {
	w := NewMirrorWorker(memory.New())

	msg := amqp.NewTransactionMessage("transaction.updated", 1, sampleTransaction(t))
	if err := w.HandleMessage(context.Background(), msg); err == nil {
		t.Error("HandleMessage() error = nil, want error for unknown event")
	}
}

func TestHandleCreatedBadSnapshot(t *testing.T) {
	w := NewMirrorWorker(memory.New())

	msg := amqp.NewTransactionMessage(amqp.EventCreated, 1, sampleTransaction(t))
	msg.Amount = "abc"
	if err := w.HandleMessage(context.Background(), msg); err == nil {
		t.Error("HandleMessage() error = nil, want decode error")
	}
}
