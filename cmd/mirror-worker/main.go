package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"financas/internal/amqp"
	"financas/internal/cli"
	gsheet "financas/internal/sheets/google"
	"financas/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting mirror-worker")

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the mirror worker")
		os.Exit(1)
	}
	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("GOOGLE_SPREADSHEET_ID is required for the mirror worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mirror, err := gsheet.NewFromEnv(ctx)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	w := worker.NewMirrorWorker(mirror)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consumeLoop(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, w)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}

// consumeLoop keeps a consumer running, reconnecting with exponential backoff
// when the broker connection drops.
func consumeLoop(ctx context.Context, url, exchange, queue string, w *worker.MirrorWorker) error {
	logger := slog.With("component", "consume_loop")
	attempt := 0

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		client, err := amqp.NewClient(url, exchange, queue)
		if err != nil {
			attempt++
			delay := amqp.ExponentialBackoff(attempt)
			logger.Warn("AMQP connect failed, retrying",
				"attempt", attempt,
				"delay", delay.String(),
				"error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			continue
		}
		attempt = 0
		logger.Info("Connected to broker", "exchange", exchange, "queue", queue)

		err = client.Consume(ctx, func(msg *amqp.TransactionMessage) error {
			return w.HandleMessage(ctx, msg)
		})
		_ = client.Close()

		if err == nil || errors.Is(err, context.Canceled) {
			return err
		}
		if !amqp.IsConnectionError(err) {
			return err
		}

		attempt++
		delay := amqp.ExponentialBackoff(attempt)
		logger.Warn("Broker connection lost, reconnecting",
			"attempt", attempt,
			"delay", delay.String(),
			"error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}
