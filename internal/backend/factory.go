// Package backend builds the transaction store selected by configuration.
package backend

import (
	"fmt"
	"log/slog"

	"financas/internal/config"
	"financas/internal/storage"
	"financas/internal/storage/jsonfile"
	"financas/internal/storage/postgres"
	"financas/internal/storage/sqlite"
)

// Result bundles the store with the resources built around it. PostgresDB is
// non-nil only for the postgres backing, where the auth service shares the
// same pool.
type Result struct {
	Store      storage.TransactionStore
	PostgresDB *postgres.Store
	Cleanup    func() error
}

// Open creates the store named by DATA_BACKEND. The config must already be
// validated.
func Open(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.DataBackend {
	case "json":
		store := jsonfile.New(cfg.JSONDataFile)
		logger.Info("Initialized json backend", "file", cfg.JSONDataFile)
		return &Result{Store: store, Cleanup: store.Close}, nil

	case "sqlite":
		store, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: store, Cleanup: store.Close}, nil

	case "postgres":
		store, err := postgres.New(cfg.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("initialize postgres backend: %w", err)
		}
		logger.Info("Initialized postgres backend")
		return &Result{Store: store, PostgresDB: store, Cleanup: store.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported data backend: %s", cfg.DataBackend)
	}
}
