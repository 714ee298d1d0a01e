package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/CTAG07/charchain/pkg/runlog"
)

// runLog bundles the database handle with the store built on it.
type runLog struct {
	db    *sql.DB
	store *runlog.Store
}

// openRunLog opens (creating if needed) the run log database at path and
// prepares its schema.
func openRunLog(path string, logger *slog.Logger) (*runLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := sql.Open(sqliteDriver, sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = runlog.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to setup run log schema: %w", err)
	}
	store, err := runlog.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare run log: %w", err)
	}
	store.SetLogger(logger)
	return &runLog{db: db, store: store}, nil
}

func (r *runLog) Close() error {
	r.store.Close()
	return r.db.Close()
}
