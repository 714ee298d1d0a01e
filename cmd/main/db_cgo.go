//go:build cgo_sqlite

package main

import (
	_ "github.com/mattn/go-sqlite3"
)

const sqliteDriver = "sqlite3"

// The cgo driver takes its pragmas as DSN query parameters.
func sqliteDSN(path string) string {
	return path + "?_journal_mode=WAL&_busy_timeout=5000"
}
