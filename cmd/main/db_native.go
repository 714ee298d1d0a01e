//go:build !cgo_sqlite

package main

import (
	_ "modernc.org/sqlite"
)

const sqliteDriver = "sqlite"

// The pure Go driver takes its pragmas as _pragma query parameters.
func sqliteDSN(path string) string {
	return path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}
