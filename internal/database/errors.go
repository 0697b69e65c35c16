package database

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"motoboy-backend/internal/store"
)

// isUniqueViolation reports whether err is a unique or primary key
// violation from either driver
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *moderncsqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

// insertErr wraps a failed insert, mapping unique violations to store.ErrConflict
func insertErr(what string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("failed to create %s: %w", what, store.ErrConflict)
	}
	return fmt.Errorf("failed to create %s: %w", what, err)
}
