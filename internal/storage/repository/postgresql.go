// Package repository implements the PostgreSQL storage for Gari Langu:
// users, cars, service records, reminders, payments and notifications.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Register the pgx driver for database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Domain errors surfaced by status-guarded updates and lookups.
var (
	// ErrNotFound means the referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidStateTransition means a payment was not in the state
	// the transition requires (e.g. verifying a non-pending payment).
	ErrInvalidStateTransition = errors.New("invalid state transition")
)

// Storage encapsulates the PostgreSQL connection and implements the
// repository methods used by the services.
type Storage struct {
	DB *sql.DB
}

// New opens a connection to PostgreSQL and pings it.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady verifies the schema has been migrated.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'reminders'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table reminders missing or query error: %w", err)
	}
	return nil
}
