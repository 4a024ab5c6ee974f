package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound is returned when a referenced row does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidOrder is returned for an employee order key outside the allow-list
	ErrInvalidOrder = errors.New("invalid order key")
)

// DefaultMaxOpenConns is the pool size used when none is configured
const DefaultMaxOpenConns = 10

// DB wraps the SQLite connection to the Northwind dataset
type DB struct {
	conn *sql.DB
	path string
}

// New opens the database at path and verifies the connection
func New(path string, maxOpenConns int) (*DB, error) {
	// Foreign keys stay off: the dataset is shared with other tools that never enabled them
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if maxOpenConns < 1 {
		maxOpenConns = DefaultMaxOpenConns
	}
	// SQLite with WAL mode supports concurrent reads but serializes writes
	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetMaxIdleConns(max(1, maxOpenConns/2))

	log.Debug().Str("path", path).Int("max_open_conns", maxOpenConns).Msg("Database connection established")

	return &DB{
		conn: conn,
		path: path,
	}, nil
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// Close releases the underlying connection pool
func (db *DB) Close() error {
	if db == nil || db.conn == nil {
		return nil
	}
	log.Debug().Str("path", db.path).Msg("Closing database")
	return db.conn.Close()
}

// Ping checks that the database still answers
func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Transaction wraps a function in a database transaction
func (db *DB) Transaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("Failed to rollback transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
