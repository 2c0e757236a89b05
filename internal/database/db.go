package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
	path string
}

// New creates a new database connection
func New(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// WAL mode for better concurrency
	conn, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)

	return &DB{
		conn: conn,
		path: dbPath,
	}, nil
}

// NewInMemory creates an in-memory database, used by tests
func NewInMemory() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	// A single connection keeps every query on the same in-memory store.
	conn.SetMaxOpenConns(1)

	return &DB{conn: conn, path: ":memory:"}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying sql.DB connection
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Migrate creates the schema the tracking repositories expect.
// Statements are idempotent, so running on every start is safe.
func (db *DB) Migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS weight_entries (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL UNIQUE,
			weight_kg REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS calorie_logs (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL UNIQUE,
			calories INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS habit_logs (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS user_profile (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			height_cm REAL NOT NULL,
			birth_date TEXT NOT NULL,
			sex TEXT NOT NULL,
			activity_level TEXT NOT NULL,
			training_days_per_week INTEGER NOT NULL DEFAULT 0,
			tdee_override INTEGER,
			goal_weight_kg REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_weight_entries_date ON weight_entries(date)`,
		`CREATE INDEX IF NOT EXISTS idx_calorie_logs_date ON calorie_logs(date)`,
		`CREATE INDEX IF NOT EXISTS idx_habit_logs_date ON habit_logs(date)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Begin starts a new transaction
func (db *DB) Begin() (*sql.Tx, error) {
	return db.conn.Begin()
}

// Exec executes a query without returning rows
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.conn.Exec(query, args...)
}

// Query executes a query that returns rows
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.conn.Query(query, args...)
}

// QueryRow executes a query that returns at most one row
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRow(query, args...)
}
