package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/shruggr/subjecttrie/journal"
)

// Store is a SQLite-backed implementation of journal.Store
type Store struct {
	db *sql.DB
}

// Config holds configuration for SQLite
type Config struct {
	DBPath string // Path to SQLite database file
}

// New creates a new SQLite-backed journal
func New(config *Config) (*Store, error) {
	if config.DBPath == "" {
		return nil, fmt.Errorf("DBPath is required")
	}

	db, err := sql.Open("sqlite3", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	store := &Store{db: db}

	// Initialize schema
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS subscriptions (
		pattern     TEXT NOT NULL,
		subscriber  TEXT NOT NULL,
		created_at  INTEGER NOT NULL,

		PRIMARY KEY (pattern, subscriber)
	);

	CREATE INDEX IF NOT EXISTS idx_subscriptions_created_at ON subscriptions(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Put stores a subscription, keeping the original created_at if it exists
func (s *Store) Put(ctx context.Context, rec *journal.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO subscriptions (pattern, subscriber, created_at)
		 VALUES (?, ?, ?)`,
		rec.Pattern, rec.Subscriber, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert subscription: %w", err)
	}
	return nil
}

// Get retrieves one subscription
func (s *Store) Get(ctx context.Context, pattern, subscriber string) (*journal.Record, error) {
	var rec journal.Record

	err := s.db.QueryRowContext(ctx,
		`SELECT pattern, subscriber, created_at
		 FROM subscriptions WHERE pattern = ? AND subscriber = ?`,
		pattern, subscriber,
	).Scan(&rec.Pattern, &rec.Subscriber, &rec.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query subscription: %w", err)
	}

	return &rec, nil
}

// Delete removes one subscription
func (s *Store) Delete(ctx context.Context, pattern, subscriber string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM subscriptions WHERE pattern = ? AND subscriber = ?`,
		pattern, subscriber,
	)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}

// DeletePattern removes every subscription under pattern
func (s *Store) DeletePattern(ctx context.Context, pattern string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM subscriptions WHERE pattern = ?`,
		pattern,
	)
	if err != nil {
		return fmt.Errorf("failed to delete pattern: %w", err)
	}
	return nil
}

// List returns all subscriptions in replay order
func (s *Store) List(ctx context.Context) ([]*journal.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pattern, subscriber, created_at
		 FROM subscriptions ORDER BY created_at, pattern, subscriber`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	var recs []*journal.Record
	for rows.Next() {
		var rec journal.Record
		if err := rows.Scan(&rec.Pattern, &rec.Subscriber, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		recs = append(recs, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}

	return recs, nil
}

// Close releases all database resources
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
