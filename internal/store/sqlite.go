// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS engine_states (
    user_id TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    payload TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

// SQLiteStore persists one JSON state document per user with an integer
// version column for compare-and-swap writes. The whole document is
// replaced inside a transaction, so readers never observe a partial write.
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time check: *SQLiteStore satisfies the Store interface.
var _ Store = (*SQLiteStore)(nil)

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) GetState(ctx context.Context, userID string) (*Document, error) {
	var doc Document
	var payload, updatedAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT user_id, version, payload, updated_at FROM engine_states WHERE user_id = ?",
		userID,
	).Scan(&doc.UserID, &doc.Version, &payload, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	doc.Payload = []byte(payload)
	if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		doc.UpdatedAt = t
	}
	return &doc, nil
}

func (s *SQLiteStore) PutState(ctx context.Context, userID string, payload []byte, expectedVersion int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var current int64
	err = tx.QueryRowContext(ctx,
		"SELECT version FROM engine_states WHERE user_id = ?", userID,
	).Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	if current != expectedVersion {
		return 0, ErrStaleVersion
	}

	next := current + 1
	now := time.Now().UTC().Format(time.RFC3339Nano)

	if current == 0 {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO engine_states (user_id, version, payload, updated_at) VALUES (?, ?, ?, ?)",
			userID, next, string(payload), now,
		)
	} else {
		_, err = tx.ExecContext(ctx,
			"UPDATE engine_states SET version = ?, payload = ?, updated_at = ? WHERE user_id = ?",
			next, string(payload), now, userID,
		)
	}
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return next, nil
}
