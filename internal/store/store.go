package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrStaleVersion reports that the persisted document moved on since
	// the caller loaded it; the caller must merge and retry.
	ErrStaleVersion = errors.New("stale state version")
)

// Document is one user's serialized engine state as held by the backend.
// Payload is an opaque versioned JSON document; Version is the backend's
// compare-and-swap counter, unrelated to the payload's schema version.
type Document struct {
	UserID    string
	Payload   []byte
	Version   int64
	UpdatedAt time.Time
}

// Store is the persistence contract the engine depends on. PutState is
// atomic from the caller's perspective: either the full new payload
// becomes the durably readable value or the previous one stays readable.
type Store interface {
	// GetState returns the current document, or ErrNotFound for a user
	// with no persisted state yet.
	GetState(ctx context.Context, userID string) (*Document, error)

	// PutState writes payload when the stored version still equals
	// expectedVersion (0 for a first write) and returns the new version.
	// Returns ErrStaleVersion when a concurrent writer won the race.
	PutState(ctx context.Context, userID string, payload []byte, expectedVersion int64) (int64, error)

	Close() error
}
