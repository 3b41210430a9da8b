// internal/service/state.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/studypilot/backend/internal/domain/state"
	"github.com/studypilot/backend/internal/store"
)

// Status reports how a load or save went. Degraded means the durable
// backend was unreachable and the engine is running on locally queued
// state; it is a warning for the caller, never an error.
type Status string

const (
	StatusOK       Status = "ok"
	StatusDegraded Status = "degraded"
)

// StateService owns the persistence lifecycle of engine states: load with
// repair, save with stale-write merging, and a local queue that absorbs
// backend outages. It keeps the last persisted snapshot per user as the
// merge base for concurrent-write reconciliation.
type StateService struct {
	store     store.Store
	logger    *slog.Logger
	windowCap int

	mu       sync.Mutex
	versions map[string]int64              // backend CAS version per user
	bases    map[string]*state.EngineState // last persisted snapshot per user
	pending  map[string]*state.EngineState // queued writes while degraded
}

// NewStateService creates a StateService. windowCap bounds outcome windows
// during repair and merge.
func NewStateService(s store.Store, logger *slog.Logger, windowCap int) *StateService {
	return &StateService{
		store:     s,
		logger:    logger,
		windowCap: windowCap,
		versions:  make(map[string]int64),
		bases:     make(map[string]*state.EngineState),
		pending:   make(map[string]*state.EngineState),
	}
}

// Load returns the user's engine state, repaired to a valid value. It
// never fails: an absent document yields fresh defaults, an unreachable
// backend yields the queued or fresh state with a Degraded status, and a
// corrupt document is repaired in place and logged.
func (ss *StateService) Load(ctx context.Context, userID string) (*state.EngineState, Status) {
	ss.mu.Lock()
	if queued, ok := ss.pending[userID]; ok {
		// A queued write is newer than anything the backend holds.
		st := queued.Clone()
		ss.mu.Unlock()
		return st, StatusDegraded
	}
	ss.mu.Unlock()

	doc, err := ss.store.GetState(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		st := state.New()
		ss.track(userID, 0, st)
		return st, StatusOK
	}
	if err != nil {
		ss.logger.Warn("state backend unreachable on load, starting degraded",
			"user_id", userID, "error", err)
		return state.New(), StatusDegraded
	}

	st := &state.EngineState{}
	if err := json.Unmarshal(doc.Payload, st); err != nil {
		// A snapshot we cannot even parse must not block the session.
		ss.logger.Error("corrupt state document, starting fresh",
			"user_id", userID, "version", doc.Version, "error", err)
		st = state.New()
	}
	for _, repair := range st.Repair(ss.windowCap) {
		ss.logger.Warn("repaired state invariant", "user_id", userID, "repair", repair)
	}

	ss.track(userID, doc.Version, st)
	return st, StatusOK
}

// Save persists the state, merging when a concurrent writer got there
// first. On backend failure the write is queued locally and the caller
// gets a Degraded status; the queue is flushed in the background after
// the next successful save.
func (ss *StateService) Save(ctx context.Context, userID string, st *state.EngineState) Status {
	ss.mu.Lock()
	version := ss.versions[userID]
	base := ss.bases[userID]
	ss.mu.Unlock()

	st.UpdatedAt = time.Now().UTC()

	payload, err := json.Marshal(st)
	if err != nil {
		// Cannot happen for a well-formed state; treat as degraded rather
		// than dropping the session's updates.
		ss.logger.Error("failed to encode state", "user_id", userID, "error", err)
		return ss.queue(userID, st)
	}

	newVersion, err := ss.store.PutState(ctx, userID, payload, version)
	if errors.Is(err, store.ErrStaleVersion) {
		return ss.saveMerged(ctx, userID, st, base)
	}
	if err != nil {
		ss.logger.Warn("state backend unreachable on save, queueing locally",
			"user_id", userID, "error", err)
		return ss.queue(userID, st)
	}

	ss.track(userID, newVersion, st)
	ss.dequeue(userID)
	go ss.FlushPending(context.Background())
	return StatusOK
}

// saveMerged reloads the winning document, merges our updates into it by
// increment and retries once. Losing the second race as well queues the
// merged state instead of looping.
func (ss *StateService) saveMerged(ctx context.Context, userID string, st, base *state.EngineState) Status {
	doc, err := ss.store.GetState(ctx, userID)
	if err != nil {
		ss.logger.Warn("reload after stale write failed, queueing locally",
			"user_id", userID, "error", err)
		return ss.queue(userID, st)
	}

	remote := &state.EngineState{}
	if err := json.Unmarshal(doc.Payload, remote); err != nil {
		ss.logger.Error("corrupt remote state during merge", "user_id", userID, "error", err)
		remote = state.New()
	}
	remote.Repair(ss.windowCap)

	merged := state.Merge(base, st, remote, ss.windowCap)
	ss.logger.Info("merged concurrent state update",
		"user_id", userID, "remote_version", doc.Version)

	// The caller keeps st as its live session state, so it must adopt
	// the merged view; a later save from the pre-merge state would
	// overwrite the concurrent updates the merge just preserved.
	*st = *merged

	payload, err := json.Marshal(st)
	if err != nil {
		ss.logger.Error("failed to encode merged state", "user_id", userID, "error", err)
		return ss.queue(userID, st)
	}

	newVersion, err := ss.store.PutState(ctx, userID, payload, doc.Version)
	if err != nil {
		ss.logger.Warn("merged save failed, queueing locally",
			"user_id", userID, "error", err)
		return ss.queue(userID, st)
	}

	ss.track(userID, newVersion, st)
	ss.dequeue(userID)
	return StatusOK
}

// FlushPending retries every queued write once. Safe to call from any
// goroutine; each user's entry is dropped only after a successful put.
func (ss *StateService) FlushPending(ctx context.Context) {
	ss.mu.Lock()
	users := make([]string, 0, len(ss.pending))
	for userID := range ss.pending {
		users = append(users, userID)
	}
	ss.mu.Unlock()

	for _, userID := range users {
		ss.mu.Lock()
		st, ok := ss.pending[userID]
		version := ss.versions[userID]
		base := ss.bases[userID]
		ss.mu.Unlock()
		if !ok {
			continue
		}

		payload, err := json.Marshal(st)
		if err != nil {
			continue
		}
		newVersion, err := ss.store.PutState(ctx, userID, payload, version)
		if errors.Is(err, store.ErrStaleVersion) {
			if ss.saveMerged(ctx, userID, st, base) == StatusOK {
				ss.logger.Info("flushed queued state after merge", "user_id", userID)
			}
			continue
		}
		if err != nil {
			continue // still unreachable, keep it queued
		}

		ss.track(userID, newVersion, st)
		ss.dequeue(userID)
		ss.logger.Info("flushed queued state", "user_id", userID)
	}
}

// PendingCount reports how many users have queued writes.
func (ss *StateService) PendingCount() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.pending)
}

func (ss *StateService) track(userID string, version int64, st *state.EngineState) {
	snapshot := st.Clone()
	ss.mu.Lock()
	ss.versions[userID] = version
	ss.bases[userID] = snapshot
	ss.mu.Unlock()
}

func (ss *StateService) queue(userID string, st *state.EngineState) Status {
	snapshot := st.Clone()
	ss.mu.Lock()
	ss.pending[userID] = snapshot
	ss.mu.Unlock()
	return StatusDegraded
}

func (ss *StateService) dequeue(userID string) {
	ss.mu.Lock()
	delete(ss.pending, userID)
	ss.mu.Unlock()
}
