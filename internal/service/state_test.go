package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/studypilot/backend/internal/domain/bandit"
	"github.com/studypilot/backend/internal/domain/state"
	"github.com/studypilot/backend/internal/service"
	"github.com/studypilot/backend/internal/store"
)

// fakeStore is an in-memory Store with a switchable outage mode.
type fakeStore struct {
	mu      sync.Mutex
	docs    map[string]store.Document
	offline bool
	puts    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: make(map[string]store.Document)}
}

func (f *fakeStore) setOffline(offline bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offline = offline
}

func (f *fakeStore) GetState(ctx context.Context, userID string) (*store.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.offline {
		return nil, errors.New("backend unreachable")
	}
	doc, ok := f.docs[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := doc
	cp.Payload = append([]byte(nil), doc.Payload...)
	return &cp, nil
}

func (f *fakeStore) PutState(ctx context.Context, userID string, payload []byte, expectedVersion int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.offline {
		return 0, errors.New("backend unreachable")
	}
	current := f.docs[userID].Version
	if current != expectedVersion {
		return 0, store.ErrStaleVersion
	}
	next := current + 1
	f.docs[userID] = store.Document{
		UserID:    userID,
		Payload:   append([]byte(nil), payload...),
		Version:   next,
		UpdatedAt: time.Now(),
	}
	f.puts++
	return next, nil
}

func (f *fakeStore) Close() error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(f *fakeStore) *service.StateService {
	return service.NewStateService(f, testLogger(), bandit.DefaultWindowCap)
}

func TestLoad_FreshUser(t *testing.T) {
	ss := newService(newFakeStore())

	st, status := ss.Load(context.Background(), "alice")
	if status != service.StatusOK {
		t.Errorf("status = %q, want ok", status)
	}
	if st.ModeStats[bandit.ModeQuiz].Alpha != 1 {
		t.Error("fresh state missing uniform prior")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	fake := newFakeStore()
	ctx := context.Background()
	banditStore := bandit.NewStore(bandit.DefaultConfig())

	ss := newService(fake)
	st, _ := ss.Load(ctx, "alice")
	banditStore.Update(st.ModeStats, bandit.ModeQuiz, 1.0, time.Now())
	st.Survey = state.Survey{PreferredMode: bandit.ModeQuiz, Completed: true, CompletedAt: time.Now()}

	if status := ss.Save(ctx, "alice", st); status != service.StatusOK {
		t.Fatalf("save status = %q, want ok", status)
	}

	// A second service instance sees exactly what was saved.
	reloaded, status := newService(fake).Load(ctx, "alice")
	if status != service.StatusOK {
		t.Fatalf("reload status = %q", status)
	}
	quiz := reloaded.ModeStats[bandit.ModeQuiz]
	if quiz.Alpha != 2 || quiz.Beta != 1 || quiz.TotalObservations != 1 {
		t.Errorf("reloaded quiz = %+v, want alpha 2, beta 1, 1 observation", quiz)
	}
	if !reloaded.Survey.Completed || reloaded.Survey.PreferredMode != bandit.ModeQuiz {
		t.Errorf("survey lost in round trip: %+v", reloaded.Survey)
	}
}

func TestSave_DegradesAndFlushes(t *testing.T) {
	fake := newFakeStore()
	ctx := context.Background()

	ss := newService(fake)
	st, _ := ss.Load(ctx, "alice")

	fake.setOffline(true)
	if status := ss.Save(ctx, "alice", st); status != service.StatusDegraded {
		t.Fatalf("save during outage = %q, want degraded", status)
	}
	if ss.PendingCount() != 1 {
		t.Fatalf("pending count = %d, want 1", ss.PendingCount())
	}

	// Queued state is what Load serves while degraded.
	if _, status := ss.Load(ctx, "alice"); status != service.StatusDegraded {
		t.Error("load while degraded did not report degraded status")
	}

	fake.setOffline(false)
	ss.FlushPending(ctx)
	if ss.PendingCount() != 0 {
		t.Errorf("pending count after flush = %d, want 0", ss.PendingCount())
	}
	if _, err := fake.GetState(ctx, "alice"); err != nil {
		t.Errorf("flushed state not readable: %v", err)
	}
}

func TestSave_ConcurrentWriterMerged(t *testing.T) {
	fake := newFakeStore()
	ctx := context.Background()
	banditStore := bandit.NewStore(bandit.DefaultConfig())

	// Two sessions for the same user, same backend.
	s1 := newService(fake)
	s2 := newService(fake)

	st1, _ := s1.Load(ctx, "alice")
	st2, _ := s2.Load(ctx, "alice")

	now := time.Now()
	for i := 0; i < 3; i++ {
		banditStore.Update(st1.ModeStats, bandit.ModeQuiz, 1.0, now)
	}
	banditStore.Update(st2.ModeStats, bandit.ModeFlashcard, 0.0, now)

	if status := s1.Save(ctx, "alice", st1); status != service.StatusOK {
		t.Fatalf("first save = %q", status)
	}
	// s2 holds version 0 and loses the race; its save must merge, not
	// overwrite.
	if status := s2.Save(ctx, "alice", st2); status != service.StatusOK {
		t.Fatalf("second save = %q", status)
	}

	final, _ := newService(fake).Load(ctx, "alice")
	quiz := final.ModeStats[bandit.ModeQuiz]
	if quiz.Alpha != 4 || quiz.TotalObservations != 3 {
		t.Errorf("quiz updates lost: %+v", quiz)
	}
	fc := final.ModeStats[bandit.ModeFlashcard]
	if fc.Beta != 2 || fc.TotalObservations != 1 {
		t.Errorf("flashcard updates lost: %+v", fc)
	}
}

func TestSave_SessionAdoptsMergeResult(t *testing.T) {
	fake := newFakeStore()
	ctx := context.Background()
	banditStore := bandit.NewStore(bandit.DefaultConfig())

	s1 := newService(fake)
	s2 := newService(fake)

	st1, _ := s1.Load(ctx, "alice")
	st2, _ := s2.Load(ctx, "alice")

	now := time.Now()
	for i := 0; i < 3; i++ {
		banditStore.Update(st1.ModeStats, bandit.ModeQuiz, 1.0, now)
	}
	banditStore.Update(st2.ModeStats, bandit.ModeFlashcard, 0.0, now)

	if status := s1.Save(ctx, "alice", st1); status != service.StatusOK {
		t.Fatalf("first save = %q", status)
	}
	if status := s2.Save(ctx, "alice", st2); status != service.StatusOK {
		t.Fatalf("merged save = %q", status)
	}

	// st2 is session 2's live state; the merged save must have folded the
	// concurrent quiz updates into it, or the next save overwrites them.
	if quiz := st2.ModeStats[bandit.ModeQuiz]; quiz.Alpha != 4 || quiz.TotalObservations != 3 {
		t.Fatalf("session state missing merge result: %+v", quiz)
	}

	banditStore.Update(st2.ModeStats, bandit.ModeFlashcard, 0.0, now.Add(time.Second))
	if status := s2.Save(ctx, "alice", st2); status != service.StatusOK {
		t.Fatalf("follow-up save = %q", status)
	}

	final, _ := newService(fake).Load(ctx, "alice")
	quiz := final.ModeStats[bandit.ModeQuiz]
	if quiz.Alpha != 4 || quiz.TotalObservations != 3 {
		t.Errorf("follow-up save dropped merged quiz updates: %+v", quiz)
	}
	fc := final.ModeStats[bandit.ModeFlashcard]
	if fc.Beta != 3 || fc.TotalObservations != 2 {
		t.Errorf("flashcard updates wrong after follow-up save: %+v", fc)
	}
}

func TestLoad_CorruptDocumentRepaired(t *testing.T) {
	fake := newFakeStore()
	ctx := context.Background()

	// Alpha below epsilon and negative attempts, injected directly.
	payload := []byte(`{
		"schema": 1,
		"mode_stats": {"quiz": {"alpha": -5, "beta": 0.5, "recent_outcomes": [], "total_observations": 2}},
		"chunk_stats": {"c1": {"chunk_id": "c1", "file_hash": "f1", "attempts": -2, "correct": 1}},
		"file_mapping": {}
	}`)
	if _, err := fake.PutState(ctx, "alice", payload, 0); err != nil {
		t.Fatal(err)
	}

	st, status := newService(fake).Load(ctx, "alice")
	if status != service.StatusOK {
		t.Fatalf("load status = %q", status)
	}
	if alpha, _ := st.ModeStats[bandit.ModeQuiz].Clamped(); alpha != bandit.Epsilon {
		t.Errorf("alpha not repaired: %v", alpha)
	}
	if st.ModeStats[bandit.ModeQuiz].Alpha < bandit.Epsilon {
		t.Errorf("stored alpha still below epsilon: %v", st.ModeStats[bandit.ModeQuiz].Alpha)
	}
	if st.ChunkStats["c1"].Attempts != 0 || st.ChunkStats["c1"].Correct != 0 {
		t.Errorf("chunk counters not repaired: %+v", st.ChunkStats["c1"])
	}
}

func TestLoad_UnparseableDocumentStartsFresh(t *testing.T) {
	fake := newFakeStore()
	ctx := context.Background()
	fake.PutState(ctx, "alice", []byte(`not json at all`), 0)

	st, status := newService(fake).Load(ctx, "alice")
	if status != service.StatusOK {
		t.Fatalf("load status = %q", status)
	}
	if st == nil || st.ModeStats[bandit.ModeQuiz] == nil {
		t.Fatal("expected fresh defaults for unparseable document")
	}
}
