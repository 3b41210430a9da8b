package engine_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/studypilot/backend/internal/domain/bandit"
	"github.com/studypilot/backend/internal/domain/reward"
	"github.com/studypilot/backend/internal/engine"
	"github.com/studypilot/backend/internal/service"
	"github.com/studypilot/backend/internal/store"
)

// memStore is an in-memory Store with a switchable outage mode.
type memStore struct {
	mu      sync.Mutex
	docs    map[string]store.Document
	offline bool
	puts    int
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[string]store.Document)}
}

func (m *memStore) setOffline(offline bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offline = offline
}

func (m *memStore) GetState(ctx context.Context, userID string) (*store.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.offline {
		return nil, errors.New("backend unreachable")
	}
	doc, ok := m.docs[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := doc
	cp.Payload = append([]byte(nil), doc.Payload...)
	return &cp, nil
}

func (m *memStore) PutState(ctx context.Context, userID string, payload []byte, expectedVersion int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.offline {
		return 0, errors.New("backend unreachable")
	}
	current := m.docs[userID].Version
	if current != expectedVersion {
		return 0, store.ErrStaleVersion
	}
	next := current + 1
	m.docs[userID] = store.Document{
		UserID:    userID,
		Payload:   append([]byte(nil), payload...),
		Version:   next,
		UpdatedAt: time.Now(),
	}
	m.puts++
	return next, nil
}

func (m *memStore) Close() error { return nil }

func newTestEngine(ms *memStore) *engine.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	states := service.NewStateService(ms, logger, bandit.DefaultWindowCap)
	rec := bandit.NewRecommender(rand.NewPCG(7, 11))
	return engine.New(states, rec, engine.DefaultConfig(), logger)
}

func TestFeedbackUpdatesPosteriorAndPersists(t *testing.T) {
	ctx := context.Background()
	ms := newMemStore()
	eng := newTestEngine(ms)

	for _, sig := range []reward.Signal{reward.SignalLike, reward.SignalLike, reward.SignalDislike} {
		status, err := eng.ReportFeedback(ctx, "u1", bandit.ModeQuiz, sig)
		if err != nil {
			t.Fatalf("ReportFeedback(%s): %v", sig, err)
		}
		if status != service.StatusOK {
			t.Fatalf("status = %s, want ok", status)
		}
	}

	snaps := eng.ModeStatsSnapshot(ctx, "u1")
	if len(snaps) != len(bandit.Modes) {
		t.Fatalf("got %d snapshots, want %d", len(snaps), len(bandit.Modes))
	}
	quiz := snaps[0]
	if quiz.Mode != bandit.ModeQuiz {
		t.Fatalf("first snapshot mode = %s, want quiz", quiz.Mode)
	}
	if quiz.Alpha != 3 || quiz.Beta != 2 {
		t.Errorf("quiz posterior = (%.1f, %.1f), want (3, 2)", quiz.Alpha, quiz.Beta)
	}
	if quiz.TotalObservations != 3 {
		t.Errorf("TotalObservations = %d, want 3", quiz.TotalObservations)
	}

	// A second engine over the same backend sees the persisted posterior.
	eng2 := newTestEngine(ms)
	quiz2 := eng2.ModeStatsSnapshot(ctx, "u1")[0]
	if quiz2.Alpha != 3 || quiz2.Beta != 2 {
		t.Errorf("reloaded posterior = (%.1f, %.1f), want (3, 2)", quiz2.Alpha, quiz2.Beta)
	}
}

func TestInvalidSignalRejectedBeforeMutation(t *testing.T) {
	ctx := context.Background()
	ms := newMemStore()
	eng := newTestEngine(ms)

	status, err := eng.ReportFeedback(ctx, "u1", bandit.ModeQuiz, reward.Signal("meh"))
	var invalid *reward.InvalidSignalError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidSignalError", err)
	}
	if status != "" {
		t.Errorf("status = %q on rejected signal, want empty", status)
	}
	if status, err := eng.ReportSurvey(ctx, "u1", bandit.Mode("podcast")); err == nil {
		t.Error("invalid survey mode accepted")
	} else if status != "" {
		t.Errorf("status = %q on rejected survey, want empty", status)
	}
	if ms.puts != 0 {
		t.Errorf("store received %d writes, want 0", ms.puts)
	}
	quiz := eng.ModeStatsSnapshot(ctx, "u1")[0]
	if quiz.Alpha != 1 || quiz.Beta != 1 || quiz.TotalObservations != 0 {
		t.Errorf("posterior mutated by invalid signal: %+v", quiz)
	}
}

func TestSurveyPreferenceOverridesSampling(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(newMemStore())

	// Quiz has by far the best posterior, but the survey says flashcards.
	for i := 0; i < 20; i++ {
		if _, err := eng.ReportFeedback(ctx, "u1", bandit.ModeQuiz, reward.SignalLike); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := eng.ReportSurvey(ctx, "u1", bandit.ModeFlashcard); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		if got := eng.Recommend(ctx, "u1"); got != bandit.ModeFlashcard {
			t.Fatalf("Recommend = %s, want flashcard", got)
		}
	}
}

func TestSurveyUnknownKeepsSampling(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(newMemStore())

	if _, err := eng.ReportSurvey(ctx, "u1", bandit.ModeUnknown); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 60; i++ {
		if _, err := eng.ReportFeedback(ctx, "u1", bandit.ModeQuiz, reward.SignalLike); err != nil {
			t.Fatal(err)
		}
	}

	quizWins := 0
	for i := 0; i < 50; i++ {
		if eng.Recommend(ctx, "u1") == bandit.ModeQuiz {
			quizWins++
		}
	}
	if quizWins < 40 {
		t.Errorf("quiz recommended %d/50 times despite a dominant posterior", quizWins)
	}
}

func TestAnswerFlowFeedsAnalytics(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(newMemStore())

	hash, status, err := eng.RegisterFile(ctx, "u1", "biology.pdf")
	if err != nil || status != service.StatusOK {
		t.Fatalf("RegisterFile: status=%s err=%v", status, err)
	}
	if len(hash) != 8 {
		t.Fatalf("hash %q, want 8 hex chars", hash)
	}

	sample := "the mitochondria is the powerhouse of the cell"
	for i := 0; i < 4; i++ {
		correct := i < 3
		if _, err := eng.ReportAnswer(ctx, "u1", "c1", hash, correct, "What do mitochondria produce?", sample); err != nil {
			t.Fatal(err)
		}
	}

	perf := eng.PerformanceByFile(ctx, "u1")
	fp, ok := perf[hash]
	if !ok {
		t.Fatalf("no performance entry for %s", hash)
	}
	if fp.FileName != "biology.pdf" {
		t.Errorf("FileName = %q, want biology.pdf", fp.FileName)
	}
	if fp.Attempts != 4 || fp.Correct != 3 {
		t.Errorf("attempts/correct = %d/%d, want 4/3", fp.Attempts, fp.Correct)
	}

	sum := eng.Summary(ctx, "u1")
	if sum.TotalAttempts != 4 {
		t.Errorf("summary attempts = %d, want 4", sum.TotalAttempts)
	}
}

func TestSizeForTracksRecentTrend(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(newMemStore())

	neutral, err := eng.SizeFor(ctx, "u1", bandit.ModeFlashcard, 10)
	if err != nil {
		t.Fatal(err)
	}
	if neutral != 10 {
		t.Fatalf("neutral size = %d, want 10", neutral)
	}

	for i := 0; i < 10; i++ {
		if _, err := eng.ReportFeedback(ctx, "u1", bandit.ModeFlashcard, reward.SignalLike); err != nil {
			t.Fatal(err)
		}
	}
	boosted, err := eng.SizeFor(ctx, "u1", bandit.ModeFlashcard, 10)
	if err != nil {
		t.Fatal(err)
	}
	if boosted <= neutral {
		t.Errorf("size after likes = %d, want > %d", boosted, neutral)
	}

	if _, err := eng.SizeFor(ctx, "u1", bandit.Mode("podcast"), 10); err == nil {
		t.Error("unknown mode accepted")
	}
}

func TestDegradedBackendSurfacesStatus(t *testing.T) {
	ctx := context.Background()
	ms := newMemStore()
	eng := newTestEngine(ms)
	ms.setOffline(true)

	status, err := eng.ReportFeedback(ctx, "u1", bandit.ModeQuiz, reward.SignalLike)
	if err != nil {
		t.Fatal(err)
	}
	if status != service.StatusDegraded {
		t.Fatalf("status = %s, want degraded", status)
	}

	// The session keeps working on local state while the backend is down.
	quiz := eng.ModeStatsSnapshot(ctx, "u1")[0]
	if quiz.Alpha != 2 {
		t.Errorf("alpha = %.1f, want 2 while degraded", quiz.Alpha)
	}
}
