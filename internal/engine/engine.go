// internal/engine/engine.go
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/studypilot/backend/internal/domain/analytics"
	"github.com/studypilot/backend/internal/domain/bandit"
	"github.com/studypilot/backend/internal/domain/reward"
	"github.com/studypilot/backend/internal/domain/sizing"
	"github.com/studypilot/backend/internal/domain/state"
	"github.com/studypilot/backend/internal/service"
)

// Config bundles the tuning knobs of every engine component.
type Config struct {
	Bandit    bandit.Config
	Sizing    sizing.Config
	Analytics analytics.Config
}

// DefaultConfig returns the standard engine tuning.
func DefaultConfig() Config {
	return Config{
		Bandit:    bandit.DefaultConfig(),
		Sizing:    sizing.DefaultConfig(),
		Analytics: analytics.DefaultConfig(),
	}
}

// Engine is the personalization and analytics facade. Every operation
// loads the user's state, applies the domain logic and persists the
// result; mutation is serialized per user, never across users.
type Engine struct {
	states      *service.StateService
	bandits     *bandit.Store
	recommender *bandit.Recommender
	sizer       *sizing.Sizer
	aggregator  *analytics.Aggregator
	logger      *slog.Logger

	mu      sync.Mutex
	userMus map[string]*sync.Mutex
	cache   map[string]*state.EngineState // active session state per user
}

// New creates an Engine. The recommender is injected so callers control
// the random source (seeded in tests, entropy-seeded in production).
func New(states *service.StateService, recommender *bandit.Recommender, cfg Config, logger *slog.Logger) *Engine {
	return &Engine{
		states:      states,
		bandits:     bandit.NewStore(cfg.Bandit),
		recommender: recommender,
		sizer:       sizing.NewSizer(cfg.Sizing),
		aggregator:  analytics.NewAggregator(cfg.Analytics),
		logger:      logger,
		userMus:     make(map[string]*sync.Mutex),
		cache:       make(map[string]*state.EngineState),
	}
}

// lockUser serializes all engine operations for one user.
func (e *Engine) lockUser(userID string) func() {
	e.mu.Lock()
	mu, ok := e.userMus[userID]
	if !ok {
		mu = &sync.Mutex{}
		e.userMus[userID] = mu
	}
	e.mu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// sessionState returns the user's live state, loading it on first touch.
// Callers must hold the user lock.
func (e *Engine) sessionState(ctx context.Context, userID string) *state.EngineState {
	if st, ok := e.cache[userID]; ok {
		return st
	}
	st, status := e.states.Load(ctx, userID)
	if status == service.StatusDegraded {
		e.logger.Warn("session started on degraded state", "user_id", userID)
	}
	e.cache[userID] = st
	return st
}

// ── Mutations ───────────────────────────────────────────────────────────────

// ReportFeedback folds an engagement signal into the mode's posterior.
// An unknown signal is rejected before any state is touched.
func (e *Engine) ReportFeedback(ctx context.Context, userID string, mode bandit.Mode, signal reward.Signal) (service.Status, error) {
	r, err := reward.ToReward(signal)
	if err != nil {
		return "", err
	}
	if _, err := bandit.ParseMode(string(mode)); err != nil {
		return "", err
	}

	defer e.lockUser(userID)()
	st := e.sessionState(ctx, userID)
	e.bandits.Update(st.ModeStats, mode, r, time.Now().UTC())
	return e.states.Save(ctx, userID, st), nil
}

// ReportAnswer records one answered study item against its source chunk.
// questionText, when provided, lands in the chunk's bounded question log.
func (e *Engine) ReportAnswer(ctx context.Context, userID, chunkID, fileHash string, correct bool, questionText, sampleText string) (service.Status, error) {
	defer e.lockUser(userID)()
	st := e.sessionState(ctx, userID)
	e.aggregator.RecordAnswer(st.ChunkStats, chunkID, fileHash, correct, questionText, sampleText, time.Now().UTC())
	return e.states.Save(ctx, userID, st), nil
}

// ReportSurvey stores the user's stated modality preference. "unknown"
// marks a completed survey without a preference; the bandit then keeps
// choosing.
func (e *Engine) ReportSurvey(ctx context.Context, userID string, preferred bandit.Mode) (service.Status, error) {
	if preferred != bandit.ModeUnknown {
		if _, err := bandit.ParseMode(string(preferred)); err != nil {
			return "", err
		}
	}

	defer e.lockUser(userID)()
	st := e.sessionState(ctx, userID)
	st.Survey = state.Survey{
		PreferredMode: preferred,
		Completed:     true,
		CompletedAt:   time.Now().UTC(),
	}
	return e.states.Save(ctx, userID, st), nil
}

// RegisterFile records a friendly name for an uploaded file and returns
// the short hash chunks reference it by.
func (e *Engine) RegisterFile(ctx context.Context, userID, filename string) (string, service.Status, error) {
	defer e.lockUser(userID)()
	st := e.sessionState(ctx, userID)
	hash := e.aggregator.RegisterFile(st.FileMapping, filename)
	return hash, e.states.Save(ctx, userID, st), nil
}

// ── Decisions ───────────────────────────────────────────────────────────────

// Recommend picks the content mode for the user's next study round: the
// survey preference when one is stated, a Thompson sample otherwise.
func (e *Engine) Recommend(ctx context.Context, userID string) bandit.Mode {
	defer e.lockUser(userID)()
	st := e.sessionState(ctx, userID)

	preferred := bandit.ModeUnknown
	if st.Survey.Completed {
		preferred = st.Survey.PreferredMode
	}
	return e.recommender.Recommend(st.ModeStats, preferred)
}

// SizeFor computes how many items to generate for mode from chunkCount
// source chunks, scaled by the mode's recent reward trend.
func (e *Engine) SizeFor(ctx context.Context, userID string, mode bandit.Mode, chunkCount int) (int, error) {
	if _, err := bandit.ParseMode(string(mode)); err != nil {
		return 0, err
	}

	defer e.lockUser(userID)()
	st := e.sessionState(ctx, userID)

	var avg float64
	var hasRecent bool
	if ms, ok := st.ModeStats[mode]; ok {
		avg, hasRecent = ms.RecentAverage()
	}
	return e.sizer.ItemCount(mode, chunkCount, avg, hasRecent), nil
}

// ── Read-only views ─────────────────────────────────────────────────────────

// ModeSnapshot is one arm's posterior for the analytics dashboard.
type ModeSnapshot struct {
	Mode              bandit.Mode `json:"mode"`
	Alpha             float64     `json:"alpha"`
	Beta              float64     `json:"beta"`
	TotalObservations int         `json:"total_observations"`
	RecentAverage     float64     `json:"recent_average"`
}

// ModeStatsSnapshot returns every arm's posterior in priority order.
func (e *Engine) ModeStatsSnapshot(ctx context.Context, userID string) []ModeSnapshot {
	defer e.lockUser(userID)()
	st := e.sessionState(ctx, userID)

	out := make([]ModeSnapshot, 0, len(bandit.Modes))
	for _, mode := range bandit.Modes {
		alpha, beta := e.bandits.Snapshot(st.ModeStats, mode)
		snap := ModeSnapshot{Mode: mode, Alpha: alpha, Beta: beta}
		if ms, ok := st.ModeStats[mode]; ok {
			snap.TotalObservations = ms.TotalObservations
			snap.RecentAverage, _ = ms.RecentAverage()
		}
		out = append(out, snap)
	}
	return out
}

// PerformanceByFile aggregates chunk performance per source document.
func (e *Engine) PerformanceByFile(ctx context.Context, userID string) map[string]analytics.FilePerformance {
	defer e.lockUser(userID)()
	st := e.sessionState(ctx, userID)
	return e.aggregator.PerformanceByFile(st.ChunkStats, st.FileMapping)
}

// StrongWeakTopics classifies sufficiently-attempted chunks.
func (e *Engine) StrongWeakTopics(ctx context.Context, userID string) (strong, weak []analytics.TopicPerformance) {
	defer e.lockUser(userID)()
	st := e.sessionState(ctx, userID)
	return e.aggregator.StrongWeakTopics(st.ChunkStats)
}

// Summary returns the overall performance rollup.
func (e *Engine) Summary(ctx context.Context, userID string) analytics.Summary {
	defer e.lockUser(userID)()
	st := e.sessionState(ctx, userID)
	return e.aggregator.Summarize(st.ChunkStats)
}
