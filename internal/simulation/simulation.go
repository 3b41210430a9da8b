// simulation/simulation.go
package simulation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/studypilot/backend/internal/domain/bandit"
	"github.com/studypilot/backend/internal/domain/reward"
	"github.com/studypilot/backend/internal/engine"
	"github.com/studypilot/backend/internal/service"
	"github.com/studypilot/backend/internal/store"
)

// SimulateWork drives a full feedback loop against an in-memory engine:
// a simulated learner who secretly prefers quizzes likes quiz content
// with probability 0.9 and everything else with probability 0.3. Prints
// how the recommendation distribution shifts as evidence accumulates.
func SimulateWork() {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	states := service.NewStateService(newMemStore(), logger, bandit.DefaultWindowCap)
	rec := bandit.NewRecommender(rand.NewPCG(1, 2))
	eng := engine.New(states, rec, engine.DefaultConfig(), logger)

	rng := rand.New(rand.NewPCG(3, 4))
	likeProb := map[bandit.Mode]float64{
		bandit.ModeQuiz:        0.9,
		bandit.ModeFlashcard:   0.3,
		bandit.ModeInteractive: 0.3,
	}

	const rounds = 300
	picks := make(map[bandit.Mode]int)

	for i := 0; i < rounds; i++ {
		mode := eng.Recommend(ctx, "sim-user")
		picks[mode]++

		signal := reward.SignalDislike
		if rng.Float64() < likeProb[mode] {
			signal = reward.SignalLike
		}
		if _, err := eng.ReportFeedback(ctx, "sim-user", mode, signal); err != nil {
			fmt.Printf("feedback error: %v\n", err)
			return
		}

		if (i+1)%100 == 0 {
			fmt.Printf("\n=== After %d rounds ===\n", i+1)
			for _, snap := range eng.ModeStatsSnapshot(ctx, "sim-user") {
				fmt.Printf("%-12s picked %3d times  Beta(%.1f, %.1f)\n",
					snap.Mode, picks[snap.Mode], snap.Alpha, snap.Beta)
			}
		}
	}

	fmt.Printf("\nFinal sizing for a 10-chunk document:\n")
	for _, mode := range bandit.Modes {
		n, _ := eng.SizeFor(ctx, "sim-user", mode, 10)
		fmt.Printf("%-12s %d items\n", mode, n)
	}
}

// memStore is a throwaway in-memory Store for the simulation.
type memStore struct {
	docs map[string]store.Document
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[string]store.Document)}
}

func (m *memStore) GetState(ctx context.Context, userID string) (*store.Document, error) {
	doc, ok := m.docs[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &doc, nil
}

func (m *memStore) PutState(ctx context.Context, userID string, payload []byte, expectedVersion int64) (int64, error) {
	current := m.docs[userID].Version
	if current != expectedVersion {
		return 0, store.ErrStaleVersion
	}
	m.docs[userID] = store.Document{UserID: userID, Payload: payload, Version: current + 1}
	return current + 1, nil
}

func (m *memStore) Close() error { return nil }
