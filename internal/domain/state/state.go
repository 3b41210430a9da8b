package state

import (
	"fmt"
	"math"
	"time"

	"github.com/studypilot/backend/internal/domain/analytics"
	"github.com/studypilot/backend/internal/domain/bandit"
)

// SchemaVersion is written into every persisted document. Readers ignore
// unknown fields and Repair fills missing ones, so bumping it must stay
// backward compatible.
const SchemaVersion = 1

// Survey holds the user's stated modality preference, if any.
type Survey struct {
	PreferredMode bandit.Mode `json:"preferred_mode"`
	Completed     bool        `json:"completed"`
	CompletedAt   time.Time   `json:"completed_at,omitzero"`
}

// EngineState is the aggregate root of the personalization engine: one
// user's bandit posteriors, chunk analytics, file registry and survey.
// It is a plain value threaded through every operation, and only the
// state service writes it to durable storage.
type EngineState struct {
	Schema      int                   `json:"schema"`
	ModeStats   bandit.Stats          `json:"mode_stats"`
	ChunkStats  analytics.Chunks      `json:"chunk_stats"`
	FileMapping analytics.FileMapping `json:"file_mapping"`
	Survey      Survey                `json:"survey"`
	UpdatedAt   time.Time             `json:"updated_at,omitzero"`
}

// New returns the state created at a user's first login: a uniform prior
// for every mode and no analytics.
func New() *EngineState {
	return &EngineState{
		Schema:      SchemaVersion,
		ModeStats:   bandit.NewStats(),
		ChunkStats:  analytics.Chunks{},
		FileMapping: analytics.FileMapping{},
		Survey:      Survey{PreferredMode: bandit.ModeUnknown},
	}
}

// Repair normalizes a loaded state to the nearest valid value and reports
// what it fixed. A corrupted snapshot must never block a study session,
// so every invariant violation is clamped rather than rejected.
func (s *EngineState) Repair(windowCap int) []string {
	var repairs []string

	if s.Schema == 0 {
		s.Schema = SchemaVersion
	}
	if s.ModeStats == nil {
		s.ModeStats = bandit.NewStats()
		repairs = append(repairs, "initialized missing mode stats")
	}
	if s.ChunkStats == nil {
		s.ChunkStats = analytics.Chunks{}
		repairs = append(repairs, "initialized missing chunk stats")
	}
	if s.FileMapping == nil {
		s.FileMapping = analytics.FileMapping{}
		repairs = append(repairs, "initialized missing file mapping")
	}
	if s.Survey.PreferredMode == "" {
		s.Survey.PreferredMode = bandit.ModeUnknown
	}
	if s.Survey.Completed {
		if _, err := bandit.ParseMode(string(s.Survey.PreferredMode)); err != nil && s.Survey.PreferredMode != bandit.ModeUnknown {
			s.Survey = Survey{PreferredMode: bandit.ModeUnknown}
			repairs = append(repairs, "reset survey with invalid preferred mode")
		}
	}

	for _, mode := range bandit.Modes {
		st, ok := s.ModeStats[mode]
		if !ok || st == nil {
			s.ModeStats[mode] = bandit.NewModeStat()
			repairs = append(repairs, fmt.Sprintf("restored missing stats for mode %s", mode))
			continue
		}
		if math.IsNaN(st.Alpha) || math.IsInf(st.Alpha, 0) || st.Alpha < bandit.Epsilon {
			st.Alpha = bandit.Epsilon
			repairs = append(repairs, fmt.Sprintf("clamped alpha for mode %s", mode))
		}
		if math.IsNaN(st.Beta) || math.IsInf(st.Beta, 0) || st.Beta < bandit.Epsilon {
			st.Beta = bandit.Epsilon
			repairs = append(repairs, fmt.Sprintf("clamped beta for mode %s", mode))
		}
		if st.TotalObservations < 0 {
			st.TotalObservations = 0
			repairs = append(repairs, fmt.Sprintf("reset negative observation count for mode %s", mode))
		}
		if st.RecentOutcomes == nil {
			st.RecentOutcomes = []bandit.Outcome{}
		}
		if windowCap > 0 && len(st.RecentOutcomes) > windowCap {
			st.RecentOutcomes = st.RecentOutcomes[len(st.RecentOutcomes)-windowCap:]
			repairs = append(repairs, fmt.Sprintf("truncated oversized outcome window for mode %s", mode))
		}
		for i := range st.RecentOutcomes {
			r := st.RecentOutcomes[i].Reward
			if math.IsNaN(r) || r < 0 {
				st.RecentOutcomes[i].Reward = 0
				repairs = append(repairs, fmt.Sprintf("clamped outcome reward for mode %s", mode))
			} else if r > 1 {
				st.RecentOutcomes[i].Reward = 1
				repairs = append(repairs, fmt.Sprintf("clamped outcome reward for mode %s", mode))
			}
		}
	}

	ordinal := 0
	for id, st := range s.ChunkStats {
		if st == nil {
			delete(s.ChunkStats, id)
			repairs = append(repairs, fmt.Sprintf("dropped nil chunk stat %s", id))
			continue
		}
		if st.ChunkID == "" {
			st.ChunkID = id
		}
		if st.Attempts < 0 {
			st.Attempts = 0
			repairs = append(repairs, fmt.Sprintf("reset negative attempts for chunk %s", id))
		}
		if st.Correct < 0 {
			st.Correct = 0
			repairs = append(repairs, fmt.Sprintf("reset negative correct count for chunk %s", id))
		}
		if st.Correct > st.Attempts {
			st.Correct = st.Attempts
			repairs = append(repairs, fmt.Sprintf("clamped correct count for chunk %s", id))
		}
		if st.Incorrect != st.Attempts-st.Correct {
			st.Incorrect = st.Attempts - st.Correct
			repairs = append(repairs, fmt.Sprintf("rebalanced incorrect count for chunk %s", id))
		}
		if len(st.RecentQuestions) > analytics.QuestionLogCap {
			st.RecentQuestions = st.RecentQuestions[len(st.RecentQuestions)-analytics.QuestionLogCap:]
			repairs = append(repairs, fmt.Sprintf("truncated oversized question log for chunk %s", id))
		}
		if st.Ordinal > ordinal {
			ordinal = st.Ordinal
		}
	}
	for _, st := range s.ChunkStats {
		if st.Ordinal <= 0 {
			ordinal++
			st.Ordinal = ordinal
		}
	}

	return repairs
}

// Clone deep-copies the state so merge candidates can be built without
// mutating the caller's copy.
func (s *EngineState) Clone() *EngineState {
	out := &EngineState{
		Schema:      s.Schema,
		ModeStats:   make(bandit.Stats, len(s.ModeStats)),
		ChunkStats:  make(analytics.Chunks, len(s.ChunkStats)),
		FileMapping: make(analytics.FileMapping, len(s.FileMapping)),
		Survey:      s.Survey,
		UpdatedAt:   s.UpdatedAt,
	}
	for mode, st := range s.ModeStats {
		cp := *st
		cp.RecentOutcomes = append([]bandit.Outcome(nil), st.RecentOutcomes...)
		out.ModeStats[mode] = &cp
	}
	for id, st := range s.ChunkStats {
		cp := *st
		cp.RecentQuestions = append([]analytics.QuestionRecord(nil), st.RecentQuestions...)
		out.ChunkStats[id] = &cp
	}
	for hash, name := range s.FileMapping {
		out.FileMapping[hash] = name
	}
	return out
}
