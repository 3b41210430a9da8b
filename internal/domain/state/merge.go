package state

import (
	"github.com/studypilot/backend/internal/domain/analytics"
	"github.com/studypilot/backend/internal/domain/bandit"
)

// Merge reconciles two states that diverged from a common base snapshot,
// as happens when a concurrent session won the write race. Additive
// counters (alpha, beta, attempts, correct, observation totals) merge by
// increment over the base so neither side's updates are lost; survey and
// file naming are last-write-wins by timestamp.
//
// base may be nil (no common snapshot known); counters then merge over
// the fresh-login defaults, which is correct for two first sessions
// racing each other.
func Merge(base, local, remote *EngineState, windowCap int) *EngineState {
	if base == nil {
		base = New()
	}
	merged := remote.Clone()
	merged.Schema = SchemaVersion

	localNewer := local.UpdatedAt.After(remote.UpdatedAt)

	for _, mode := range bandit.Modes {
		baseStat := base.ModeStats[mode]
		if baseStat == nil {
			baseStat = bandit.NewModeStat()
		}
		localStat := local.ModeStats[mode]
		if localStat == nil {
			continue
		}
		target := merged.ModeStats[mode]
		if target == nil {
			target = bandit.NewModeStat()
			merged.ModeStats[mode] = target
		}

		target.Alpha += localStat.Alpha - baseStat.Alpha
		target.Beta += localStat.Beta - baseStat.Beta

		newObs := localStat.TotalObservations - baseStat.TotalObservations
		if newObs > 0 {
			target.TotalObservations += newObs
			// Carry over only the outcomes observed since the base; the
			// remote side already holds the shared history.
			if newObs > len(localStat.RecentOutcomes) {
				newObs = len(localStat.RecentOutcomes)
			}
			fresh := localStat.RecentOutcomes[len(localStat.RecentOutcomes)-newObs:]
			target.RecentOutcomes = append(target.RecentOutcomes, fresh...)
			if windowCap > 0 && len(target.RecentOutcomes) > windowCap {
				target.RecentOutcomes = target.RecentOutcomes[len(target.RecentOutcomes)-windowCap:]
			}
		}
	}

	for id, localChunk := range local.ChunkStats {
		var baseAttempts, baseCorrect int
		if baseChunk, ok := base.ChunkStats[id]; ok {
			baseAttempts, baseCorrect = baseChunk.Attempts, baseChunk.Correct
		}

		target, ok := merged.ChunkStats[id]
		if !ok {
			cp := *localChunk
			cp.RecentQuestions = append([]analytics.QuestionRecord(nil), localChunk.RecentQuestions...)
			merged.ChunkStats[id] = &cp
			continue
		}
		newAttempts := localChunk.Attempts - baseAttempts
		target.Attempts += newAttempts
		target.Correct += localChunk.Correct - baseCorrect
		target.Incorrect = target.Attempts - target.Correct
		if localChunk.LastAttempt.After(target.LastAttempt) {
			target.LastAttempt = localChunk.LastAttempt
		}
		if target.SampleText == "" {
			target.SampleText = localChunk.SampleText
		}
		// Carry over only the questions asked since the base; the remote
		// side already holds the shared log.
		if n := newAttempts; n > 0 {
			if n > len(localChunk.RecentQuestions) {
				n = len(localChunk.RecentQuestions)
			}
			fresh := localChunk.RecentQuestions[len(localChunk.RecentQuestions)-n:]
			target.RecentQuestions = append(target.RecentQuestions, fresh...)
			if len(target.RecentQuestions) > analytics.QuestionLogCap {
				target.RecentQuestions = target.RecentQuestions[len(target.RecentQuestions)-analytics.QuestionLogCap:]
			}
		}
	}

	for hash, name := range local.FileMapping {
		if _, ok := merged.FileMapping[hash]; !ok || localNewer {
			merged.FileMapping[hash] = name
		}
	}

	if local.Survey.CompletedAt.After(remote.Survey.CompletedAt) {
		merged.Survey = local.Survey
	}
	if localNewer {
		merged.UpdatedAt = local.UpdatedAt
	}

	return merged
}
