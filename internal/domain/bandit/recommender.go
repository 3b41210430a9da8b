package bandit

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// ModeUnknown marks an unanswered or skipped survey preference.
const ModeUnknown Mode = "unknown"

// Recommender selects a mode by Thompson Sampling: one Beta draw per arm,
// highest sample wins. Exploration comes from posterior variance and fades
// as observations accumulate.
//
// The random source is injected so recommendations are reproducible in
// tests; production wiring seeds it from crypto-quality entropy.
type Recommender struct {
	src rand.Source
}

// NewRecommender creates a Recommender drawing from src.
func NewRecommender(src rand.Source) *Recommender {
	return &Recommender{src: src}
}

// Recommend returns preferred directly when it names a real mode: a
// completed survey is a hard override and skips sampling entirely. The
// bandit still receives feedback updates elsewhere, so it keeps learning
// for future sessions without a stated preference.
//
// Otherwise each arm's posterior is sampled once and the best sample wins;
// ties fall to the earlier mode in priority order.
func (r *Recommender) Recommend(stats Stats, preferred Mode) Mode {
	if preferred != "" && preferred != ModeUnknown {
		return preferred
	}

	best := Modes[0]
	bestSample := -1.0
	for _, mode := range Modes {
		alpha, beta := 1.0, 1.0
		if st, ok := stats[mode]; ok {
			alpha, beta = st.Clamped()
		}
		sample := distuv.Beta{Alpha: alpha, Beta: beta, Src: r.src}.Rand()
		if sample > bestSample {
			best = mode
			bestSample = sample
		}
	}
	return best
}
