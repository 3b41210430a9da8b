package bandit

import "time"

// Stats maps every arm to its posterior. It lives inside the engine state
// document and is mutated in place; the engine serializes access per user.
type Stats map[Mode]*ModeStat

// NewStats returns a Beta(1,1) prior for every mode.
func NewStats() Stats {
	s := make(Stats, len(Modes))
	for _, m := range Modes {
		s[m] = NewModeStat()
	}
	return s
}

// Config tunes the bandit store.
type Config struct {
	WindowCap int // max recent outcomes kept per mode
}

// DefaultConfig returns the standard window cap.
func DefaultConfig() Config {
	return Config{WindowCap: DefaultWindowCap}
}

// Store applies reward updates to a Stats map under a fixed config.
type Store struct {
	cfg Config
}

// NewStore creates a Store. A zero or negative window cap falls back to
// the default so an uninitialized config cannot grow unbounded history.
func NewStore(cfg Config) *Store {
	if cfg.WindowCap <= 0 {
		cfg.WindowCap = DefaultWindowCap
	}
	return &Store{cfg: cfg}
}

// Update folds reward r into the given mode's posterior. Missing mode
// entries (state persisted by an older schema) are created on demand.
func (s *Store) Update(stats Stats, mode Mode, r float64, at time.Time) {
	st, ok := stats[mode]
	if !ok {
		st = NewModeStat()
		stats[mode] = st
	}
	st.Observe(r, at, s.cfg.WindowCap)
}

// Snapshot returns the epsilon-clamped posterior parameters for a mode.
// Unknown modes report the uniform prior.
func (s *Store) Snapshot(stats Stats, mode Mode) (alpha, beta float64) {
	st, ok := stats[mode]
	if !ok {
		return 1, 1
	}
	return st.Clamped()
}
