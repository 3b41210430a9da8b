package bandit

import "time"

const (
	// Epsilon is the floor for alpha and beta. Rewards in [0,1] starting
	// from Beta(1,1) can never reach it; it guards against corrupt
	// persisted state injected at load time.
	Epsilon = 1e-3

	// DefaultWindowCap bounds the recent-outcome window per mode. The cap
	// only limits the auxiliary history used for trend analysis; alpha,
	// beta and TotalObservations keep accumulating past it.
	DefaultWindowCap = 200
)

// Outcome is one observed reward for a mode.
type Outcome struct {
	Reward float64   `json:"reward"`
	At     time.Time `json:"at"`
}

// ModeStat holds the Beta posterior and recent history for one arm.
type ModeStat struct {
	Alpha             float64   `json:"alpha"`
	Beta              float64   `json:"beta"`
	RecentOutcomes    []Outcome `json:"recent_outcomes"`
	TotalObservations int       `json:"total_observations"`
}

// NewModeStat returns the uniform Beta(1,1) prior for a fresh arm.
func NewModeStat() *ModeStat {
	return &ModeStat{
		Alpha:          1,
		Beta:           1,
		RecentOutcomes: []Outcome{},
	}
}

// Observe folds one reward into the posterior and appends it to the
// bounded window, evicting the oldest entry when the cap is exceeded.
func (m *ModeStat) Observe(r float64, at time.Time, cap int) {
	m.Alpha += r
	m.Beta += 1 - r
	m.TotalObservations++

	m.RecentOutcomes = append(m.RecentOutcomes, Outcome{Reward: r, At: at})
	if cap > 0 && len(m.RecentOutcomes) > cap {
		m.RecentOutcomes = m.RecentOutcomes[len(m.RecentOutcomes)-cap:]
	}
}

// Clamped returns alpha and beta with the epsilon floor applied.
func (m *ModeStat) Clamped() (alpha, beta float64) {
	alpha, beta = m.Alpha, m.Beta
	if alpha < Epsilon {
		alpha = Epsilon
	}
	if beta < Epsilon {
		beta = Epsilon
	}
	return alpha, beta
}

// RecentAverage returns the mean reward over the window and whether any
// outcomes exist. Callers must not act on the average when ok is false.
func (m *ModeStat) RecentAverage() (avg float64, ok bool) {
	if len(m.RecentOutcomes) == 0 {
		return 0, false
	}
	var sum float64
	for _, o := range m.RecentOutcomes {
		sum += o.Reward
	}
	return sum / float64(len(m.RecentOutcomes)), true
}
