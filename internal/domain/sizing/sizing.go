package sizing

import (
	"math"

	"github.com/studypilot/backend/internal/domain/bandit"
)

// Range bounds the number of generated items for one mode.
type Range struct {
	Min int
	Max int
}

// Config tunes how content volume scales with chunk count and recent
// engagement.
type Config struct {
	// Density is items generated per source chunk, before clamping.
	Density map[bandit.Mode]float64

	// Ranges holds the hard per-mode item bounds.
	Ranges map[bandit.Mode]Range

	// Gain scales how strongly the recent reward average shifts volume:
	// multiplier = 1 + Gain*(avg - 0.5).
	Gain float64

	// MultiplierMin/Max clamp the trend multiplier.
	MultiplierMin float64
	MultiplierMax float64
}

// DefaultConfig returns the standard sizing policy.
func DefaultConfig() Config {
	return Config{
		Density: map[bandit.Mode]float64{
			bandit.ModeQuiz:        0.8,
			bandit.ModeFlashcard:   1.0,
			bandit.ModeInteractive: 0.3,
		},
		Ranges: map[bandit.Mode]Range{
			bandit.ModeQuiz:        {Min: 3, Max: 20},
			bandit.ModeFlashcard:   {Min: 5, Max: 25},
			bandit.ModeInteractive: {Min: 2, Max: 8},
		},
		Gain:          0.4,
		MultiplierMin: 0.7,
		MultiplierMax: 1.3,
	}
}

// Sizer computes item counts per modality.
type Sizer struct {
	cfg Config
}

// NewSizer creates a Sizer from cfg. Modes missing from the config fall
// back to the defaults so a partial config cannot produce zero counts.
func NewSizer(cfg Config) *Sizer {
	def := DefaultConfig()
	if cfg.Density == nil {
		cfg.Density = def.Density
	}
	if cfg.Ranges == nil {
		cfg.Ranges = def.Ranges
	}
	if cfg.Gain == 0 {
		cfg.Gain = def.Gain
	}
	if cfg.MultiplierMin == 0 {
		cfg.MultiplierMin = def.MultiplierMin
	}
	if cfg.MultiplierMax == 0 {
		cfg.MultiplierMax = def.MultiplierMax
	}
	return &Sizer{cfg: cfg}
}

// ItemCount returns how many items to generate for mode given the number
// of source chunks and the mode's recent reward average. hasRecent must be
// false when the outcome window is empty; the multiplier then stays at 1
// so sizing never moves on zero evidence.
func (s *Sizer) ItemCount(mode bandit.Mode, chunkCount int, recentAvg float64, hasRecent bool) int {
	rng, ok := s.cfg.Ranges[mode]
	if !ok {
		rng = DefaultConfig().Ranges[bandit.ModeQuiz]
	}
	density, ok := s.cfg.Density[mode]
	if !ok {
		density = 1
	}

	base := clampInt(int(math.Round(float64(chunkCount)*density)), rng.Min, rng.Max)

	multiplier := 1.0
	if hasRecent {
		multiplier = 1 + s.cfg.Gain*(recentAvg-0.5)
		if multiplier < s.cfg.MultiplierMin {
			multiplier = s.cfg.MultiplierMin
		}
		if multiplier > s.cfg.MultiplierMax {
			multiplier = s.cfg.MultiplierMax
		}
	}

	return clampInt(int(math.Round(float64(base)*multiplier)), rng.Min, rng.Max)
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
