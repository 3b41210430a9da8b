package sizing_test

import (
	"testing"

	"github.com/studypilot/backend/internal/domain/bandit"
	"github.com/studypilot/backend/internal/domain/sizing"
)

func TestItemCount_WithinRange(t *testing.T) {
	sizer := sizing.NewSizer(sizing.DefaultConfig())

	ranges := map[bandit.Mode]sizing.Range{
		bandit.ModeQuiz:        {Min: 3, Max: 20},
		bandit.ModeFlashcard:   {Min: 5, Max: 25},
		bandit.ModeInteractive: {Min: 2, Max: 8},
	}

	for mode, rng := range ranges {
		for _, chunks := range []int{0, 1, 5, 10, 50, 1000} {
			for _, avg := range []float64{0, 0.25, 0.5, 0.75, 1} {
				got := sizer.ItemCount(mode, chunks, avg, true)
				if got < rng.Min || got > rng.Max {
					t.Errorf("%s chunks=%d avg=%v: count %d outside [%d,%d]",
						mode, chunks, avg, got, rng.Min, rng.Max)
				}
			}
		}
	}
}

func TestItemCount_MonotonicInChunkCount(t *testing.T) {
	sizer := sizing.NewSizer(sizing.DefaultConfig())

	for _, mode := range bandit.Modes {
		prev := -1
		for chunks := 0; chunks <= 100; chunks++ {
			got := sizer.ItemCount(mode, chunks, 0.6, true)
			if got < prev {
				t.Fatalf("%s: count dropped from %d to %d at chunks=%d", mode, prev, got, chunks)
			}
			prev = got
		}
	}
}

func TestItemCount_EmptyWindowNoAdjustment(t *testing.T) {
	sizer := sizing.NewSizer(sizing.DefaultConfig())

	// With no evidence the multiplier must stay at 1 regardless of the
	// average passed in.
	base := sizer.ItemCount(bandit.ModeQuiz, 10, 0, false)
	alsoBase := sizer.ItemCount(bandit.ModeQuiz, 10, 1.0, false)
	if base != alsoBase {
		t.Errorf("empty-window counts differ: %d vs %d", base, alsoBase)
	}
}

func TestItemCount_RewardTrendShiftsVolume(t *testing.T) {
	sizer := sizing.NewSizer(sizing.DefaultConfig())

	// 10 chunks of flashcards sit mid-range (base 10), leaving headroom
	// for the multiplier in both directions.
	low := sizer.ItemCount(bandit.ModeFlashcard, 10, 0.0, true)
	mid := sizer.ItemCount(bandit.ModeFlashcard, 10, 0.5, true)
	high := sizer.ItemCount(bandit.ModeFlashcard, 10, 1.0, true)

	if !(low < mid && mid < high) {
		t.Errorf("expected low < mid < high, got %d, %d, %d", low, mid, high)
	}
	if mid != 10 {
		t.Errorf("neutral average changed the base count: got %d, want 10", mid)
	}
}

func TestItemCount_MultiplierClamped(t *testing.T) {
	cfg := sizing.DefaultConfig()
	cfg.Gain = 10 // extreme gain must still respect the clamp
	sizer := sizing.NewSizer(cfg)

	high := sizer.ItemCount(bandit.ModeFlashcard, 10, 1.0, true)
	if high != 13 { // base 10 * capped multiplier 1.3
		t.Errorf("clamped high count = %d, want 13", high)
	}
	low := sizer.ItemCount(bandit.ModeFlashcard, 10, 0.0, true)
	if low != 7 { // base 10 * floored multiplier 0.7
		t.Errorf("clamped low count = %d, want 7", low)
	}
}
