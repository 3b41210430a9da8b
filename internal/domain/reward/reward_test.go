package reward_test

import (
	"errors"
	"testing"

	"github.com/studypilot/backend/internal/domain/reward"
)

func TestToReward(t *testing.T) {
	cases := []struct {
		signal reward.Signal
		want   float64
	}{
		{reward.SignalLike, 1.0},
		{reward.SignalDislike, 0.0},
		{reward.SignalNeutral, 0.5},
	}

	for _, c := range cases {
		got, err := reward.ToReward(c.signal)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", c.signal, err)
		}
		if got != c.want {
			t.Errorf("ToReward(%q) = %v, want %v", c.signal, got, c.want)
		}
	}
}

func TestToReward_UnknownSignal(t *testing.T) {
	_, err := reward.ToReward("loved-it")
	if err == nil {
		t.Fatal("expected error for unknown signal, got nil")
	}

	var invalid *reward.InvalidSignalError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidSignalError, got %T", err)
	}
	if invalid.Signal != "loved-it" {
		t.Errorf("error carries signal %q, want %q", invalid.Signal, "loved-it")
	}
}

func TestToReward_EmptySignal(t *testing.T) {
	if _, err := reward.ToReward(""); err == nil {
		t.Error("expected error for empty signal, got nil")
	}
}
