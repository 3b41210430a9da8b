package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/studypilot/backend/internal/domain/bandit"
	"github.com/studypilot/backend/internal/generation"
	"github.com/studypilot/backend/internal/service"
)

// fakeGenerator returns canned items and fails for configured modes.
type fakeGenerator struct {
	failing map[bandit.Mode]bool
}

func (f *fakeGenerator) Generate(ctx context.Context, mode bandit.Mode, chunks []string, count int) ([]generation.Item, error) {
	if f.failing[mode] {
		return nil, errors.New("model unavailable")
	}
	items := make([]generation.Item, count)
	for i := range items {
		items[i] = generation.Item{Prompt: string(mode), Answer: "answer"}
	}
	return items, nil
}

func TestGenerateBundle_AllSucceed(t *testing.T) {
	bs := service.NewBundleService(&fakeGenerator{}, testLogger())

	bundle := bs.GenerateBundle(context.Background(), map[bandit.Mode]int{
		bandit.ModeQuiz:        5,
		bandit.ModeFlashcard:   7,
		bandit.ModeInteractive: 2,
	}, []string{"chunk one", "chunk two"})

	if bundle.BundleID == "" {
		t.Error("bundle has no ID")
	}
	if len(bundle.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(bundle.Results))
	}
	// Fixed priority order regardless of completion order.
	wantOrder := []bandit.Mode{bandit.ModeQuiz, bandit.ModeFlashcard, bandit.ModeInteractive}
	wantCounts := []int{5, 7, 2}
	for i, r := range bundle.Results {
		if r.Mode != wantOrder[i] {
			t.Errorf("result %d mode = %q, want %q", i, r.Mode, wantOrder[i])
		}
		if len(r.Items) != wantCounts[i] {
			t.Errorf("%s items = %d, want %d", r.Mode, len(r.Items), wantCounts[i])
		}
		if r.Error != "" {
			t.Errorf("%s carries unexpected error %q", r.Mode, r.Error)
		}
	}
}

func TestGenerateBundle_PartialSuccess(t *testing.T) {
	gen := &fakeGenerator{failing: map[bandit.Mode]bool{bandit.ModeFlashcard: true}}
	bs := service.NewBundleService(gen, testLogger())

	bundle := bs.GenerateBundle(context.Background(), map[bandit.Mode]int{
		bandit.ModeQuiz:      3,
		bandit.ModeFlashcard: 5,
	}, []string{"chunk"})

	if len(bundle.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(bundle.Results))
	}
	for _, r := range bundle.Results {
		switch r.Mode {
		case bandit.ModeQuiz:
			if len(r.Items) != 3 || r.Error != "" {
				t.Errorf("quiz result = %+v, want 3 items and no error", r)
			}
		case bandit.ModeFlashcard:
			if r.Error == "" || len(r.Items) != 0 {
				t.Errorf("flashcard result = %+v, want error marker only", r)
			}
		}
	}
}

func TestGenerateBundle_Empty(t *testing.T) {
	bs := service.NewBundleService(&fakeGenerator{}, testLogger())
	bundle := bs.GenerateBundle(context.Background(), nil, nil)
	if len(bundle.Results) != 0 {
		t.Errorf("empty request produced %d results", len(bundle.Results))
	}
}
