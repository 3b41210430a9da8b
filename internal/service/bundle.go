// internal/service/bundle.go
package service

import (
	"context"
	"log/slog"

	"github.com/studypilot/backend/internal/domain/bandit"
	"github.com/studypilot/backend/internal/generation"
	"github.com/studypilot/backend/internal/id"
	"github.com/studypilot/backend/internal/worker"
)

// ModeResult is one modality's outcome within a mixed bundle. Exactly one
// of Items and Error is set; a failed modality never fails the bundle.
type ModeResult struct {
	Mode  bandit.Mode       `json:"mode"`
	Items []generation.Item `json:"items,omitempty"`
	Error string            `json:"error,omitempty"`
}

// Bundle is the assembled result of a mixed-content generation request.
type Bundle struct {
	BundleID string       `json:"bundle_id"`
	Results  []ModeResult `json:"results"`
}

// BundleService fans a mixed-bundle request out to the generation
// collaborator: one independent request per modality, all awaited,
// partial success accepted.
type BundleService struct {
	gen    generation.Generator
	logger *slog.Logger
}

// NewBundleService creates a BundleService.
func NewBundleService(gen generation.Generator, logger *slog.Logger) *BundleService {
	return &BundleService{gen: gen, logger: logger}
}

// GenerateBundle requests the given item count for every modality in
// counts and waits for all of them to settle. Modalities that fail carry
// an error marker in their slot; the others return their content.
// Results come back in fixed mode priority order.
func (bs *BundleService) GenerateBundle(ctx context.Context, counts map[bandit.Mode]int, chunks []string) Bundle {
	bundle := Bundle{BundleID: id.GenerateID()}
	if len(counts) == 0 {
		return bundle
	}

	pool := worker.NewPool[ModeResult](len(counts), len(counts))
	defer pool.Close()

	submitted := 0
	for mode, count := range counts {
		mode, count := mode, count
		pool.Submit(string(mode), func() ModeResult {
			items, err := bs.gen.Generate(ctx, mode, chunks, count)
			if err != nil {
				bs.logger.Warn("modality generation failed",
					"bundle_id", bundle.BundleID, "mode", mode, "error", err)
				return ModeResult{Mode: mode, Error: err.Error()}
			}
			return ModeResult{Mode: mode, Items: items}
		})
		submitted++
	}

	byMode := make(map[bandit.Mode]ModeResult, submitted)
	for i := 0; i < submitted; i++ {
		result := <-pool.Results()
		byMode[result.Output.Mode] = result.Output
	}

	for _, mode := range bandit.Modes {
		if r, ok := byMode[mode]; ok {
			bundle.Results = append(bundle.Results, r)
		}
	}
	return bundle
}
