package generation

import (
	"context"

	"github.com/studypilot/backend/internal/domain/bandit"
)

// Item is one generated study item. The prompt/answer pair covers all
// three modalities: question/answer for quizzes, front/back for
// flashcards, step title/body for interactive lessons.
type Item struct {
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

// Generator produces study content for one modality from source chunks.
// Implementations may call an LLM or return canned items (for tests).
// The engine treats generation as an external collaborator: it issues
// requests and tolerates per-modality failure, but never depends on the
// content itself.
type Generator interface {
	Generate(ctx context.Context, mode bandit.Mode, chunks []string, count int) ([]Item, error)
}
