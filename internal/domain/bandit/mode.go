package bandit

import "fmt"

// Mode is a selectable content modality: one arm of the bandit.
type Mode string

const (
	ModeQuiz        Mode = "quiz"
	ModeFlashcard   Mode = "flashcard"
	ModeInteractive Mode = "interactive"
)

// Modes lists all arms in tie-break priority order. Recommend walks this
// slice with a strict greater-than comparison, so earlier modes win ties.
var Modes = []Mode{ModeQuiz, ModeFlashcard, ModeInteractive}

// ParseMode validates a mode string coming from the API boundary.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeQuiz, ModeFlashcard, ModeInteractive:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown content mode: %q", s)
}
