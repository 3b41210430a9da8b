package reward

import "fmt"

// Signal is a raw engagement signal reported by the UI after the user
// interacts with a piece of generated content.
type Signal string

const (
	SignalLike    Signal = "like"
	SignalDislike Signal = "dislike"
	SignalNeutral Signal = "neutral"
)

// Reward values per signal. Neutral sits at the midpoint so it neither
// reinforces nor penalizes a mode.
const (
	Like    = 1.0
	Dislike = 0.0
	Neutral = 0.5
)

// InvalidSignalError is returned for a signal the engine does not recognize.
// Callers must check it before mutating any bandit state.
type InvalidSignalError struct {
	Signal Signal
}

func (e *InvalidSignalError) Error() string {
	return fmt.Sprintf("invalid feedback signal: %q", string(e.Signal))
}

// ToReward maps a feedback signal to a reward in [0,1].
func ToReward(s Signal) (float64, error) {
	switch s {
	case SignalLike:
		return Like, nil
	case SignalDislike:
		return Dislike, nil
	case SignalNeutral:
		return Neutral, nil
	default:
		return 0, &InvalidSignalError{Signal: s}
	}
}
