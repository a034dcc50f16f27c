package settings

import (
	"errors"
	"fmt"
)

const (
	DefaultMatchPoint = 7
	MinMatchPoint     = 1
	MaxMatchPoint     = 99
)

var ErrInvalidMatchPoint = errors.New("invalid match point")

// Settings holds process-wide tournament parameters.
type Settings struct {
	// MatchPoint is the score ceiling applied when results are entered.
	MatchPoint int
}

func Default() Settings {
	return Settings{MatchPoint: DefaultMatchPoint}
}

func (s Settings) Validate() error {
	if s.MatchPoint < MinMatchPoint || s.MatchPoint > MaxMatchPoint {
		return fmt.Errorf("%w: must be between %d and %d, got %d", ErrInvalidMatchPoint, MinMatchPoint, MaxMatchPoint, s.MatchPoint)
	}

	return nil
}

// Clamp bounds a submitted score to [0, MatchPoint].
func (s Settings) Clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > s.MatchPoint {
		return s.MatchPoint
	}
	return score
}
