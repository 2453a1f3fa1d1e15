// Package session tracks drill progress and play state.
package session

import "github.com/verte-zerg/ellinika/internal/model"

const (
	// MaxAutoTier caps the automatic difficulty ramp.
	MaxAutoTier = 3
	// AutoAdvanceEvery is the number of cards between ramp steps.
	AutoAdvanceEvery = 10
)

// Advance records one more card shown.
func Advance(stats model.SessionStats) model.SessionStats {
	stats.CardsShown++
	stats.CurrentStreak++
	return stats
}

// Tick records one elapsed second.
func Tick(stats model.SessionStats) model.SessionStats {
	stats.SessionTime++
	return stats
}

// Reset returns zeroed stats.
func Reset() model.SessionStats {
	return model.SessionStats{}
}

// AutoAdvanceDifficulty raises tier by one on every AutoAdvanceEvery-th
// card, up to MaxAutoTier.
func AutoAdvanceDifficulty(cardsShown, tier int) int {
	if cardsShown > 0 && cardsShown%AutoAdvanceEvery == 0 && tier < MaxAutoTier {
		return tier + 1
	}
	return tier
}
