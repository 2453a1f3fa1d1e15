package deck

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/verte-zerg/ellinika/internal/model"
)

// Filter returns the cards eligible under the selection. The result may be
// empty.
func Filter(cards []model.WordCard, sel model.Selection) []model.WordCard {
	return lo.Filter(cards, func(card model.WordCard, _ int) bool {
		return sel.Matches(card.Difficulty)
	})
}

// AvailableDifficulties returns the distinct tiers present, ascending.
func AvailableDifficulties(cards []model.WordCard) []int {
	tiers := lo.Uniq(lo.Map(cards, func(card model.WordCard, _ int) int {
		return card.Difficulty
	}))
	sort.Ints(tiers)
	return tiers
}

// CountByDifficulty returns the number of cards per tier.
func CountByDifficulty(cards []model.WordCard) map[int]int {
	return lo.CountValuesBy(cards, func(card model.WordCard) int {
		return card.Difficulty
	})
}

var difficultyLabels = []string{
	"Short words",
	"Medium words",
	"Long words",
	"Very long words",
	"Expert words",
}

// Label returns a human-readable name for a tier.
func Label(tier int) string {
	if tier >= 1 && tier <= len(difficultyLabels) {
		return difficultyLabels[tier-1]
	}
	return fmt.Sprintf("Difficulty %d", tier)
}
