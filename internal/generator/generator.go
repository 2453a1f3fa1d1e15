// Package generator picks the next card to show.
package generator

import (
	"errors"
	"math/rand"
	"time"

	"github.com/samber/lo"

	"github.com/verte-zerg/ellinika/internal/model"
)

// ErrNoEligibleCards is returned when there is nothing to pick from.
var ErrNoEligibleCards = errors.New("no eligible cards")

// Source draws a uniform index in [0, n).
type Source interface {
	Intn(n int) int
}

// Generator selects cards with a random source.
type Generator struct {
	rnd Source
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewWithSource returns a Generator drawing from src.
func NewWithSource(src Source) *Generator {
	return &Generator{rnd: src}
}

// Next picks a card avoiding the last recent entries of history.
func (g *Generator) Next(eligible, history []model.WordCard, recent int) (model.WordCard, error) {
	return NextCard(eligible, history, recent, g.rnd)
}

// Pick returns a uniformly random card with no history constraint.
func (g *Generator) Pick(eligible []model.WordCard) (model.WordCard, error) {
	return NextCard(eligible, nil, 0, g.rnd)
}

// NextCard picks uniformly among eligible cards whose word is not in the
// trailing recent entries of history. When every eligible card was shown
// recently it falls back to the whole eligible set.
func NextCard(eligible, history []model.WordCard, recent int, src Source) (model.WordCard, error) {
	if len(eligible) == 0 {
		return model.WordCard{}, ErrNoEligibleCards
	}
	window := trailing(history, recent)
	seen := make(map[string]struct{}, len(window))
	for _, card := range window {
		seen[card.Word()] = struct{}{}
	}
	candidates := lo.Filter(eligible, func(card model.WordCard, _ int) bool {
		_, ok := seen[card.Word()]
		return !ok
	})
	if len(candidates) == 0 {
		candidates = eligible
	}
	return candidates[src.Intn(len(candidates))], nil
}

func trailing(history []model.WordCard, n int) []model.WordCard {
	if n <= 0 {
		return nil
	}
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
