package session

import "github.com/verte-zerg/ellinika/internal/model"

// DefaultHistorySize bounds the card history.
const DefaultHistorySize = 10

// History is a bounded list of recently shown cards, oldest first.
type History struct {
	cards []model.WordCard
	size  int
}

// NewHistory returns an empty history holding at most size cards.
func NewHistory(size int) History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return History{size: size}
}

// Push returns a history with card appended, dropping the oldest entries
// past the bound. The receiver is left untouched.
func (h History) Push(card model.WordCard) History {
	size := h.size
	if size <= 0 {
		size = DefaultHistorySize
	}
	start := 0
	if len(h.cards)+1 > size {
		start = len(h.cards) + 1 - size
	}
	next := make([]model.WordCard, 0, size)
	next = append(next, h.cards[start:]...)
	next = append(next, card)
	return History{cards: next, size: size}
}

// Cards returns the stored cards, oldest first.
func (h History) Cards() []model.WordCard {
	return h.cards
}

// Recent returns up to n of the most recent cards.
func (h History) Recent(n int) []model.WordCard {
	if n <= 0 {
		return nil
	}
	if n >= len(h.cards) {
		return h.cards
	}
	return h.cards[len(h.cards)-n:]
}

// Len returns the number of stored cards.
func (h History) Len() int {
	return len(h.cards)
}
