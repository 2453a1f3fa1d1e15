// Package model defines shared data structures.
package model

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// SyllableSeparator joins syllables in Greek text and pronunciations.
const SyllableSeparator = "-"

// WordCard is a single vocabulary record.
type WordCard struct {
	Difficulty    int    `json:"difficulty" toml:"difficulty"`
	Greek         string `json:"greek" toml:"greek"`
	Pronunciation string `json:"pronunciation" toml:"pronunciation"`
	Meaning       string `json:"meaning" toml:"meaning"`
}

// Word returns the Greek text with syllable separators removed.
func (c WordCard) Word() string {
	return strings.ReplaceAll(c.Greek, SyllableSeparator, "")
}

// Syllables splits the Greek text into syllables.
func (c WordCard) Syllables() []string {
	return splitSyllables(c.Greek)
}

// PronunciationSyllables splits the pronunciation into syllables.
func (c WordCard) PronunciationSyllables() []string {
	return splitSyllables(c.Pronunciation)
}

func splitSyllables(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, SyllableSeparator)
}

// SessionStats holds live counters for one drill session.
type SessionStats struct {
	CardsShown    int
	SessionTime   int
	CurrentStreak int
}

// SelectionMode picks how difficulty tiers become eligible.
type SelectionMode int

const (
	// ModeSet keeps cards whose difficulty is one of the selected tiers.
	ModeSet SelectionMode = iota
	// ModeThreshold keeps cards whose difficulty is at most Max.
	ModeThreshold
)

func (m SelectionMode) String() string {
	if m == ModeThreshold {
		return "threshold"
	}
	return "set"
}

// Selection is the current difficulty choice.
type Selection struct {
	Mode  SelectionMode
	Max   int
	Tiers []int
}

// SetSelection returns a set-mode selection over the given tiers.
func SetSelection(tiers ...int) Selection {
	t := lo.Uniq(tiers)
	sort.Ints(t)
	return Selection{Mode: ModeSet, Tiers: t}
}

// ThresholdSelection returns a threshold-mode selection.
func ThresholdSelection(maxTier int) Selection {
	return Selection{Mode: ModeThreshold, Max: maxTier}
}

// Matches reports whether a difficulty is eligible under the selection.
func (s Selection) Matches(difficulty int) bool {
	if s.Mode == ModeThreshold {
		return difficulty <= s.Max
	}
	return lo.Contains(s.Tiers, difficulty)
}

// Toggle adds or removes a tier in set mode. Removing the last selected
// tier is refused and reported as unchanged.
func (s Selection) Toggle(tier int) (Selection, bool) {
	if s.Mode != ModeSet {
		return s, false
	}
	if lo.Contains(s.Tiers, tier) {
		if len(s.Tiers) == 1 {
			return s, false
		}
		return Selection{Mode: ModeSet, Tiers: lo.Without(s.Tiers, tier)}, true
	}
	return SetSelection(append(append([]int(nil), s.Tiers...), tier)...), true
}

// String renders the selection for display and journaling.
func (s Selection) String() string {
	if s.Mode == ModeThreshold {
		return "<=" + strconv.Itoa(s.Max)
	}
	return strings.Join(lo.Map(s.Tiers, func(t int, _ int) string { return strconv.Itoa(t) }), ",")
}

// Config defines drill settings.
type Config struct {
	DeckPath      string
	Difficulties  []int `validate:"dive,min=1,max=9"`
	MaxDifficulty int   `validate:"min=0,max=9"`
	Recent        int   `validate:"min=0,max=50"`
	Interval      int   `validate:"oneof=1 2 3 5 10"`
	AutoPlay      bool
	AutoAdvance   bool
	Syllables     bool
	Pronunciation bool
	Journal       bool
}

// Selection derives the initial selection from the config.
func (c Config) Selection() Selection {
	if c.MaxDifficulty > 0 {
		return ThresholdSelection(c.MaxDifficulty)
	}
	return SetSelection(c.Difficulties...)
}

// HistoryConfig defines filters for the drill journal output.
type HistoryConfig struct {
	Since       *time.Time
	Last        int
	CurveWindow int
}

// Drill is a finished drill as stored in the journal.
type Drill struct {
	ID            string
	StartedAt     time.Time
	EndedAt       time.Time
	DeckPath      string
	Selection     string
	CardsShown    int
	SessionTime   int
	CurrentStreak int
}
