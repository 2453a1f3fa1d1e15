package session

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/verte-zerg/ellinika/internal/deck"
	"github.com/verte-zerg/ellinika/internal/generator"
	"github.com/verte-zerg/ellinika/internal/model"
)

// PlayState is the timer state of a drill.
type PlayState int

const (
	// Stopped means no timers run.
	Stopped PlayState = iota
	// Running means the stats clock ticks and auto-play may advance cards.
	Running
)

func (p PlayState) String() string {
	if p == Running {
		return "running"
	}
	return "stopped"
}

// Intervals lists the auto-play intervals in seconds.
var Intervals = []int{1, 2, 3, 5, 10}

// State is the whole drill state. Transitions return an updated copy.
type State struct {
	Cards     []model.WordCard
	Tiers     []int
	Selection model.Selection
	Eligible  []model.WordCard
	Current   model.WordCard
	History   History
	Stats     model.SessionStats
	Play      PlayState

	Recent            int
	AutoPlay          bool
	Interval          int
	AutoAdvance       bool
	ShowSyllables     bool
	ShowPronunciation bool
}

// New builds the initial state and picks the first card.
func New(cards []model.WordCard, cfg model.Config, gen *generator.Generator) (State, error) {
	s := State{
		Cards:             cards,
		Tiers:             deck.AvailableDifficulties(cards),
		Selection:         cfg.Selection(),
		History:           NewHistory(max(DefaultHistorySize, cfg.Recent)),
		Recent:            cfg.Recent,
		AutoPlay:          cfg.AutoPlay,
		Interval:          cfg.Interval,
		AutoAdvance:       cfg.AutoAdvance,
		ShowSyllables:     cfg.Syllables,
		ShowPronunciation: cfg.Pronunciation,
	}
	if !lo.Contains(Intervals, s.Interval) {
		s.Interval = Intervals[0]
	}
	s, err := s.reselect(gen)
	if err != nil {
		return State{}, fmt.Errorf("selection %s: %w", s.Selection, err)
	}
	return s, nil
}

// Next shows a new card and counts it.
func (s State) Next(gen *generator.Generator) (State, error) {
	card, err := gen.Next(s.Eligible, s.History.Cards(), s.Recent)
	if err != nil {
		return s, err
	}
	s.Current = card
	s.History = s.History.Push(card)
	s.Stats = Advance(s.Stats)
	if s.AutoAdvance && s.Selection.Mode == model.ModeThreshold {
		tier := AutoAdvanceDifficulty(s.Stats.CardsShown, s.Selection.Max)
		if tier != s.Selection.Max {
			s.Selection = model.ThresholdSelection(tier)
			s.Eligible = deck.Filter(s.Cards, s.Selection)
		}
	}
	return s, nil
}

// Tick counts one second while running.
func (s State) Tick() State {
	if s.Play != Running {
		return s
	}
	s.Stats = Tick(s.Stats)
	return s
}

// Start moves a stopped drill to running.
func (s State) Start() State {
	s.Play = Running
	return s
}

// Pause moves a running drill to stopped.
func (s State) Pause() State {
	s.Play = Stopped
	return s
}

// TogglePlay flips between running and stopped.
func (s State) TogglePlay() State {
	if s.Play == Running {
		return s.Pause()
	}
	return s.Start()
}

// Reset stops the drill and zeroes the stats. The current card stays.
func (s State) Reset() State {
	s.Play = Stopped
	s.Stats = Reset()
	s.History = NewHistory(s.History.size).Push(s.Current)
	return s
}

// ToggleTier flips a tier in set mode. Tiers absent from the deck and
// deselecting the last tier are ignored.
func (s State) ToggleTier(tier int, gen *generator.Generator) (State, error) {
	if !lo.Contains(s.Tiers, tier) {
		return s, nil
	}
	sel, changed := s.Selection.Toggle(tier)
	if !changed {
		return s, nil
	}
	return s.withSelection(sel, gen)
}

// RaiseMax increases the threshold to the next tier present in the deck.
func (s State) RaiseMax(gen *generator.Generator) (State, error) {
	if s.Selection.Mode != model.ModeThreshold {
		return s, nil
	}
	next, ok := lo.Find(s.Tiers, func(t int) bool { return t > s.Selection.Max })
	if !ok {
		return s, nil
	}
	return s.withSelection(model.ThresholdSelection(next), gen)
}

// LowerMax decreases the threshold to the previous tier present in the deck.
func (s State) LowerMax(gen *generator.Generator) (State, error) {
	if s.Selection.Mode != model.ModeThreshold {
		return s, nil
	}
	lower := lo.Filter(s.Tiers, func(t int, _ int) bool { return t < s.Selection.Max })
	if len(lower) == 0 {
		return s, nil
	}
	return s.withSelection(model.ThresholdSelection(lower[len(lower)-1]), gen)
}

// SwitchMode converts between set and threshold selection, keeping the
// same eligible tiers where possible.
func (s State) SwitchMode(gen *generator.Generator) (State, error) {
	if len(s.Tiers) == 0 {
		return s, nil
	}
	var sel model.Selection
	if s.Selection.Mode == model.ModeThreshold {
		tiers := lo.Filter(s.Tiers, func(t int, _ int) bool { return t <= s.Selection.Max })
		if len(tiers) == 0 {
			tiers = s.Tiers[:1]
		}
		sel = model.SetSelection(tiers...)
	} else {
		sel = model.ThresholdSelection(lo.Max(s.Selection.Tiers))
	}
	return s.withSelection(sel, gen)
}

// CycleInterval moves to the next auto-play interval.
func (s State) CycleInterval() State {
	idx := lo.IndexOf(Intervals, s.Interval)
	s.Interval = Intervals[(idx+1)%len(Intervals)]
	return s
}

// ToggleAutoPlay flips auto-play.
func (s State) ToggleAutoPlay() State {
	s.AutoPlay = !s.AutoPlay
	return s
}

// ToggleSyllables flips the syllable row.
func (s State) ToggleSyllables() State {
	s.ShowSyllables = !s.ShowSyllables
	return s
}

// TogglePronunciation flips the pronunciation row.
func (s State) TogglePronunciation() State {
	s.ShowPronunciation = !s.ShowPronunciation
	return s
}

func (s State) withSelection(sel model.Selection, gen *generator.Generator) (State, error) {
	prev := s
	s.Selection = sel
	next, err := s.reselect(gen)
	if err != nil {
		return prev, err
	}
	return next, nil
}

// reselect refilters the deck and picks a fresh current card without
// counting it as shown.
func (s State) reselect(gen *generator.Generator) (State, error) {
	s.Eligible = deck.Filter(s.Cards, s.Selection)
	card, err := gen.Next(s.Eligible, s.History.Cards(), s.Recent)
	if err != nil {
		return s, err
	}
	s.Current = card
	s.History = s.History.Push(card)
	return s, nil
}
