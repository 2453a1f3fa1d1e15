// Package tui provides the Bubble Tea drill interface.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/ellinika/internal/generator"
	"github.com/verte-zerg/ellinika/internal/model"
	"github.com/verte-zerg/ellinika/internal/session"
)

// Journal records finished drills.
type Journal interface {
	InsertDrill(ctx context.Context, drill model.Drill) (string, error)
}

// clockTickMsg drives the once-per-second stats clock.
type clockTickMsg struct{ tag int }

// autoTickMsg drives auto-play.
type autoTickMsg struct{ tag int }

// Model implements the Bubble Tea drill UI.
type Model struct {
	state    session.State
	gen      *generator.Generator
	journal  Journal
	logger   *slog.Logger
	deckPath string

	keys     keyMap
	help     help.Model
	showHelp bool

	width  int
	height int

	// Ticks carrying an older tag belong to a cancelled loop.
	clockTag int
	autoTag  int

	startedAt time.Time
	errMsg    string
	now       func() time.Time
}

// NewModel constructs a drill TUI model. journal may be nil.
func NewModel(state session.State, gen *generator.Generator, journal Journal, logger *slog.Logger, deckPath string) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	return &Model{
		state:    state,
		gen:      gen,
		journal:  journal,
		logger:   logger,
		deckPath: deckPath,
		keys:     defaultKeyMap(),
		help:     help.New(),
		now:      time.Now,
	}
}

// State returns the current drill state.
func (m *Model) State() session.State {
	return m.state
}

// Init implements tea.Model. Auto-play drills start running right away.
func (m *Model) Init() tea.Cmd {
	if m.state.AutoPlay {
		return m.start()
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case clockTickMsg:
		if msg.tag != m.clockTag || m.state.Play != session.Running {
			return m, nil
		}
		m.state = m.state.Tick()
		return m, clockTick(m.clockTag)
	case autoTickMsg:
		if msg.tag != m.autoTag || m.state.Play != session.Running || !m.state.AutoPlay {
			return m, nil
		}
		m.next()
		return m, autoTick(m.autoTag, m.interval())
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stopTimers()
		m.recordDrill()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.next()
	case key.Matches(msg, m.keys.Play):
		if m.state.Play == session.Running {
			m.pause()
			return m, nil
		}
		return m, m.start()
	case key.Matches(msg, m.keys.Reset):
		m.reset()
	case key.Matches(msg, m.keys.AutoPlay):
		m.state = m.state.ToggleAutoPlay()
		return m, m.restartAutoPlay()
	case key.Matches(msg, m.keys.Interval):
		m.state = m.state.CycleInterval()
		return m, m.restartAutoPlay()
	case key.Matches(msg, m.keys.Syllables):
		m.state = m.state.ToggleSyllables()
	case key.Matches(msg, m.keys.Pronunciation):
		m.state = m.state.TogglePronunciation()
	case key.Matches(msg, m.keys.Tier):
		tier, err := strconv.Atoi(msg.String())
		if err != nil {
			return m, nil
		}
		m.apply(m.state.ToggleTier(tier, m.gen))
	case key.Matches(msg, m.keys.RaiseMax):
		m.apply(m.state.RaiseMax(m.gen))
	case key.Matches(msg, m.keys.LowerMax):
		m.apply(m.state.LowerMax(m.gen))
	case key.Matches(msg, m.keys.Mode):
		m.apply(m.state.SwitchMode(m.gen))
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}
	return m, nil
}

func (m *Model) apply(state session.State, err error) {
	if err != nil {
		m.fail(err)
		return
	}
	m.state = state
}

func (m *Model) fail(err error) {
	if errors.Is(err, generator.ErrNoEligibleCards) {
		m.errMsg = "No cards match the selected difficulties."
	} else {
		m.errMsg = err.Error()
	}
	m.logger.Warn("drill update failed", "err", err)
}

func (m *Model) next() {
	state, err := m.state.Next(m.gen)
	if err != nil {
		m.fail(err)
		return
	}
	if m.startedAt.IsZero() {
		m.startedAt = m.now()
	}
	m.state = state
}

func (m *Model) start() tea.Cmd {
	m.state = m.state.Start()
	if m.startedAt.IsZero() {
		m.startedAt = m.now()
	}
	m.clockTag++
	cmds := []tea.Cmd{clockTick(m.clockTag)}
	if cmd := m.restartAutoPlay(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) pause() {
	m.state = m.state.Pause()
	m.stopTimers()
}

func (m *Model) reset() {
	m.stopTimers()
	m.recordDrill()
	m.state = m.state.Reset()
	m.startedAt = time.Time{}
}

func (m *Model) stopTimers() {
	m.clockTag++
	m.autoTag++
}

// restartAutoPlay cancels any pending auto-play tick and schedules a new
// one when the drill is running with auto-play on.
func (m *Model) restartAutoPlay() tea.Cmd {
	m.autoTag++
	if m.state.Play != session.Running || !m.state.AutoPlay {
		return nil
	}
	return autoTick(m.autoTag, m.interval())
}

func (m *Model) interval() time.Duration {
	return time.Duration(m.state.Interval) * time.Second
}

func (m *Model) recordDrill() {
	if m.journal == nil || m.state.Stats.CardsShown == 0 {
		return
	}
	endedAt := m.now()
	startedAt := m.startedAt
	if startedAt.IsZero() {
		startedAt = endedAt
	}
	drill := model.Drill{
		StartedAt:     startedAt,
		EndedAt:       endedAt,
		DeckPath:      m.deckPath,
		Selection:     m.state.Selection.String(),
		CardsShown:    m.state.Stats.CardsShown,
		SessionTime:   m.state.Stats.SessionTime,
		CurrentStreak: m.state.Stats.CurrentStreak,
	}
	if _, err := m.journal.InsertDrill(context.Background(), drill); err != nil {
		m.logger.Error("failed to save drill", "err", err)
	}
}

func clockTick(tag int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return clockTickMsg{tag: tag}
	})
}

func autoTick(tag int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return autoTickMsg{tag: tag}
	})
}
