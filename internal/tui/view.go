package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"

	"github.com/verte-zerg/ellinika/internal/deck"
	"github.com/verte-zerg/ellinika/internal/session"
	"github.com/verte-zerg/ellinika/internal/stats"
)

const syllableDot = "·"

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	wordStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	stressedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4C8DFF")).Bold(true)
	syllableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	dotStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	meaningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	onStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	offStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	cardStyle     = lipgloss.NewStyle().
			Padding(1, 4).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	settingsStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	badgeBase = lipgloss.NewStyle().Padding(0, 1).Bold(true)
)

// Badge colours per tier; the last entry is the fallback.
var badgeColors = []struct{ fg, bg string }{
	{"#1B4D2B", "#B7E4C7"},
	{"#5C4400", "#FFE8A3"},
	{"#6B1A1A", "#F8B4B4"},
	{"#123A6B", "#B3D4FF"},
	{"#4A1D6B", "#DCC4F5"},
	{"#6B1A4A", "#F5C4DF"},
	{"#6B3A12", "#FFD1A8"},
	{"#0F4D4A", "#A8E6E1"},
	{"#333333", "#D0D0D0"},
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{
		titleStyle.Render("Ελληνικά"),
		subtitleStyle.Render("Practice your Greek reading skills"),
		"",
		cardStyle.Render(renderCard(m.state)),
		"",
		m.renderFooter(),
	}
	if m.errMsg != "" {
		sections = append(sections, errorStyle.Render(m.errMsg))
	}
	if m.showHelp {
		sections = append(sections, "", settingsStyle.Render(renderSettings(m.state)))
	}
	sections = append(sections, "", m.help.View(m.keys))
	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func renderCard(s session.State) string {
	card := s.Current
	lines := []string{wordStyle.Render(card.Word())}
	greek, latin := alignSyllables(card.Syllables(), card.PronunciationSyllables())
	stress := stressPattern(card.PronunciationSyllables())
	if s.ShowSyllables && len(greek) > 0 {
		lines = append(lines, "", renderSyllables(greek, stress))
	}
	if s.ShowPronunciation && len(latin) > 0 {
		if !s.ShowSyllables {
			lines = append(lines, "")
		}
		lines = append(lines, renderSyllables(latin, stress))
	}
	lines = append(lines,
		"",
		meaningStyle.Render("Meaning: "+card.Meaning),
		"",
		difficultyBadge(card.Difficulty),
	)
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// isStressed reports whether a pronunciation syllable is written in
// upper case.
func isStressed(syllable string) bool {
	return syllable != "" && syllable == strings.ToUpper(syllable) && syllable != strings.ToLower(syllable)
}

func stressPattern(pronunciation []string) []bool {
	return lo.Map(pronunciation, func(s string, _ int) bool { return isStressed(s) })
}

// alignSyllables pads each Greek syllable and its pronunciation to the same
// display width so the two rows line up column by column.
func alignSyllables(greek, latin []string) ([]string, []string) {
	n := max(len(greek), len(latin))
	outGreek := make([]string, 0, len(greek))
	outLatin := make([]string, 0, len(latin))
	for i := 0; i < n; i++ {
		g, l := "", ""
		if i < len(greek) {
			g = greek[i]
		}
		if i < len(latin) {
			l = latin[i]
		}
		width := max(runewidth.StringWidth(g), runewidth.StringWidth(l))
		if i < len(greek) {
			outGreek = append(outGreek, runewidth.FillRight(g, width))
		}
		if i < len(latin) {
			outLatin = append(outLatin, runewidth.FillRight(l, width))
		}
	}
	return outGreek, outLatin
}

func renderSyllables(syllables []string, stress []bool) string {
	parts := make([]string, len(syllables))
	for i, syl := range syllables {
		style := syllableStyle
		if i < len(stress) && stress[i] {
			style = stressedStyle
		}
		parts[i] = style.Render(syl)
	}
	return strings.Join(parts, " "+dotStyle.Render(syllableDot)+" ")
}

func difficultyBadge(tier int) string {
	idx := tier - 1
	if idx < 0 || idx >= len(badgeColors) {
		idx = len(badgeColors) - 1
	}
	c := badgeColors[idx]
	return badgeBase.
		Foreground(lipgloss.Color(c.fg)).
		Background(lipgloss.Color(c.bg)).
		Render(fmt.Sprintf("Difficulty %d", tier))
}

func (m *Model) renderFooter() string {
	st := m.state.Stats
	play := "■ stopped"
	if m.state.Play == session.Running {
		play = "▶ running"
	}
	auto := "auto off"
	if m.state.AutoPlay {
		auto = fmt.Sprintf("auto %ds", m.state.Interval)
	}
	segments := []string{
		fmt.Sprintf("Cards %d", st.CardsShown),
		fmt.Sprintf("Time %s", stats.FormatDuration(st.SessionTime)),
		fmt.Sprintf("Streak %d", st.CurrentStreak),
		play,
		auto,
		fmt.Sprintf("Tiers %s", m.state.Selection),
	}
	return footerStyle.Render(strings.Join(segments, " · "))
}

func renderSettings(s session.State) string {
	lines := []string{
		titleStyle.Render("Settings"),
		toggleLine("Show Greek syllables", s.ShowSyllables),
		toggleLine("Show phonetic pronunciation", s.ShowPronunciation),
		toggleLine("Auto-play", s.AutoPlay) + footerStyle.Render(fmt.Sprintf("  every %ds", s.Interval)),
		toggleLine("Auto-advance difficulty", s.AutoAdvance),
		"",
		fmt.Sprintf("Difficulty levels (%s):", s.Selection.Mode),
	}
	for _, tier := range s.Tiers {
		lines = append(lines, toggleLine(fmt.Sprintf("%d (%s)", tier, deck.Label(tier)), s.Selection.Matches(tier)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func toggleLine(label string, on bool) string {
	if on {
		return onStyle.Render("[x] ") + label
	}
	return offStyle.Render("[ ] ") + label
}
