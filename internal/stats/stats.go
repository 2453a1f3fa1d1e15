// Package stats contains drill journal calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/ellinika/internal/model"
)

const sparkChars = " .:-=+*#%@"

// CardsPerMinute computes the drill pace.
func CardsPerMinute(cardsShown, seconds int) float64 {
	if seconds <= 0 {
		return 0
	}
	return float64(cardsShown) / (float64(seconds) / 60.0)
}

// FormatDuration renders whole seconds as m:ss or h:mm:ss.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints totals for the drills.
func RenderSummary(w io.Writer, drills []model.Drill) error {
	if len(drills) == 0 {
		_, err := fmt.Fprintln(w, "No drills found.")
		return err
	}
	var cards, seconds, bestStreak int
	for _, d := range drills {
		cards += d.CardsShown
		seconds += d.SessionTime
		if d.CurrentStreak > bestStreak {
			bestStreak = d.CurrentStreak
		}
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Drills: %d", len(drills)),
		fmt.Sprintf("Cards shown: %d", cards),
		fmt.Sprintf("Time: %s", FormatDuration(seconds)),
		fmt.Sprintf("Avg pace: %.1f cards/min", CardsPerMinute(cards, seconds)),
		fmt.Sprintf("Best streak: %d", bestStreak),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderDrillTable prints one row per drill.
func RenderDrillTable(w io.Writer, drills []model.Drill) error {
	if len(drills) == 0 {
		return nil
	}
	cols := []column{
		{header: "Ended"},
		{header: "Deck"},
		{header: "Tiers"},
		{header: "Cards", right: true},
		{header: "Time", right: true},
		{header: "Pace", right: true},
	}
	rows := make([][]string, 0, len(drills))
	for _, d := range drills {
		rows = append(rows, []string{
			d.EndedAt.Local().Format("2006-01-02 15:04"),
			d.DeckPath,
			d.Selection,
			fmt.Sprintf("%d", d.CardsShown),
			FormatDuration(d.SessionTime),
			fmt.Sprintf("%.1f", CardsPerMinute(d.CardsShown, d.SessionTime)),
		})
	}
	for _, line := range formatTable(cols, rows) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderPace prints a sparkline of cards per minute, smoothed over window
// drills and trimmed to width characters.
func RenderPace(w io.Writer, drills []model.Drill, window, width int) error {
	if len(drills) < 2 {
		return nil
	}
	pace := make([]float64, len(drills))
	for i, d := range drills {
		pace[i] = CardsPerMinute(d.CardsShown, d.SessionTime)
	}
	pace = MovingAverage(pace, window)
	const label = "Pace "
	if width > len(label) && len(pace) > width-len(label) {
		pace = pace[len(pace)-(width-len(label)):]
	}
	_, err := fmt.Fprintf(w, "%s%s\n", label, Sparkline(pace))
	return err
}
