// Package stats contains drill journal calculations and reporting.
package stats

import (
	"context"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/verte-zerg/ellinika/internal/model"
	"github.com/verte-zerg/ellinika/internal/store"
)

const terminalWidthBackup = 80

// Report contains the drills selected for rendering.
type Report struct {
	Drills      []model.Drill
	CurveWindow int
}

// BuildReport loads drills from the journal.
func BuildReport(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (Report, error) {
	drills, err := st.ListDrills(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	return Report{Drills: drills, CurveWindow: cfg.CurveWindow}, nil
}

// Render writes the summary, the drill table and the pace sparkline.
func (r Report) Render(w io.Writer, width int) error {
	if err := RenderSummary(w, r.Drills); err != nil {
		return err
	}
	if err := RenderDrillTable(w, r.Drills); err != nil {
		return err
	}
	return RenderPace(w, r.Drills, r.CurveWindow, width)
}

// TerminalWidth returns the width of stdout or a fallback when stdout is
// not a terminal.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
