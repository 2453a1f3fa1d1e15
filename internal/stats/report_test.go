package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/ellinika/internal/model"
	"github.com/verte-zerg/ellinika/internal/store"
)

func TestBuildReport(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "ellinika.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []string
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Hour)
		id, err := st.InsertDrill(ctx, model.Drill{
			StartedAt:     start,
			EndedAt:       start.Add(time.Minute),
			DeckPath:      "builtin",
			Selection:     "1",
			CardsShown:    10 * (i + 1),
			SessionTime:   60,
			CurrentStreak: 10 * (i + 1),
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	report, err := BuildReport(ctx, st, model.HistoryConfig{Last: 2, CurveWindow: 1})
	require.NoError(t, err)
	require.Len(t, report.Drills, 2)
	assert.Equal(t, ids[1], report.Drills[0].ID)
	assert.Equal(t, ids[2], report.Drills[1].ID)

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, 80))
	out := buf.String()
	for _, want := range []string{"Drills: 2", "Cards shown: 50", "Time: 2:00", "Avg pace: 25.0 cards/min", "Best streak: 30", "Pace  @"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, nil))
	assert.Equal(t, "No drills found.\n", buf.String())
}

func TestCardsPerMinute(t *testing.T) {
	assert.InDelta(t, 30.0, CardsPerMinute(15, 30), 1e-9)
	assert.Zero(t, CardsPerMinute(5, 0))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", FormatDuration(0))
	assert.Equal(t, "1:05", FormatDuration(65))
	assert.Equal(t, "1:00:01", FormatDuration(3601))
	assert.Equal(t, "0:00", FormatDuration(-4))
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	assert.Equal(t, []float64{2, 3, 5, 7}, got)
	assert.Equal(t, []float64{1, 2}, MovingAverage([]float64{1, 2}, 0))
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "", Sparkline(nil))
	assert.Equal(t, "+++", Sparkline([]float64{4, 4, 4}))
	line := Sparkline([]float64{0, 5, 10})
	require.Len(t, line, 3)
	assert.Equal(t, byte(' '), line[0])
	assert.Equal(t, byte('@'), line[2])
}

func TestRenderPaceTrimsToWidth(t *testing.T) {
	drills := make([]model.Drill, 40)
	for i := range drills {
		drills[i] = model.Drill{CardsShown: i, SessionTime: 60}
	}
	var buf bytes.Buffer
	require.NoError(t, RenderPace(&buf, drills, 1, 15))
	line := strings.TrimSuffix(buf.String(), "\n")
	assert.Equal(t, 15, len(line))
	assert.True(t, strings.HasPrefix(line, "Pace "))
}
