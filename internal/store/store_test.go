package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/ellinika/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "ellinika.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndListDrills(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		start := base.Add(time.Duration(i) * time.Hour)
		id, err := st.InsertDrill(ctx, model.Drill{
			StartedAt:     start,
			EndedAt:       start.Add(2 * time.Minute),
			DeckPath:      "builtin",
			Selection:     "1,2",
			CardsShown:    10 + i,
			SessionTime:   120,
			CurrentStreak: 10 + i,
		})
		require.NoError(t, err)
		_, perr := uuid.Parse(id)
		require.NoError(t, perr)
		ids = append(ids, id)
	}

	drills, err := st.ListDrills(ctx, model.HistoryConfig{})
	require.NoError(t, err)
	require.Len(t, drills, 3)
	assert.Equal(t, ids, []string{drills[0].ID, drills[1].ID, drills[2].ID})
	assert.Equal(t, 12, drills[2].CardsShown)
	assert.True(t, drills[0].StartedAt.Equal(base))

	last, err := st.ListDrills(ctx, model.HistoryConfig{Last: 2})
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, ids[1], last[0].ID)

	since := base.Add(90 * time.Minute)
	recent, err := st.ListDrills(ctx, model.HistoryConfig{Since: &since})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, ids[2], recent[0].ID)
}

func TestInsertDrillKeepsGivenID(t *testing.T) {
	st := openTestStore(t)
	id, err := st.InsertDrill(context.Background(), model.Drill{
		ID:        "drill-1",
		StartedAt: time.Unix(0, 0),
		EndedAt:   time.Unix(60, 0),
		Selection: "<=2",
	})
	require.NoError(t, err)
	assert.Equal(t, "drill-1", id)

	_, err = st.InsertDrill(context.Background(), model.Drill{ID: "drill-1"})
	require.Error(t, err, "duplicate ids are rejected")
}
