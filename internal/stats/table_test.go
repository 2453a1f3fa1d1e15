package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	cols := []column{{header: "Deck"}, {header: "Cards", right: true}, {header: "Time", right: true}}
	rows := [][]string{
		{"builtin", "12", "2:05"},
		{"ρήματα.csv", "3", "0:40"},
	}

	lines := formatTable(cols, rows)
	require.Len(t, lines, 3)
	assert.Equal(t, "Deck       Cards Time", lines[0])
	assert.Equal(t, "builtin       12 2:05", lines[1])
	assert.Equal(t, "ρήματα.csv     3 0:40", lines[2])
}

func TestFormatTableShortRow(t *testing.T) {
	lines := formatTable([]column{{header: "A"}, {header: "B"}}, [][]string{{"xyz"}})
	require.Len(t, lines, 2)
	assert.Equal(t, "A   B", lines[0])
	assert.Equal(t, "xyz", lines[1])
}

func TestFormatTableEmpty(t *testing.T) {
	assert.Nil(t, formatTable(nil, nil))
}
