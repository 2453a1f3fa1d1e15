package deck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/ellinika/internal/model"
)

var scenario = []model.WordCard{
	{Difficulty: 1, Greek: "ο-φθαλ-μος", Pronunciation: "of-THAL-mos", Meaning: "eye"},
	{Difficulty: 2, Greek: "βι-βλι-ο", Pronunciation: "vi-VLI-o", Meaning: "book"},
}

func TestFilterSetMode(t *testing.T) {
	got := Filter(scenario, model.SetSelection(1))
	require.Len(t, got, 1)
	assert.Equal(t, scenario[0], got[0])
}

func TestFilterThresholdMode(t *testing.T) {
	cards, err := Builtin()
	require.NoError(t, err)

	got := Filter(cards, model.ThresholdSelection(2))
	require.NotEmpty(t, got)
	assert.Less(t, len(got), len(cards))
	for _, card := range got {
		assert.LessOrEqual(t, card.Difficulty, 2)
	}
}

func TestFilterStrictSubsetForPartialSelection(t *testing.T) {
	cards, err := Builtin()
	require.NoError(t, err)
	tiers := AvailableDifficulties(cards)
	require.Greater(t, len(tiers), 1)

	for _, excluded := range tiers {
		var keep []int
		for _, tier := range tiers {
			if tier != excluded {
				keep = append(keep, tier)
			}
		}
		sel := model.SetSelection(keep...)
		got := Filter(cards, sel)
		assert.Less(t, len(got), len(cards))
		for _, card := range got {
			assert.NotEqual(t, excluded, card.Difficulty)
			assert.True(t, sel.Matches(card.Difficulty))
		}
	}
}

func TestFilterEmptyResult(t *testing.T) {
	got := Filter(scenario, model.SetSelection(7))
	assert.Empty(t, got)
	assert.Empty(t, Filter(nil, model.ThresholdSelection(3)))
}

func TestAvailableDifficulties(t *testing.T) {
	cards := []model.WordCard{
		{Difficulty: 3, Greek: "a"},
		{Difficulty: 1, Greek: "b"},
		{Difficulty: 3, Greek: "c"},
		{Difficulty: 2, Greek: "d"},
	}
	assert.Equal(t, []int{1, 2, 3}, AvailableDifficulties(cards))
	assert.Empty(t, AvailableDifficulties(nil))
	assert.Equal(t, map[int]int{1: 1, 2: 1, 3: 2}, CountByDifficulty(cards))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Short words", Label(1))
	assert.Equal(t, "Expert words", Label(5))
	assert.Equal(t, "Difficulty 6", Label(6))
	assert.Equal(t, "Difficulty 0", Label(0))
}

func TestParseCSV(t *testing.T) {
	input := "difficulty,greek,pronunciation,meaning\n" +
		"1,ο-φθαλ-μος,of-THAL-mos,eye\n" +
		"2,βι-βλι-ο,vi-VLI-o,book\n"
	cards, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, scenario, cards)
}

func TestParseCSVWithoutHeader(t *testing.T) {
	cards, err := ParseCSV(strings.NewReader("1,νε-ρό,ne-RO,water\n"))
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "νερό", cards[0].Word())
}

func TestParseCSVRejectsBadDifficulty(t *testing.T) {
	input := "difficulty,greek,pronunciation,meaning\n" +
		"1,νε-ρό,ne-RO,water\n" +
		"x,σπί-τι,SPI-ti,house\n"
	_, err := ParseCSV(strings.NewReader(input))
	require.ErrorIs(t, err, ErrInvalidRecord)
	assert.Contains(t, err.Error(), "line 3")

	_, err = ParseCSV(strings.NewReader("0,νε-ρό,ne-RO,water\n"))
	require.ErrorIs(t, err, ErrInvalidRecord)
}

func TestParseCSVRejectsWrongFieldCount(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("1,νε-ρό,ne-RO\n"))
	require.ErrorIs(t, err, ErrInvalidRecord)
}

func TestParseJSON(t *testing.T) {
	input := `[{"difficulty":1,"greek":"ο-φθαλ-μος","pronunciation":"of-THAL-mos","meaning":"eye"},
{"difficulty":2,"greek":"βι-βλι-ο","pronunciation":"vi-VLI-o","meaning":"book"}]`
	cards, err := ParseJSON(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, scenario, cards)

	_, err = ParseJSON(strings.NewReader(`[{"greek":"νε-ρό"}]`))
	require.ErrorIs(t, err, ErrInvalidRecord)
}

func TestParseTOML(t *testing.T) {
	input := `
[[word]]
difficulty = 1
greek = "ο-φθαλ-μος"
pronunciation = "of-THAL-mos"
meaning = "eye"

[[word]]
difficulty = 2
greek = "βι-βλι-ο"
pronunciation = "vi-VLI-o"
meaning = "book"
`
	cards, err := ParseTOML(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, scenario, cards)
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"difficulty":2,"greek":"βι-βλι-ο","pronunciation":"vi-VLI-o","meaning":"book"}]`), 0o644))

	cards, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "book", cards[0].Meaning)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, []byte("difficulty,greek,pronunciation,meaning\n"), 0o644))
	_, err = Load(empty)
	require.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
}

func TestBuiltinDeckIsValid(t *testing.T) {
	cards, err := Load("")
	require.NoError(t, err)
	require.NotEmpty(t, cards)
	for _, card := range cards {
		assert.Len(t, card.PronunciationSyllables(), len(card.Syllables()), "syllable mismatch for %s", card.Greek)
	}
	assert.Equal(t, []int{1, 2, 3, 4}, AvailableDifficulties(cards))
}
