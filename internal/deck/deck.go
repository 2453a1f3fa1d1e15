// Package deck loads word decks and filters them by difficulty.
package deck

import (
	"bytes"
	"embed"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/ellinika/internal/model"
)

// BuiltinPath is the display name used for the embedded deck.
const BuiltinPath = "builtin"

//go:embed data/words.csv
var builtinFS embed.FS

// ErrInvalidRecord reports a deck record that cannot become a card.
var ErrInvalidRecord = errors.New("invalid record")

const fieldCount = 4

// Builtin returns the embedded default deck.
func Builtin() ([]model.WordCard, error) {
	data, err := builtinFS.ReadFile("data/words.csv")
	if err != nil {
		return nil, err
	}
	return ParseCSV(bytes.NewReader(data))
}

// Load reads a deck from path, picking the format from the file extension.
// An empty path or BuiltinPath loads the embedded deck.
func Load(path string) ([]model.WordCard, error) {
	if path == "" || path == BuiltinPath {
		return Builtin()
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only deck.
			_ = cerr
		}
	}()

	var cards []model.WordCard
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		cards, err = ParseJSON(file)
	case ".toml":
		cards, err = ParseTOML(file)
	default:
		cards, err = ParseCSV(file)
	}
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("deck is empty")
	}
	return cards, nil
}

// ParseCSV reads records with columns difficulty, greek, pronunciation,
// meaning. A leading header row is skipped.
func ParseCSV(r io.Reader) ([]model.WordCard, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var cards []model.WordCard
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
		line, _ := reader.FieldPos(0)
		if len(cards) == 0 && isHeader(record) {
			continue
		}
		if len(record) != fieldCount {
			return nil, fmt.Errorf("%w: line %d: expected %d fields, got %d", ErrInvalidRecord, line, fieldCount, len(record))
		}
		card, err := newCard(record[0], record[1], record[2], record[3])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func isHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "difficulty")
}

func newCard(difficulty, greek, pronunciation, meaning string) (model.WordCard, error) {
	diff, err := strconv.Atoi(strings.TrimSpace(difficulty))
	if err != nil {
		return model.WordCard{}, fmt.Errorf("%w: difficulty %q is not a number", ErrInvalidRecord, difficulty)
	}
	card := model.WordCard{
		Difficulty:    diff,
		Greek:         strings.TrimSpace(greek),
		Pronunciation: strings.TrimSpace(pronunciation),
		Meaning:       strings.TrimSpace(meaning),
	}
	if err := checkCard(card); err != nil {
		return model.WordCard{}, err
	}
	return card, nil
}

func checkCard(card model.WordCard) error {
	if card.Difficulty < 1 {
		return fmt.Errorf("%w: difficulty %d must be positive", ErrInvalidRecord, card.Difficulty)
	}
	if card.Greek == "" {
		return fmt.Errorf("%w: greek text is empty", ErrInvalidRecord)
	}
	return nil
}

// ParseJSON reads an array of card objects.
func ParseJSON(r io.Reader) ([]model.WordCard, error) {
	var raw []struct {
		Difficulty    json.Number `json:"difficulty"`
		Greek         string      `json:"greek"`
		Pronunciation string      `json:"pronunciation"`
		Meaning       string      `json:"meaning"`
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode deck: %w", err)
	}
	cards := make([]model.WordCard, 0, len(raw))
	for i, item := range raw {
		card, err := newCard(item.Difficulty.String(), item.Greek, item.Pronunciation, item.Meaning)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// ParseTOML reads [[word]] tables.
func ParseTOML(r io.Reader) ([]model.WordCard, error) {
	var doc struct {
		Words []model.WordCard `toml:"word"`
	}
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode deck: %w", err)
	}
	for i, card := range doc.Words {
		if err := checkCard(card); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return doc.Words, nil
}
