// Package main provides the CLI entrypoint for ellinika.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/ellinika/internal/config"
	"github.com/verte-zerg/ellinika/internal/deck"
	"github.com/verte-zerg/ellinika/internal/generator"
	"github.com/verte-zerg/ellinika/internal/model"
	"github.com/verte-zerg/ellinika/internal/session"
	"github.com/verte-zerg/ellinika/internal/stats"
	"github.com/verte-zerg/ellinika/internal/store"
	"github.com/verte-zerg/ellinika/internal/tui"
)

const (
	defaultRecent      = 5
	defaultInterval    = 3
	defaultCurveWindow = 5
)

var defaultDifficulties = []int{1}

var (
	drillDeck          string
	drillDifficulties  []int
	drillMaxDifficulty int
	drillRecent        int
	drillInterval      int
	drillAutoPlay      bool
	drillAutoAdvance   bool
	drillSyllables     bool
	drillPronunciation bool
	drillNoJournal     bool

	deckList bool

	historySince       string
	historyLast        int
	historyCurveWindow int
)

func main() {
	logger := newLogger()
	loadDotEnv(logger)
	rootCmd := newRootCmd(logger)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
		NoColor:    !term.IsTerminal(int(os.Stderr.Fd())),
	}))
}

func loadDotEnv(logger *slog.Logger) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("failed to load .env", "err", err)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ellinika",
		Short:         "TUI Greek vocabulary flashcards",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDrillCmd(cmd, logger)
		},
	}

	rootCmd.Flags().StringVar(&drillDeck, "deck", "", "deck file (.csv, .json or .toml); empty uses the built-in deck")
	rootCmd.Flags().IntSliceVar(&drillDifficulties, "difficulty", defaultDifficulties, "difficulty tiers to drill")
	rootCmd.Flags().IntVar(&drillMaxDifficulty, "max-difficulty", 0, "drill every tier up to N instead of a tier set")
	rootCmd.Flags().IntVar(&drillRecent, "recent", defaultRecent, "number of recent cards to avoid repeating")
	rootCmd.Flags().IntVar(&drillInterval, "interval", defaultInterval, "auto-play interval in seconds (1, 2, 3, 5, 10)")
	rootCmd.Flags().BoolVar(&drillAutoPlay, "auto-play", false, "advance cards automatically")
	rootCmd.Flags().BoolVar(&drillAutoAdvance, "auto-advance", false, "raise max difficulty every 10 cards")
	rootCmd.Flags().BoolVar(&drillSyllables, "syllables", true, "show Greek syllables")
	rootCmd.Flags().BoolVar(&drillPronunciation, "pronunciation", true, "show phonetic pronunciation")
	rootCmd.Flags().BoolVar(&drillNoJournal, "no-journal", false, "do not record finished drills")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDeckCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runDrillCmd(cmd *cobra.Command, logger *slog.Logger) error {
	cfg, err := resolveDrillConfig(cmd)
	if err != nil {
		return err
	}

	cards, err := deck.Load(cfg.DeckPath)
	if err != nil {
		return deckLoadError(cfg.DeckPath, err)
	}

	gen := generator.New()
	state, err := session.New(cards, cfg, gen)
	if err != nil {
		if errors.Is(err, generator.ErrNoEligibleCards) {
			return fmt.Errorf("no cards in %s match %s (available tiers: %v)", deckLabel(cfg.DeckPath), cfg.Selection(), deck.AvailableDifficulties(cards))
		}
		return fmt.Errorf("failed to start drill: %w", err)
	}

	var journal tui.Journal
	if cfg.Journal {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			logger.Warn("drill journal disabled", "err", err)
		} else {
			defer func() {
				if cerr := st.Close(); cerr != nil {
					logger.Error("failed to close db", "err", cerr)
				}
			}()
			journal = st
		}
	}

	m := tui.NewModel(state, gen, journal, logger, deckLabel(cfg.DeckPath))
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolveDrillConfig merges flags, the environment and the config file.
// Flags win, then ELLINIKA_DECK for the deck, then the file.
func resolveDrillConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "deck", &drillDeck, fileCfg.Drill.Deck)
	applyIntSliceConfig(cmd, "difficulty", &drillDifficulties, fileCfg.Drill.Difficulties)
	applyIntConfig(cmd, "max-difficulty", &drillMaxDifficulty, fileCfg.Drill.MaxDifficulty)
	applyIntConfig(cmd, "recent", &drillRecent, fileCfg.Drill.Recent)
	applyIntConfig(cmd, "interval", &drillInterval, fileCfg.Drill.Interval)
	applyBoolConfig(cmd, "auto-play", &drillAutoPlay, fileCfg.Drill.AutoPlay)
	applyBoolConfig(cmd, "auto-advance", &drillAutoAdvance, fileCfg.Drill.AutoAdvance)
	applyBoolConfig(cmd, "syllables", &drillSyllables, fileCfg.Drill.Syllables)
	applyBoolConfig(cmd, "pronunciation", &drillPronunciation, fileCfg.Drill.Pronunciation)
	if fileCfg.Drill.Journal != nil && !cmd.Flags().Changed("no-journal") {
		drillNoJournal = !*fileCfg.Drill.Journal
	}
	if env := config.DefaultDeckPath(); env != "" && !cmd.Flags().Changed("deck") {
		drillDeck = env
	}

	cfg := model.Config{
		DeckPath:      config.ResolveDeckPath(drillDeck),
		Difficulties:  drillDifficulties,
		MaxDifficulty: drillMaxDifficulty,
		Recent:        drillRecent,
		Interval:      drillInterval,
		AutoPlay:      drillAutoPlay,
		AutoAdvance:   drillAutoAdvance,
		Syllables:     drillSyllables,
		Pronunciation: drillPronunciation,
		Journal:       !drillNoJournal,
	}
	if err := cfg.Validate(); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newDeckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck [path]",
		Short: "Check a deck and show its difficulty tiers",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDeckCmd,
	}
	cmd.Flags().BoolVar(&deckList, "list", false, "list decks in the deck directory")
	return cmd
}

func runDeckCmd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if deckList {
		return listDecks(cmd)
	}
	path := config.DefaultDeckPath()
	if len(args) == 1 {
		path = args[0]
	}
	path = config.ResolveDeckPath(path)
	cards, err := deck.Load(path)
	if err != nil {
		return deckLoadError(path, err)
	}
	counts := deck.CountByDifficulty(cards)
	if _, err := fmt.Fprintf(out, "%s: %d cards\n", deckLabel(path), len(cards)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, tier := range deck.AvailableDifficulties(cards) {
		if _, err := fmt.Fprintf(out, "  %d %-16s %d\n", tier, deck.Label(tier), counts[tier]); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func listDecks(cmd *cobra.Command) error {
	dir := config.DefaultDeckDir()
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read deck directory: %w", err)
	}
	decks := []string{deck.BuiltinPath}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".csv", ".json", ".toml":
			decks = append(decks, entry.Name())
		}
	}
	sort.Strings(decks[1:])
	for _, name := range decks {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show journaled drills",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N drills")
	cmd.Flags().IntVar(&historyCurveWindow, "curve-window", defaultCurveWindow, "moving average window for the pace line")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf(cmd, "failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(context.Background(), st, model.HistoryConfig{
		Since:       sinceTime,
		Last:        historyLast,
		CurveWindow: historyCurveWindow,
	})
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if err := report.Render(cmd.OutOrStdout(), stats.TerminalWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func deckLabel(path string) string {
	if path == "" {
		return deck.BuiltinPath
	}
	return path
}

func deckLoadError(path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load deck: %v", err),
		fmt.Sprintf("deck path: %s", deckLabel(path)),
		"Expected columns: difficulty,greek,pronunciation,meaning",
		"Check a deck with: ellinika deck <path>",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntSliceConfig(cmd *cobra.Command, name string, target, value *[]int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]int(nil), (*value)...)
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# ellinika configuration
# Uncomment a value to enable it. CLI flags override config values.

[drill]
# deck = ""               # Deck file (.csv, .json, .toml); empty uses the built-in deck
# difficulties = %v        # Difficulty tiers to drill
# max-difficulty = 0      # Drill every tier up to N instead (0 disables)
# recent = %d              # Recent cards to avoid repeating
# interval = %d            # Auto-play interval in seconds (1, 2, 3, 5, 10)
# auto-play = false       # Advance cards automatically
# auto-advance = false    # Raise max difficulty every 10 cards
# syllables = true        # Show Greek syllables
# pronunciation = true    # Show phonetic pronunciation
# journal = true          # Record finished drills for the history command
`,
		defaultDifficulties,
		defaultRecent,
		defaultInterval,
	)
}

func logErrf(cmd *cobra.Command, format string, args ...any) {
	if _, err := fmt.Fprintf(cmd.ErrOrStderr(), format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
