// Package store handles SQLite persistence of the drill journal.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/ellinika/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for finished drills.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS drills (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			deck_path TEXT NOT NULL,
			selection TEXT NOT NULL,
			cards_shown INTEGER NOT NULL,
			session_seconds INTEGER NOT NULL,
			streak INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_drills_ended_at ON drills(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertDrill stores a finished drill and returns its id. An empty ID is
// replaced with a fresh UUID.
func (s *Store) InsertDrill(ctx context.Context, drill model.Drill) (string, error) {
	if drill.ID == "" {
		drill.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO drills (id, started_at, ended_at, deck_path, selection, cards_shown, session_seconds, streak)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		drill.ID,
		drill.StartedAt.Format(time.RFC3339Nano),
		drill.EndedAt.Format(time.RFC3339Nano),
		drill.DeckPath,
		drill.Selection,
		drill.CardsShown,
		drill.SessionTime,
		drill.CurrentStreak,
	)
	if err != nil {
		return "", err
	}
	return drill.ID, nil
}

// ListDrills returns journaled drills oldest first, filtered by cfg.
func (s *Store) ListDrills(ctx context.Context, cfg model.HistoryConfig) ([]model.Drill, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, started_at, ended_at, deck_path, selection, cards_shown, session_seconds, streak
		FROM drills
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var drills []model.Drill
	for rows.Next() {
		var d model.Drill
		var startedAt, endedAt string
		if err := rows.Scan(&d.ID, &startedAt, &endedAt, &d.DeckPath, &d.Selection, &d.CardsShown, &d.SessionTime, &d.CurrentStreak); err != nil {
			return nil, err
		}
		if d.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if d.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		drills = append(drills, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(drills) > cfg.Last {
		drills = drills[len(drills)-cfg.Last:]
	}
	return drills, nil
}
