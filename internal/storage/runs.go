package storage

import (
	"fmt"
	"time"
)

// RunEntry is one finished run.
type RunEntry struct {
	ID        int64
	GameID    string
	Score     int
	Length    int
	Duration  time.Duration
	Cause     string
	Seed      int64
	CreatedAt time.Time
}

// SaveRun records a finished run together with its score.
// Returns the ID of the inserted run.
func (s *Store) SaveRun(run RunEntry) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	result, err := tx.Exec(
		`INSERT INTO runs (game_id, score, length, duration_ms, cause, seed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.GameID, run.Score, run.Length, run.Duration.Milliseconds(), run.Cause, run.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO scores (game_id, score) VALUES (?, ?)", run.GameID, run.Score); err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return id, nil
}

// RecentRuns retrieves the latest runs for the given game, newest first.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunEntry, error) {
	return s.queryRuns("ORDER BY id DESC", gameID, limit)
}

// TopRuns retrieves the best runs for the given game, highest score first.
// Ties go to the longer snake, then the earlier run.
func (s *Store) TopRuns(gameID string, limit int) ([]RunEntry, error) {
	return s.queryRuns("ORDER BY score DESC, length DESC, id ASC", gameID, limit)
}

func (s *Store) queryRuns(order, gameID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, length, duration_ms, cause, seed, created_at
		 FROM runs
		 WHERE game_id = ?
		 `+order+`
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunEntry
	for rows.Next() {
		var r RunEntry
		var durationMs int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Score, &r.Length, &durationMs, &r.Cause, &r.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// ClearRuns deletes the run history for the given game.
func (s *Store) ClearRuns(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
