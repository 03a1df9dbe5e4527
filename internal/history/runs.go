package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const runColumns = "id, song_id, operation, status, detail, started_at, finished_at"

// StartRun records the beginning of an operation and returns the new run.
func (s *Store) StartRun(ctx context.Context, songID, operation string) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		SongID:    songID,
		Operation: operation,
		Status:    RunRunning,
		StartedAt: time.Now().UTC(),
	}

	if err := s.execWithRetry(
		ctx,
		`INSERT INTO runs (id, song_id, operation, status, detail, started_at, finished_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.SongID,
		run.Operation,
		string(run.Status),
		nil,
		formatTime(run.StartedAt),
		nil,
	); err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// FinishRun marks a run as completed or failed with an optional detail message.
func (s *Store) FinishRun(ctx context.Context, runID string, status RunStatus, detail string) error {
	now := time.Now().UTC()
	if err := s.execWithRetry(
		ctx,
		`UPDATE runs SET status = ?, detail = ?, finished_at = ? WHERE id = ?`,
		string(status),
		nullableString(detail),
		formatTime(now),
		runID,
	); err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// GetRun fetches a run by identifier.
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+runColumns+` FROM runs WHERE id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// RecentRuns returns the newest runs across all songs.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(
		ensureContext(ctx),
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent runs: %w", err)
	}
	defer rows.Close()
	return collectRuns(rows)
}

// RunsForSong returns the newest runs recorded for one song.
func (s *Store) RunsForSong(ctx context.Context, songID string, limit int) ([]*Run, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(
		ensureContext(ctx),
		`SELECT `+runColumns+` FROM runs WHERE song_id = ? ORDER BY started_at DESC LIMIT ?`,
		songID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs for song: %w", err)
	}
	defer rows.Close()
	return collectRuns(rows)
}

func collectRuns(rows *sql.Rows) ([]*Run, error) {
	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		id          string
		songID      string
		operation   string
		statusStr   string
		detail      sql.NullString
		startedRaw  string
		finishedRaw sql.NullString
	)
	if err := scanner.Scan(&id, &songID, &operation, &statusStr, &detail, &startedRaw, &finishedRaw); err != nil {
		return nil, err
	}

	run := &Run{
		ID:        id,
		SongID:    songID,
		Operation: operation,
		Status:    RunStatus(statusStr),
		Detail:    detail.String,
	}
	if started, err := parseTimeString(startedRaw); err == nil {
		run.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	return run, nil
}
