package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const stemColumns = "song_id, track_id, source_file, source_checksum, mp3_file, ogg_file, peaks_file, processed_at"

// SaveStem inserts or replaces the encode record for one track.
func (s *Store) SaveStem(ctx context.Context, rec *StemRecord) error {
	if rec == nil {
		return errors.New("stem record is nil")
	}
	if rec.ProcessedAt.IsZero() {
		rec.ProcessedAt = time.Now().UTC()
	}
	if err := s.execWithRetry(
		ctx,
		`INSERT INTO stems (song_id, track_id, source_file, source_checksum, mp3_file, ogg_file, peaks_file, processed_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(song_id, track_id) DO UPDATE SET
             source_file = excluded.source_file,
             source_checksum = excluded.source_checksum,
             mp3_file = excluded.mp3_file,
             ogg_file = excluded.ogg_file,
             peaks_file = excluded.peaks_file,
             processed_at = excluded.processed_at`,
		rec.SongID,
		rec.TrackID,
		rec.SourceFile,
		rec.SourceChecksum,
		nullableString(rec.MP3File),
		nullableString(rec.OGGFile),
		nullableString(rec.PeaksFile),
		formatTime(rec.ProcessedAt),
	); err != nil {
		return fmt.Errorf("save stem: %w", err)
	}
	return nil
}

// Stem fetches the encode record for one track, or nil when none exists.
func (s *Store) Stem(ctx context.Context, songID, trackID string) (*StemRecord, error) {
	row := s.db.QueryRowContext(
		ensureContext(ctx),
		`SELECT `+stemColumns+` FROM stems WHERE song_id = ? AND track_id = ?`,
		songID,
		trackID,
	)
	rec, err := scanStem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get stem: %w", err)
	}
	return rec, nil
}

// StemsForSong returns every encode record for one song ordered by track.
func (s *Store) StemsForSong(ctx context.Context, songID string) ([]*StemRecord, error) {
	rows, err := s.db.QueryContext(
		ensureContext(ctx),
		`SELECT `+stemColumns+` FROM stems WHERE song_id = ? ORDER BY track_id`,
		songID,
	)
	if err != nil {
		return nil, fmt.Errorf("query stems: %w", err)
	}
	defer rows.Close()

	var records []*StemRecord
	for rows.Next() {
		rec, err := scanStem(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DeleteStems removes the encode records for tracks no longer linked to the
// song. An empty keep set removes every record.
func (s *Store) DeleteStems(ctx context.Context, songID string, keepTrackIDs ...string) (int64, error) {
	ctx = ensureContext(ctx)
	query := `DELETE FROM stems WHERE song_id = ?`
	args := []any{songID}
	if len(keepTrackIDs) > 0 {
		query += ` AND track_id NOT IN (` + makePlaceholders(len(keepTrackIDs)) + `)`
		for _, id := range keepTrackIDs {
			args = append(args, id)
		}
	}

	var affected int64
	err := retryOnBusy(ctx, func() error {
		res, execErr := s.db.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		affected, execErr = res.RowsAffected()
		return execErr
	})
	if err != nil {
		return 0, fmt.Errorf("delete stems: %w", err)
	}
	return affected, nil
}

func scanStem(scanner interface{ Scan(dest ...any) error }) (*StemRecord, error) {
	var (
		songID       string
		trackID      string
		sourceFile   string
		checksum     string
		mp3File      sql.NullString
		oggFile      sql.NullString
		peaksFile    sql.NullString
		processedRaw string
	)
	if err := scanner.Scan(&songID, &trackID, &sourceFile, &checksum, &mp3File, &oggFile, &peaksFile, &processedRaw); err != nil {
		return nil, err
	}

	rec := &StemRecord{
		SongID:         songID,
		TrackID:        trackID,
		SourceFile:     sourceFile,
		SourceChecksum: checksum,
		MP3File:        mp3File.String,
		OGGFile:        oggFile.String,
		PeaksFile:      peaksFile.String,
	}
	if processed, err := parseTimeString(processedRaw); err == nil {
		rec.ProcessedAt = processed
	}
	return rec, nil
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
