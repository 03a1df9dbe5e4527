package stems

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"songbook/internal/catalog"
	"songbook/internal/fileutil"
	"songbook/internal/history"
	"songbook/internal/logging"
	"songbook/internal/notifications"
	"songbook/internal/services"
	"songbook/internal/textutil"
)

// ProcessResult reports the outcome of one stem processing run.
type ProcessResult struct {
	RunID     string
	Song      *catalog.Song
	Processed []string
	Skipped   []string
	Duration  time.Duration
}

// ProcessSong encodes the linked tracks of a catalog entry into the song's
// output directory. Tracks whose source file and checksum match the last
// recorded encode are skipped while their outputs remain on disk; force
// re-encodes everything. A summary notification is published on completion
// or failure.
func (s *Service) ProcessSong(ctx context.Context, songID string, force bool) (*ProcessResult, error) {
	ctx = services.WithSongID(ctx, songID)
	ctx = services.WithOperation(ctx, "process")

	song, ok := s.catalog.Get(songID)
	if !ok {
		return nil, services.Wrap(
			services.ErrNotFound,
			"stems",
			"process song",
			fmt.Sprintf("song %q not in catalog", songID),
			nil,
		)
	}
	if !song.HasProject() || len(song.Tracks) == 0 {
		return nil, services.Wrap(
			services.ErrValidation,
			"stems",
			"process song",
			fmt.Sprintf("song %q has no linked project tracks; link a project first", songID),
			nil,
		)
	}

	run, err := s.history.StartRun(ctx, songID, "process")
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "stems", "record process run", "", err)
	}
	ctx = services.WithRunID(ctx, run.ID)
	logger := logging.WithContext(ctx, s.logger)
	logger.Info("processing song",
		logging.Int("tracks", len(song.Tracks)),
		logging.String("mode", textutil.Ternary(force, "forced", "incremental")),
	)

	started := time.Now()
	result, err := s.processTracks(ctx, logger, song, force)
	if err != nil {
		if ferr := s.history.FinishRun(ctx, run.ID, history.RunFailed, err.Error()); ferr != nil {
			logger.Warn("failed to record run failure", logging.Error(ferr))
		}
		if nerr := s.notifier.Publish(ctx, notifications.ProcessingFailed(song.Title, err)); nerr != nil {
			logger.Debug("processing notification failed", logging.Error(nerr))
		}
		return nil, err
	}
	result.RunID = run.ID
	result.Song = song
	result.Duration = time.Since(started)

	detail := fmt.Sprintf("%d stems encoded, %d skipped", len(result.Processed), len(result.Skipped))
	if err := s.history.FinishRun(ctx, run.ID, history.RunCompleted, detail); err != nil {
		logger.Warn("failed to record run completion", logging.Error(err))
	}
	if err := s.notifier.Publish(ctx, notifications.ProcessingCompleted(song.Title, len(result.Processed), result.Duration)); err != nil {
		logger.Debug("processing notification failed", logging.Error(err))
	}

	logger.Info("stem processing finished",
		logging.Int("processed", len(result.Processed)),
		logging.Int("skipped", len(result.Skipped)),
		logging.Duration("elapsed", result.Duration),
	)
	return result, nil
}

func (s *Service) processTracks(ctx context.Context, logger *slog.Logger, song *catalog.Song, force bool) (*ProcessResult, error) {
	songDir := s.cfg.SongDir(song.ID)
	if err := fileutil.EnsureDir(songDir); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "stems", "ensure song directory", "", err)
	}
	projectDir := filepath.Dir(song.Project)

	result := &ProcessResult{}
	for i := range song.Tracks {
		track := &song.Tracks[i]
		trackLogger := logger.With(logging.String(logging.FieldTrack, track.ID))

		source, err := resolveSource(projectDir, track)
		if err != nil {
			return nil, err
		}
		checksum, err := fileutil.HashFile(source)
		if err != nil {
			return nil, services.Wrap(
				services.ErrTransient,
				"stems",
				"hash source",
				fmt.Sprintf("hash %q", source),
				err,
			)
		}

		if !force {
			unchanged, err := s.unchanged(ctx, song.ID, track, songDir, source, checksum)
			if err != nil {
				return nil, err
			}
			if unchanged {
				trackLogger.Info("skipping unchanged track", logging.String("source", source))
				result.Skipped = append(result.Skipped, track.ID)
				continue
			}
		}

		outputs, err := s.encodeTrack(ctx, trackLogger, track.ID, source, songDir)
		if err != nil {
			return nil, err
		}
		track.Outputs = outputs

		if err := s.history.SaveStem(ctx, &history.StemRecord{
			SongID:         song.ID,
			TrackID:        track.ID,
			SourceFile:     source,
			SourceChecksum: checksum,
			MP3File:        outputs.MP3,
			OGGFile:        outputs.OGG,
			PeaksFile:      outputs.Peaks,
		}); err != nil {
			return nil, services.Wrap(services.ErrTransient, "stems", "record stem", "", err)
		}
		result.Processed = append(result.Processed, track.ID)
	}

	if err := s.catalog.Update(song); err != nil {
		return nil, services.Wrap(services.ErrTransient, "stems", "update catalog", "", err)
	}
	if err := s.catalog.Save(); err != nil {
		return nil, services.Wrap(services.ErrTransient, "stems", "save catalog", "", err)
	}
	return result, nil
}

// resolveSource locates a track's first referenced audio file. Relative paths
// resolve against the project file's directory; absolute paths are used as
// recorded.
func resolveSource(projectDir string, track *catalog.TrackRef) (string, error) {
	first := track.FirstFile()
	if first == "" {
		return "", services.Wrap(
			services.ErrValidation,
			"stems",
			"resolve source",
			fmt.Sprintf("track %q has no source files", track.ID),
			nil,
		)
	}
	source := first
	if !filepath.IsAbs(source) {
		source = filepath.Join(projectDir, source)
	}
	if !fileutil.IsFile(source) {
		return "", services.Wrap(
			services.ErrValidation,
			"stems",
			"resolve source",
			fmt.Sprintf("source file %q not found for track %q", source, track.ID),
			nil,
		)
	}
	return source, nil
}

// unchanged reports whether the track's last recorded encode still covers the
// current source file and all three outputs remain on disk.
func (s *Service) unchanged(ctx context.Context, songID string, track *catalog.TrackRef, songDir, source, checksum string) (bool, error) {
	if track.Outputs.Empty() {
		return false, nil
	}
	rec, err := s.history.Stem(ctx, songID, track.ID)
	if err != nil {
		return false, services.Wrap(services.ErrTransient, "stems", "load stem record", "", err)
	}
	if rec == nil || rec.SourceFile != source || rec.SourceChecksum != checksum {
		return false, nil
	}
	for _, name := range []string{track.Outputs.MP3, track.Outputs.OGG, track.Outputs.Peaks} {
		if name == "" || !fileutil.IsFile(filepath.Join(songDir, name)) {
			return false, nil
		}
	}
	return true, nil
}

func (s *Service) encodeTrack(ctx context.Context, logger *slog.Logger, trackID, source, songDir string) (catalog.StemOutputs, error) {
	outputs := catalog.StemOutputs{
		MP3:   trackID + ".mp3",
		OGG:   trackID + ".ogg",
		Peaks: trackID + ".json",
	}
	mp3Path := filepath.Join(songDir, outputs.MP3)
	oggPath := filepath.Join(songDir, outputs.OGG)
	peaksPath := filepath.Join(songDir, outputs.Peaks)

	logger.Info("encoding stem", logging.String("source", source))
	if err := s.encoder.EncodeMP3(ctx, source, mp3Path); err != nil {
		return catalog.StemOutputs{}, err
	}
	if err := s.validateEncodedArtifact(ctx, logger, mp3Path); err != nil {
		return catalog.StemOutputs{}, err
	}
	if err := s.encoder.EncodeOGG(ctx, source, oggPath); err != nil {
		return catalog.StemOutputs{}, err
	}
	if err := s.validateEncodedArtifact(ctx, logger, oggPath); err != nil {
		return catalog.StemOutputs{}, err
	}
	if err := s.peaks.GeneratePeaks(ctx, source, peaksPath); err != nil {
		return catalog.StemOutputs{}, err
	}
	if err := validatePeaksArtifact(peaksPath); err != nil {
		return catalog.StemOutputs{}, err
	}
	return outputs, nil
}

func (s *Service) validateEncodedArtifact(ctx context.Context, logger *slog.Logger, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		logger.Error("stem validation failed", logging.String("reason", "stat failure"), logging.Error(err))
		return services.Wrap(
			services.ErrValidation,
			"stems",
			"validate output",
			fmt.Sprintf("stat %q", path),
			err,
		)
	}
	if info.Size() == 0 {
		logger.Error("stem validation failed", logging.String("reason", "empty file"), logging.String("path", path))
		return services.Wrap(
			services.ErrValidation,
			"stems",
			"validate output",
			fmt.Sprintf("encoded file %q is empty", path),
			nil,
		)
	}

	probe, err := inspectMedia(ctx, s.cfg.Audio.FFprobeBinary, path)
	if err != nil {
		logger.Error("stem validation failed", logging.String("reason", "ffprobe"), logging.Error(err))
		return services.Wrap(
			services.ErrExternalTool,
			"stems",
			"ffprobe validation",
			fmt.Sprintf("inspect %q", path),
			err,
		)
	}
	if probe.AudioStreamCount() == 0 {
		logger.Error("stem validation failed", logging.String("reason", "no audio stream"), logging.String("path", path))
		return services.Wrap(
			services.ErrValidation,
			"stems",
			"validate audio stream",
			fmt.Sprintf("encoded file %q has no audio stream", path),
			nil,
		)
	}
	duration := probe.DurationSeconds()
	if math.IsNaN(duration) || duration <= 0 {
		logger.Error("stem validation failed", logging.String("reason", "invalid duration"), logging.String("path", path))
		return services.Wrap(
			services.ErrValidation,
			"stems",
			"validate duration",
			fmt.Sprintf("encoded file %q duration could not be determined", path),
			nil,
		)
	}

	logger.Debug("stem validation succeeded",
		logging.String("path", path),
		logging.Float64("duration_seconds", duration),
		logging.Int("audio_streams", probe.AudioStreamCount()),
	)
	return nil
}

func validatePeaksArtifact(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return services.Wrap(
			services.ErrValidation,
			"stems",
			"validate peaks",
			fmt.Sprintf("read %q", path),
			err,
		)
	}
	if len(data) == 0 {
		return services.Wrap(
			services.ErrValidation,
			"stems",
			"validate peaks",
			fmt.Sprintf("peaks file %q is empty", path),
			nil,
		)
	}
	if !json.Valid(data) {
		return services.Wrap(
			services.ErrValidation,
			"stems",
			"validate peaks",
			fmt.Sprintf("peaks file %q is not valid JSON", path),
			nil,
		)
	}
	return nil
}
