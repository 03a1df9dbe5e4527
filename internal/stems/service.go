package stems

import (
	"log/slog"

	"songbook/internal/audio"
	"songbook/internal/catalog"
	"songbook/internal/config"
	"songbook/internal/history"
	"songbook/internal/logging"
	"songbook/internal/media/ffprobe"
	"songbook/internal/notifications"
)

var inspectMedia = ffprobe.Inspect

// Service links REAPER projects into the catalog and encodes track stems.
type Service struct {
	cfg      *config.Config
	catalog  *catalog.Store
	history  *history.Store
	logger   *slog.Logger
	encoder  audio.Encoder
	peaks    audio.PeaksGenerator
	notifier notifications.Service
}

// NewService constructs the stem processing service.
func NewService(cfg *config.Config, cat *catalog.Store, hist *history.Store, logger *slog.Logger) *Service {
	encoder := audio.NewFFmpeg(
		audio.WithFFmpegBinary(cfg.Audio.FFmpegBinary),
		audio.WithMP3Bitrate(cfg.Audio.MP3Bitrate),
		audio.WithOggQuality(cfg.Audio.OggQuality),
		audio.WithSampleRate(cfg.Audio.SampleRate),
	)
	peaks := audio.NewWaveform(
		audio.WithWaveformBinary(cfg.Audio.WaveformBinary),
		audio.WithPeaksPerSecond(cfg.Audio.PeaksPerSecond),
		audio.WithPeakBits(cfg.Audio.PeakBits),
	)
	return NewServiceWithDependencies(cfg, cat, hist, logger, encoder, peaks, notifications.NewService(cfg))
}

// NewServiceWithDependencies allows injecting custom dependencies (used for tests).
func NewServiceWithDependencies(
	cfg *config.Config,
	cat *catalog.Store,
	hist *history.Store,
	logger *slog.Logger,
	encoder audio.Encoder,
	peaks audio.PeaksGenerator,
	notifier notifications.Service,
) *Service {
	svc := &Service{
		cfg:      cfg,
		catalog:  cat,
		history:  hist,
		encoder:  encoder,
		peaks:    peaks,
		notifier: notifier,
	}
	svc.SetLogger(logger)
	return svc
}

// SetLogger updates the service's logging destination while preserving component labeling.
func (s *Service) SetLogger(logger *slog.Logger) {
	s.logger = logging.NewComponentLogger(logger, "stems")
}
