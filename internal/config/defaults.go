package config

const (
	defaultCatalogPath    = "~/.local/share/songbook/catalog.yaml"
	defaultProjectsRoot   = "~/reaper"
	defaultFFmpegBinary   = "ffmpeg"
	defaultFFprobeBinary  = "ffprobe"
	defaultWaveformBinary = "audiowaveform"
	defaultMP3Bitrate     = 128
	defaultOggQuality     = 4
	defaultSampleRate     = 44100
	defaultPeaksPerSecond = 20
	defaultPeakBits       = 8
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultNotifyTimeout  = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Catalog: Catalog{
			Path: defaultCatalogPath,
		},
		Projects: Projects{
			Root: defaultProjectsRoot,
		},
		Audio: Audio{
			FFmpegBinary:   defaultFFmpegBinary,
			FFprobeBinary:  defaultFFprobeBinary,
			WaveformBinary: defaultWaveformBinary,
			MP3Bitrate:     defaultMP3Bitrate,
			OggQuality:     defaultOggQuality,
			SampleRate:     defaultSampleRate,
			PeaksPerSecond: defaultPeaksPerSecond,
			PeakBits:       defaultPeakBits,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Process:        true,
			Errors:         true,
		},
	}
}
