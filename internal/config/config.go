package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Catalog contains configuration for the song catalog store.
type Catalog struct {
	Path string `toml:"path"`
}

// Projects contains configuration for locating REAPER project files.
type Projects struct {
	Root string `toml:"root"`
}

// Audio contains configuration for the external encoding toolchain.
type Audio struct {
	FFmpegBinary   string `toml:"ffmpeg_binary"`
	FFprobeBinary  string `toml:"ffprobe_binary"`
	WaveformBinary string `toml:"waveform_binary"`
	MP3Bitrate     int    `toml:"mp3_bitrate"`
	OggQuality     int    `toml:"ogg_quality"`
	SampleRate     int    `toml:"sample_rate"`
	PeaksPerSecond int    `toml:"peaks_per_second"`
	PeakBits       int    `toml:"peak_bits"`
}

// History contains configuration for the processing history database.
type History struct {
	Path string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	Process        bool   `toml:"process"`
	Errors         bool   `toml:"errors"`
}

// Config encapsulates all configuration values for songbook.
//
// Configuration sections by subsystem:
//   - Catalog: catalog file location; song output directories derive from it
//   - Projects: root directory scanned for REAPER project files
//   - Audio: encoder binaries and stem encoding parameters
//   - History: processing history database location
//   - Logging: log format and level
//   - Notifications: ntfy push notification settings
type Config struct {
	Catalog       Catalog       `toml:"catalog"`
	Projects      Projects      `toml:"projects"`
	Audio         Audio         `toml:"audio"`
	History       History       `toml:"history"`
	Logging       Logging       `toml:"logging"`
	Notifications Notifications `toml:"notifications"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	if base, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && strings.TrimSpace(base) != "" {
		return expandPath(filepath.Join(base, "songbook", "config.toml"))
	}
	return expandPath("~/.config/songbook/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("songbook.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// CatalogDir returns the directory holding the catalog file. Song output
// directories and the default history database live under it.
func (c *Config) CatalogDir() string {
	return filepath.Dir(c.Catalog.Path)
}

// SongsRoot returns the directory holding per-song output directories.
func (c *Config) SongsRoot() string {
	return filepath.Join(c.CatalogDir(), "songs")
}

// SongDir returns the output directory for a single catalog entry.
func (c *Config) SongDir(id string) string {
	return filepath.Join(c.SongsRoot(), id)
}

// EnsureDirectories creates the directories songbook writes into. The REAPER
// project root is the user's own tree and is never created here.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.CatalogDir(), c.SongsRoot(), filepath.Dir(c.History.Path)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	sample := sampleConfig

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
