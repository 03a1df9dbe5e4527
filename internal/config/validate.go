package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if strings.TrimSpace(c.Catalog.Path) == "" {
		return errors.New("catalog.path must be set")
	}
	if strings.TrimSpace(c.Projects.Root) == "" {
		return errors.New("projects.root must be set")
	}
	return nil
}

func (c *Config) validateAudio() error {
	if err := ensurePositiveMap(map[string]int{
		"audio.mp3_bitrate":      c.Audio.MP3Bitrate,
		"audio.sample_rate":      c.Audio.SampleRate,
		"audio.peaks_per_second": c.Audio.PeaksPerSecond,
	}); err != nil {
		return err
	}
	if c.Audio.OggQuality < -1 || c.Audio.OggQuality > 10 {
		return errors.New("audio.ogg_quality must be between -1 and 10")
	}
	if c.Audio.PeakBits != 8 && c.Audio.PeakBits != 16 {
		return errors.New("audio.peak_bits must be 8 or 16")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive (seconds)")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
