package audio

import (
	"context"
	"strconv"
	"strings"

	"songbook/internal/services"
)

// PeaksGenerator renders waveform peak data for visualization.
type PeaksGenerator interface {
	GeneratePeaks(ctx context.Context, inputPath, outputPath string) error
}

// WaveformOption configures the Waveform client.
type WaveformOption func(*Waveform)

// WithWaveformBinary overrides the default binary name.
func WithWaveformBinary(binary string) WaveformOption {
	return func(w *Waveform) {
		if binary != "" {
			w.binary = binary
		}
	}
}

// WithPeaksPerSecond overrides the waveform zoom level.
func WithPeaksPerSecond(pps int) WaveformOption {
	return func(w *Waveform) {
		if pps > 0 {
			w.peaksPerSecond = pps
		}
	}
}

// WithPeakBits overrides the peak sample resolution (8 or 16).
func WithPeakBits(bits int) WaveformOption {
	return func(w *Waveform) {
		if bits == 8 || bits == 16 {
			w.bits = bits
		}
	}
}

// Waveform wraps the audiowaveform command-line tool.
type Waveform struct {
	binary         string
	peaksPerSecond int
	bits           int
}

// NewWaveform constructs a Waveform client using defaults.
func NewWaveform(opts ...WaveformOption) *Waveform {
	cli := &Waveform{
		binary:         "audiowaveform",
		peaksPerSecond: 20,
		bits:           8,
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// GeneratePeaks writes peak data for inputPath to outputPath. The output
// format follows the extension of outputPath; stem processing always asks
// for .json.
func (w *Waveform) GeneratePeaks(ctx context.Context, inputPath, outputPath string) error {
	if err := requirePaths(inputPath, outputPath); err != nil {
		return err
	}
	args := []string{
		"-i", inputPath,
		"-o", outputPath,
		"--pixels-per-second", strconv.Itoa(w.peaksPerSecond),
		"--bits", strconv.Itoa(w.bits),
	}
	cmd := commandContext(ctx, w.binary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return services.Wrap(services.ErrExternalTool, "audio", "generate peaks", strings.TrimSpace(string(output)), err)
	}
	return nil
}

var _ PeaksGenerator = (*Waveform)(nil)
