package audio

import (
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"

	"songbook/internal/services"
)

var commandContext = exec.CommandContext

// Encoder converts stem source audio into the formats served to players.
type Encoder interface {
	EncodeMP3(ctx context.Context, inputPath, outputPath string) error
	EncodeOGG(ctx context.Context, inputPath, outputPath string) error
}

// FFmpegOption configures the FFmpeg client.
type FFmpegOption func(*FFmpeg)

// WithFFmpegBinary overrides the default binary name.
func WithFFmpegBinary(binary string) FFmpegOption {
	return func(f *FFmpeg) {
		if binary != "" {
			f.binary = binary
		}
	}
}

// WithMP3Bitrate overrides the MP3 bitrate in kbps.
func WithMP3Bitrate(bitrate int) FFmpegOption {
	return func(f *FFmpeg) {
		if bitrate > 0 {
			f.mp3Bitrate = bitrate
		}
	}
}

// WithOggQuality overrides the Vorbis quality level (-1 through 10).
func WithOggQuality(quality int) FFmpegOption {
	return func(f *FFmpeg) {
		if quality >= -1 && quality <= 10 {
			f.oggQuality = quality
		}
	}
}

// WithSampleRate overrides the output sample rate in Hz.
func WithSampleRate(rate int) FFmpegOption {
	return func(f *FFmpeg) {
		if rate > 0 {
			f.sampleRate = rate
		}
	}
}

// FFmpeg wraps the ffmpeg command-line encoder.
type FFmpeg struct {
	binary     string
	mp3Bitrate int
	oggQuality int
	sampleRate int
}

// NewFFmpeg constructs an FFmpeg client using defaults.
func NewFFmpeg(opts ...FFmpegOption) *FFmpeg {
	cli := &FFmpeg{
		binary:     "ffmpeg",
		mp3Bitrate: 128,
		oggQuality: 4,
		sampleRate: 44100,
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// EncodeMP3 renders inputPath as an MP3 file at outputPath.
func (f *FFmpeg) EncodeMP3(ctx context.Context, inputPath, outputPath string) error {
	if err := requirePaths(inputPath, outputPath); err != nil {
		return err
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", inputPath,
		"-codec:a", "libmp3lame",
		"-b:a", strconv.Itoa(f.mp3Bitrate) + "k",
		"-ar", strconv.Itoa(f.sampleRate),
		outputPath,
	}
	return f.run(ctx, "encode mp3", args)
}

// EncodeOGG renders inputPath as an OGG Vorbis file at outputPath.
func (f *FFmpeg) EncodeOGG(ctx context.Context, inputPath, outputPath string) error {
	if err := requirePaths(inputPath, outputPath); err != nil {
		return err
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", inputPath,
		"-codec:a", "libvorbis",
		"-q:a", strconv.Itoa(f.oggQuality),
		"-ar", strconv.Itoa(f.sampleRate),
		outputPath,
	}
	return f.run(ctx, "encode ogg", args)
}

func (f *FFmpeg) run(ctx context.Context, operation string, args []string) error {
	cmd := commandContext(ctx, f.binary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return services.Wrap(services.ErrExternalTool, "audio", operation, strings.TrimSpace(string(output)), err)
	}
	return nil
}

func requirePaths(inputPath, outputPath string) error {
	if strings.TrimSpace(inputPath) == "" {
		return errors.New("input path required")
	}
	if strings.TrimSpace(outputPath) == "" {
		return errors.New("output path required")
	}
	return nil
}

var _ Encoder = (*FFmpeg)(nil)
