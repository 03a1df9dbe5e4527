// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no songbook-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual stream properties (codec, channels, sample rate)
//   - Format: container-level metadata (duration, size)
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns a parsed Result
//
// Stem processing probes every encoded artifact to confirm it actually
// carries audio before recording it in the catalog.
package ffprobe
