// Package audio wraps the external binaries that turn stem sources into
// web-deliverable artifacts.
//
// FFmpeg produces the MP3 and OGG renditions and audiowaveform produces the
// JSON peak data used for waveform display. Both clients capture tool output
// into returned errors and tag failures with services.ErrExternalTool so
// callers can distinguish tool breakage from their own mistakes.
package audio
