// Package logging assembles the structured slog loggers used across
// songbook commands.
//
// It owns the configurable console/JSON handlers, centralizes level and
// output plumbing, and exposes context-aware helpers so operations can
// automatically tag log lines with song IDs, run IDs, and operation names.
// The package also provides a no-op logger for tests and wiring code that
// cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
