// Package services defines shared plumbing for the catalog operations.
//
// Key responsibilities:
//   - Context helpers that stamp song IDs, run IDs, and operation names for
//     logging and tracing.
//   - Structured error markers plus the Wrap helper so failures carry a
//     classification (validation, configuration, missing data, external
//     tool) that callers can test with errors.Is.
//
// Use these helpers when wiring new operations so error handling and
// observability stay uniform across the tool.
package services
