// Package history persists processing runs and per-stem encode state in
// SQLite.
//
// Runs give `songbook history` its audit trail. Stem records remember the
// source checksum behind each encoded artifact so unchanged stems can be
// skipped on the next process pass.
package history
