// Package main hosts the songbook CLI entrypoint and command graph.
//
// The Cobra-based command tree covers catalog management (add, show, search,
// verify), REAPER project inspection and linking, stem processing and its
// run history, the foreground project watcher, and configuration
// scaffolding. It centralizes configuration resolution and store wiring so
// subcommands can focus on user experience instead of plumbing.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
