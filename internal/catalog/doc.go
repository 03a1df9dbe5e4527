// Package catalog stores the song collection as a YAML document.
//
// The catalog maps song identifiers to entries carrying source metadata,
// linked REAPER tracks, and encoded stem artifacts. Writes go through a lock
// file and an atomic rename so concurrent songbook invocations never corrupt
// the document.
package catalog
