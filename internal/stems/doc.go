// Package stems links REAPER projects to catalog entries and encodes
// per-track web artifacts.
//
// Linking parses a project file and records one TrackRef per qualifying
// track on the catalog entry, preserving encoded outputs for tracks that
// survive a re-link unchanged. Processing encodes each track's first source
// file to MP3 and OGG, generates waveform peak JSON, validates the
// artifacts with ffprobe, and records the results in the processing history
// so unchanged tracks are skipped on later runs.
package stems
