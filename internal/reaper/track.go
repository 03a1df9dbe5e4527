package reaper

import "fmt"

// excludedTrackNames lists utility tracks that never carry song content.
var excludedTrackNames = map[string]struct{}{
	"Click + MIDI Control": {},
	"Computer Audio":       {},
	"Click source":         {},
}

// Track is one mixing-console channel recovered from a project file.
type Track struct {
	// ID is the GUID recorded on the track's opening marker, without braces.
	// Tracks missing a GUID get a synthetic "unknown-<line>" identifier.
	ID string

	// Name is the track label, empty when the project never names it.
	Name string

	// Color is the raw 24-bit peak color as stored in the project file:
	// blue in bits 16-23, green in bits 8-15, red in bits 0-7.
	Color int

	// Files holds the referenced audio paths in first-seen order, without
	// duplicates.
	Files []string
}

// ColorHex renders Color as a CSS hex color, swapping the stored
// blue-green-red byte order into #rrggbb.
func (t Track) ColorHex() string {
	blue := (t.Color >> 16) & 0xFF
	green := (t.Color >> 8) & 0xFF
	red := t.Color & 0xFF
	return fmt.Sprintf("#%02x%02x%02x", red, green, blue)
}

// HasAudio reports whether any source files were recorded for the track.
func (t Track) HasAudio() bool {
	return len(t.Files) > 0
}

// qualifies reports whether the track belongs in parse output: it must
// reference audio and must not be one of the excluded utility tracks.
func (t Track) qualifies() bool {
	if !t.HasAudio() {
		return false
	}
	_, excluded := excludedTrackNames[t.Name]
	return !excluded
}

// addFile appends path unless the track already references it.
func (t *Track) addFile(path string) {
	for _, existing := range t.Files {
		if existing == path {
			return
		}
	}
	t.Files = append(t.Files, path)
}
