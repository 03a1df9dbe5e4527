package reaper

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

const (
	trackOpenMarker  = "<TRACK"
	itemOpenMarker   = "<ITEM"
	sourceWaveMarker = "<SOURCE WAVE"
	blockCloseMarker = ">"
)

// scanState carries the scanner's position inside the block structure from
// one line to the next. The zero value means "outside any track block".
//
// The item flag deliberately survives track boundaries: the format is too
// irregular to trust every block to close, so an unclosed item from an
// abandoned track carries into the next one rather than aborting the scan.
type scanState struct {
	track       *Track // nil outside a track block
	trackIndent int
	inItem      bool
	itemIndent  int
}

// Parse scans project text from r and returns the qualifying tracks in the
// order their opening markers appear. Structural irregularities never fail
// the scan; only reading r can. Invalid byte sequences in the input are
// dropped before scanning.
func Parse(r io.Reader) ([]Track, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	lines := strings.Split(strings.ToValidUTF8(string(raw), ""), "\n")

	var (
		tracks []Track
		state  scanState
	)
	for idx := range lines {
		var done *Track
		state, done = scanLine(state, lines, idx)
		if done != nil {
			tracks = append(tracks, *done)
		}
	}
	return tracks, nil
}

// ParseFile parses the project file at path. Missing or unreadable files
// surface as errors; everything else follows Parse semantics.
func ParseFile(path string) ([]Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open project file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// scanLine advances the state machine by one line and returns the next
// state plus, when the line closes a qualifying track, the finished track.
// Rules are mutually exclusive per line, first match wins.
func scanLine(st scanState, lines []string, idx int) (scanState, *Track) {
	line := lines[idx]
	trimmed := strings.TrimSpace(line)
	indent := indentWidth(line)

	// A new track marker always opens a fresh context; an unclosed
	// predecessor is silently abandoned.
	if strings.HasPrefix(trimmed, trackOpenMarker) {
		id, ok := extractBracedToken(line)
		if !ok {
			id = fmt.Sprintf("unknown-%d", idx+1)
		}
		st.track = &Track{ID: id}
		st.trackIndent = indent
		return st, nil
	}

	if st.track == nil {
		return st, nil
	}

	switch {
	case trimmed == blockCloseMarker && indent <= st.trackIndent:
		// Track close outranks item close: a dedent to the track
		// boundary ends the track even while an item is still open.
		done := st.track
		st.track = nil
		if done.qualifies() {
			return st, done
		}
	case strings.HasPrefix(trimmed, "NAME "):
		if name, ok := extractQuotedString(line); ok {
			st.track.Name = name
		}
	case strings.HasPrefix(trimmed, "PEAKCOL "):
		if color, ok := extractFirstInteger(line); ok {
			st.track.Color = color
		}
	case strings.HasPrefix(trimmed, itemOpenMarker):
		st.inItem = true
		st.itemIndent = indent
	case st.inItem && strings.Contains(line, sourceWaveMarker):
		// The file path sits on the immediately following line. The
		// lookahead does not consume it, and running past end of file
		// is not an error.
		if idx+1 < len(lines) {
			if path, ok := extractFileReference(lines[idx+1]); ok {
				st.track.addFile(path)
			}
		}
	case st.inItem && trimmed == blockCloseMarker && indent <= st.itemIndent:
		st.inItem = false
	}
	return st, nil
}

// indentWidth counts leading whitespace bytes.
func indentWidth(line string) int {
	return len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace))
}
