package reaper

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleProject = `<REAPER_PROJECT 0.1 "7.07/linux-x86_64" 1719257871
  TEMPO 120 4 4
  <TRACK {A1B2C3D4-0000-4000-8000-000000000001}
    NAME "Lead Vocal"
    PEAKCOL 16711680
    <ITEM
      POSITION 0
      <SOURCE WAVE
        FILE "Media/lead vocal.wav"
      >
    >
  >
  <TRACK {A1B2C3D4-0000-4000-8000-000000000002}
    NAME "Click + MIDI Control"
    PEAKCOL 255
    <ITEM
      POSITION 0
      <SOURCE WAVE
        FILE "Media/click.wav"
      >
    >
  >
  <TRACK {A1B2C3D4-0000-4000-8000-000000000003}
    NAME "Bass"
    PEAKCOL 65280
    <ITEM
      POSITION 0
      <SOURCE WAVE
        FILE "Media/bass di.wav"
      >
    >
    <ITEM
      POSITION 60.5
      <SOURCE WAVE
        FILE "Media/bass di.wav"
      >
    >
  >
  <TRACK {A1B2C3D4-0000-4000-8000-000000000004}
    NAME "Notes"
    PEAKCOL 0
  >
>
`

func parseString(t *testing.T, content string) []Track {
	t.Helper()
	tracks, err := Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return tracks
}

func TestParseSampleProject(t *testing.T) {
	tracks := parseString(t, sampleProject)

	if len(tracks) != 2 {
		t.Fatalf("Parse returned %d tracks, want 2: %+v", len(tracks), tracks)
	}
	if tracks[0].Name != "Lead Vocal" || tracks[1].Name != "Bass" {
		t.Errorf("track order = [%q, %q], want [Lead Vocal, Bass]", tracks[0].Name, tracks[1].Name)
	}
	if got := tracks[0].ID; got != "A1B2C3D4-0000-4000-8000-000000000001" {
		t.Errorf("first track ID = %q", got)
	}
	if got := tracks[0].Files; !reflect.DeepEqual(got, []string{"Media/lead vocal.wav"}) {
		t.Errorf("Lead Vocal files = %v", got)
	}
	if got := tracks[1].Files; !reflect.DeepEqual(got, []string{"Media/bass di.wav"}) {
		t.Errorf("Bass files = %v, want single deduplicated entry", got)
	}
	if got := tracks[0].ColorHex(); got != "#0000ff" {
		t.Errorf("Lead Vocal color = %q, want #0000ff", got)
	}
}

func TestParseDeterministic(t *testing.T) {
	first := parseString(t, sampleProject)
	second := parseString(t, sampleProject)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated parses differ:\n%+v\n%+v", first, second)
	}
}

func TestParseTrackWithoutAudioDropped(t *testing.T) {
	content := "<TRACK {ABC123}\n" +
		"  NAME \"Lead Vocal\"\n" +
		">\n"
	if tracks := parseString(t, content); len(tracks) != 0 {
		t.Errorf("track without audio emitted: %+v", tracks)
	}
}

func TestParseExcludedNamesDropped(t *testing.T) {
	for _, name := range []string{"Click + MIDI Control", "Computer Audio", "Click source"} {
		t.Run(name, func(t *testing.T) {
			content := "<TRACK {X}\n" +
				"  NAME \"" + name + "\"\n" +
				"  <ITEM\n" +
				"    <SOURCE WAVE\n" +
				"      FILE \"click.wav\"\n" +
				"    >\n" +
				"  >\n" +
				">\n"
			if tracks := parseString(t, content); len(tracks) != 0 {
				t.Errorf("excluded track %q emitted: %+v", name, tracks)
			}
		})
	}
}

func TestParseSingleSourceTrack(t *testing.T) {
	content := "<TRACK {ABC123}\n" +
		"  NAME \"Lead Vocal\"\n" +
		"  <ITEM\n" +
		"    <SOURCE WAVE\n" +
		"      FILE \"vocal.wav\"\n" +
		"    >\n" +
		"  >\n" +
		">\n"
	tracks := parseString(t, content)
	if len(tracks) != 1 {
		t.Fatalf("Parse returned %d tracks, want 1", len(tracks))
	}
	if !reflect.DeepEqual(tracks[0].Files, []string{"vocal.wav"}) {
		t.Errorf("files = %v, want [vocal.wav]", tracks[0].Files)
	}
}

func TestParseDuplicateFilesRecordedOnce(t *testing.T) {
	content := "<TRACK {X}\n" +
		"  NAME \"Guitar\"\n" +
		"  <ITEM\n" +
		"    <SOURCE WAVE\n" +
		"      FILE \"gtr.wav\"\n" +
		"    >\n" +
		"  >\n" +
		"  <ITEM\n" +
		"    <SOURCE WAVE\n" +
		"      FILE \"gtr.wav\"\n" +
		"    >\n" +
		"  >\n" +
		"  <ITEM\n" +
		"    <SOURCE WAVE\n" +
		"      FILE \"gtr double.wav\"\n" +
		"    >\n" +
		"  >\n" +
		">\n"
	tracks := parseString(t, content)
	if len(tracks) != 1 {
		t.Fatalf("Parse returned %d tracks, want 1", len(tracks))
	}
	want := []string{"gtr.wav", "gtr double.wav"}
	if !reflect.DeepEqual(tracks[0].Files, want) {
		t.Errorf("files = %v, want %v", tracks[0].Files, want)
	}
}

func TestParseSourceWaveOnLastLine(t *testing.T) {
	content := "<TRACK {X}\n" +
		"  <ITEM\n" +
		"    <SOURCE WAVE"
	tracks := parseString(t, content)
	if len(tracks) != 0 {
		t.Errorf("unclosed track emitted: %+v", tracks)
	}
}

// The lookahead past end of input must leave the in-flight file list alone,
// which is only observable through the scanner state itself.
func TestScanLineLookaheadPastEOF(t *testing.T) {
	lines := []string{"<TRACK {X}", "  <ITEM", "    <SOURCE WAVE"}
	var st scanState
	for idx := range lines {
		st, _ = scanLine(st, lines, idx)
	}
	if st.track == nil {
		t.Fatal("track context lost")
	}
	if len(st.track.Files) != 0 {
		t.Errorf("files = %v, want none", st.track.Files)
	}
}

func TestParseNewTrackAbandonsUnclosedTrack(t *testing.T) {
	content := "<TRACK {FIRST}\n" +
		"  NAME \"First\"\n" +
		"  <ITEM\n" +
		"    <SOURCE WAVE\n" +
		"      FILE \"first.wav\"\n" +
		"<TRACK {SECOND}\n" +
		"  NAME \"Second\"\n" +
		"  <ITEM\n" +
		"    <SOURCE WAVE\n" +
		"      FILE \"second.wav\"\n" +
		"    >\n" +
		"  >\n" +
		">\n"
	tracks := parseString(t, content)
	if len(tracks) != 1 {
		t.Fatalf("Parse returned %d tracks, want only the replacement track", len(tracks))
	}
	if tracks[0].ID != "SECOND" {
		t.Errorf("surviving track = %q, want SECOND", tracks[0].ID)
	}
}

// A dedent to the track boundary closes the track even while an item block
// is still open, and the stale item flag carries into the next track.
func TestParseTrackCloseWhileItemOpen(t *testing.T) {
	content := "<TRACK {ONE}\n" +
		"  NAME \"One\"\n" +
		"  <ITEM\n" +
		"    <SOURCE WAVE\n" +
		"      FILE \"one.wav\"\n" +
		">\n" +
		"<TRACK {TWO}\n" +
		"  NAME \"Two\"\n" +
		"  <SOURCE WAVE\n" +
		"    FILE \"two.wav\"\n" +
		"  >\n" +
		">\n"
	tracks := parseString(t, content)
	if len(tracks) != 2 {
		t.Fatalf("Parse returned %d tracks, want 2: %+v", len(tracks), tracks)
	}
	if !reflect.DeepEqual(tracks[0].Files, []string{"one.wav"}) {
		t.Errorf("first track files = %v", tracks[0].Files)
	}
	if !reflect.DeepEqual(tracks[1].Files, []string{"two.wav"}) {
		t.Errorf("second track files = %v (item flag should carry over)", tracks[1].Files)
	}
}

func TestParseMissingGUIDFallback(t *testing.T) {
	content := "<TRACK\n" +
		"  <ITEM\n" +
		"    <SOURCE WAVE\n" +
		"      FILE \"raw.wav\"\n" +
		"    >\n" +
		"  >\n" +
		">\n"
	tracks := parseString(t, content)
	if len(tracks) != 1 {
		t.Fatalf("Parse returned %d tracks, want 1", len(tracks))
	}
	if tracks[0].ID != "unknown-1" {
		t.Errorf("fallback ID = %q, want unknown-1", tracks[0].ID)
	}
}

func TestParseUnterminatedTrackAtEOF(t *testing.T) {
	content := "<TRACK {X}\n" +
		"  NAME \"Open Ended\"\n" +
		"  <ITEM\n" +
		"    <SOURCE WAVE\n" +
		"      FILE \"tail.wav\"\n" +
		"    >\n" +
		"  >\n"
	if tracks := parseString(t, content); len(tracks) != 0 {
		t.Errorf("unterminated track emitted: %+v", tracks)
	}
}

func TestParseDropsInvalidBytes(t *testing.T) {
	content := "<TRACK {X}\n" +
		"  NAME \"Voc\xffal\"\n" +
		"  <ITEM\n" +
		"    <SOURCE WAVE\n" +
		"      FILE \"vocal.wav\"\n" +
		"    >\n" +
		"  >\n" +
		">\n"
	tracks := parseString(t, content)
	if len(tracks) != 1 {
		t.Fatalf("Parse returned %d tracks, want 1", len(tracks))
	}
	if tracks[0].Name != "Vocal" {
		t.Errorf("name = %q, want invalid byte dropped", tracks[0].Name)
	}
}

func TestParseEmptyInput(t *testing.T) {
	if tracks := parseString(t, ""); len(tracks) != 0 {
		t.Errorf("empty input produced tracks: %+v", tracks)
	}
}

func TestParseFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.rpp")
	if err := os.WriteFile(path, []byte(sampleProject), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fromFile, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	fromReader := parseString(t, sampleProject)
	if !reflect.DeepEqual(fromFile, fromReader) {
		t.Errorf("ParseFile and Parse disagree:\n%+v\n%+v", fromFile, fromReader)
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "absent.rpp")); err == nil {
		t.Fatal("ParseFile on a missing file succeeded")
	}
}
