package reaper

import "testing"

func TestColorHex(t *testing.T) {
	tests := []struct {
		name  string
		color int
		want  string
	}{
		{"pure blue stored", 16711680, "#0000ff"},
		{"pure red stored", 255, "#ff0000"},
		{"pure green stored", 65280, "#00ff00"},
		{"black", 0, "#000000"},
		{"white", 16777215, "#ffffff"},
		{"mixed channels", 0x123456, "#563412"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Track{Color: tt.color}.ColorHex()
			if got != tt.want {
				t.Errorf("ColorHex(%d) = %q, want %q", tt.color, got, tt.want)
			}
		})
	}
}

func TestTrackQualifies(t *testing.T) {
	tests := []struct {
		name  string
		track Track
		want  bool
	}{
		{"audio and regular name", Track{Name: "Bass", Files: []string{"bass.wav"}}, true},
		{"audio but excluded name", Track{Name: "Computer Audio", Files: []string{"pc.wav"}}, false},
		{"no audio", Track{Name: "Bass"}, false},
		{"unnamed with audio", Track{Files: []string{"take.wav"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.track.qualifies(); got != tt.want {
				t.Errorf("qualifies() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddFileDeduplicates(t *testing.T) {
	var track Track
	track.addFile("a.wav")
	track.addFile("b.wav")
	track.addFile("a.wav")
	if len(track.Files) != 2 || track.Files[0] != "a.wav" || track.Files[1] != "b.wav" {
		t.Errorf("Files = %v, want [a.wav b.wav]", track.Files)
	}
}
