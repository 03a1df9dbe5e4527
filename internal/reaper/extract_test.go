package reaper

import "testing"

func TestExtractBracedToken(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
		ok   bool
	}{
		{"guid", `<TRACK {E5F60F0A-5FA4-4FBD-BF53-3B1B9EFA41C2}`, "E5F60F0A-5FA4-4FBD-BF53-3B1B9EFA41C2", true},
		{"first of several", "{one} {two}", "one", true},
		{"no braces", "<TRACK", "", false},
		{"empty braces", "<TRACK {}", "", false},
		{"unterminated", "<TRACK {abc", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractBracedToken(tt.line)
			if got != tt.want || ok != tt.ok {
				t.Errorf("extractBracedToken(%q) = (%q, %v), want (%q, %v)", tt.line, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestExtractQuotedString(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
		ok   bool
	}{
		{"track name", `  NAME "Lead Vocal"`, "Lead Vocal", true},
		{"first of several", `NAME "one" "two"`, "one", true},
		{"empty quotes", `NAME ""`, "", false},
		{"no quotes", "NAME Lead Vocal", "", false},
		{"unterminated", `NAME "Lead`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractQuotedString(tt.line)
			if got != tt.want || ok != tt.ok {
				t.Errorf("extractQuotedString(%q) = (%q, %v), want (%q, %v)", tt.line, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestExtractFirstInteger(t *testing.T) {
	tests := []struct {
		name string
		line string
		want int
		ok   bool
	}{
		{"peak color", "  PEAKCOL 16711680", 16711680, true},
		{"zero", "PEAKCOL 0", 0, true},
		{"first run wins", "MIX 12 34", 12, true},
		{"embedded digits", "A1B2", 1, true},
		{"no digits", "PEAKCOL", 0, false},
		{"overflow treated as absent", "PEAKCOL 99999999999999999999999999", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractFirstInteger(tt.line)
			if got != tt.want || ok != tt.ok {
				t.Errorf("extractFirstInteger(%q) = (%d, %v), want (%d, %v)", tt.line, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestExtractFileReference(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
		ok   bool
	}{
		{"plain", `      FILE "Media/kick in.wav"`, "Media/kick in.wav", true},
		{"keyword suffix accepted", `RENDER_FILE "bounce.wav"`, "bounce.wav", true},
		{"unquoted", "FILE kick.wav", "", false},
		{"no keyword", `"kick.wav"`, "", false},
		{"missing path", "FILE", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractFileReference(tt.line)
			if got != tt.want || ok != tt.ok {
				t.Errorf("extractFileReference(%q) = (%q, %v), want (%q, %v)", tt.line, got, ok, tt.want, tt.ok)
			}
		})
	}
}
