package catalog

import (
	"path/filepath"
	"strings"
	"time"

	"songbook/internal/textutil"
)

// StemOutputs records the encoded artifacts generated for one track.
type StemOutputs struct {
	MP3   string `yaml:"mp3,omitempty"`
	OGG   string `yaml:"ogg,omitempty"`
	Peaks string `yaml:"peaks,omitempty"`
}

// Empty reports whether no artifact has been recorded.
func (o StemOutputs) Empty() bool {
	return o.MP3 == "" && o.OGG == "" && o.Peaks == ""
}

// TrackRef records one audio track linked from a REAPER project. Order
// preserves the track's position in the project.
type TrackRef struct {
	ID      string      `yaml:"id"`
	Name    string      `yaml:"name"`
	Color   string      `yaml:"color,omitempty"`
	Order   int         `yaml:"order"`
	Files   []string    `yaml:"files"`
	Outputs StemOutputs `yaml:"outputs,omitempty"`
}

// FirstFile returns the first source file recorded for the track.
func (t *TrackRef) FirstFile() string {
	if len(t.Files) == 0 {
		return ""
	}
	return t.Files[0]
}

// Song is one catalog entry. The identifier doubles as the YAML map key and
// the per-song output directory name.
type Song struct {
	ID        string            `yaml:"-"`
	Title     string            `yaml:"title"`
	Artist    string            `yaml:"artist"`
	Filename  string            `yaml:"filename"`
	Checksum  string            `yaml:"checksum"`
	Tags      []string          `yaml:"tags,omitempty"`
	AddedDate time.Time         `yaml:"added_date"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
	Project   string            `yaml:"project,omitempty"`
	Tracks    []TrackRef        `yaml:"tracks,omitempty"`
}

// SongID derives the canonical catalog identifier for an artist and title.
func SongID(artist, title string) string {
	return textutil.SanitizeID(artist + " " + title)
}

// NewSong builds a catalog entry for the given source file. The checksum is
// left for the caller to fill in.
func NewSong(title, artist, sourcePath string) *Song {
	title = strings.TrimSpace(title)
	artist = strings.TrimSpace(artist)
	return &Song{
		ID:        SongID(artist, title),
		Title:     title,
		Artist:    artist,
		Filename:  filepath.Base(sourcePath),
		AddedDate: time.Now().UTC(),
	}
}

// HasProject reports whether a REAPER project has been linked.
func (s *Song) HasProject() bool {
	return s.Project != ""
}

// Track returns the linked track with the given identifier.
func (s *Song) Track(id string) (*TrackRef, bool) {
	for i := range s.Tracks {
		if s.Tracks[i].ID == id {
			return &s.Tracks[i], true
		}
	}
	return nil, false
}
