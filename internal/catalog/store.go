package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// Sentinel errors surfaced by store operations.
var (
	ErrSongExists    = errors.New("song already in catalog")
	ErrSongNotFound  = errors.New("song not found in catalog")
	ErrCatalogLocked = errors.New("catalog is locked by another songbook instance")
)

type document struct {
	Songs map[string]*Song `yaml:"songs"`
}

// Store manages catalog persistence backed by a YAML document.
type Store struct {
	path  string
	lock  *flock.Flock
	songs map[string]*Song
}

// Open reads the catalog at path. A missing file yields an empty catalog.
func Open(path string) (*Store, error) {
	store := &Store{
		path:  path,
		lock:  flock.New(path + ".lock"),
		songs: map[string]*Song{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return store, nil
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for id, song := range doc.Songs {
		if song == nil {
			continue
		}
		song.ID = id
		store.songs[id] = song
	}
	return store, nil
}

// Len returns the number of catalog entries.
func (s *Store) Len() int {
	return len(s.songs)
}

// Songs returns all entries ordered by added date, oldest first.
func (s *Store) Songs() []*Song {
	songs := make([]*Song, 0, len(s.songs))
	for _, song := range s.songs {
		songs = append(songs, song)
	}
	sort.Slice(songs, func(i, j int) bool {
		if songs[i].AddedDate.Equal(songs[j].AddedDate) {
			return songs[i].ID < songs[j].ID
		}
		return songs[i].AddedDate.Before(songs[j].AddedDate)
	})
	return songs
}

// Get returns the entry with the given identifier.
func (s *Store) Get(id string) (*Song, bool) {
	song, ok := s.songs[id]
	return song, ok
}

// Contains reports whether an entry with the given identifier exists.
func (s *Store) Contains(id string) bool {
	_, ok := s.songs[id]
	return ok
}

// Add inserts a new entry. Adding an identifier that already exists fails
// with ErrSongExists.
func (s *Store) Add(song *Song) error {
	if song == nil {
		return errors.New("song is nil")
	}
	if song.ID == "" {
		return errors.New("song id is empty")
	}
	if _, ok := s.songs[song.ID]; ok {
		return fmt.Errorf("%w: %s", ErrSongExists, song.ID)
	}
	s.songs[song.ID] = song
	return nil
}

// Update replaces an existing entry.
func (s *Store) Update(song *Song) error {
	if song == nil {
		return errors.New("song is nil")
	}
	if _, ok := s.songs[song.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrSongNotFound, song.ID)
	}
	s.songs[song.ID] = song
	return nil
}

// Save writes the catalog atomically. A lock file beside the catalog guards
// against concurrent writers; a held lock fails with ErrCatalogLocked.
func (s *Store) Save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create catalog directory: %w", err)
	}

	locked, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire catalog lock: %w", err)
	}
	if !locked {
		return ErrCatalogLocked
	}
	defer func() {
		_ = s.lock.Unlock()
	}()

	doc := document{Songs: s.songs}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".catalog-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp catalog: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp catalog: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod temp catalog: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}
