package catalog

import (
	"sort"
	"strings"

	"songbook/internal/textutil"
)

// DefaultSearchLimit bounds how many matches Search returns by default.
const DefaultSearchLimit = 5

// Search returns entries whose title, artist, or identifier contains the
// query, best match first. Matches are ranked by textual similarity between
// the query and the entry's title and artist.
func (s *Store) Search(query string, limit int) []*Song {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" || limit <= 0 {
		return nil
	}
	needle := strings.ToLower(trimmed)
	queryPrint := textutil.NewFingerprint(trimmed)

	type scored struct {
		song  *Song
		score float64
	}
	var matches []scored
	for _, song := range s.Songs() {
		if !songMatches(song, needle) {
			continue
		}
		print := textutil.NewFingerprint(song.Title + " " + song.Artist)
		matches = append(matches, scored{song: song, score: textutil.CosineSimilarity(queryPrint, print)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	songs := make([]*Song, len(matches))
	for i, match := range matches {
		songs[i] = match.song
	}
	return songs
}

func songMatches(song *Song, needle string) bool {
	return strings.Contains(strings.ToLower(song.Title), needle) ||
		strings.Contains(strings.ToLower(song.Artist), needle) ||
		strings.Contains(song.ID, needle)
}
