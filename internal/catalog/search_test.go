package catalog_test

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"songbook/internal/catalog"
)

func seedStore(t *testing.T, songs ...*catalog.Song) *catalog.Store {
	t.Helper()
	store := openStore(t, filepath.Join(t.TempDir(), "catalog.yaml"))
	for i, song := range songs {
		song.AddedDate = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour)
		if err := store.Add(song); err != nil {
			t.Fatalf("seed %s: %v", song.ID, err)
		}
	}
	return store
}

func TestSearchMatchesTitleArtistAndID(t *testing.T) {
	store := seedStore(t,
		catalog.NewSong("River Demo", "Ana", "/music/river.wav"),
		catalog.NewSong("Night Drive", "Marco", "/music/night.wav"),
	)

	if got := store.Search("night", catalog.DefaultSearchLimit); len(got) != 1 || got[0].ID != "marco-night-drive" {
		t.Fatalf("title match failed: %v", got)
	}
	if got := store.Search("ANA", catalog.DefaultSearchLimit); len(got) != 1 || got[0].ID != "ana-river-demo" {
		t.Fatalf("artist match failed: %v", got)
	}
	if got := store.Search("ana-river", catalog.DefaultSearchLimit); len(got) != 1 || got[0].ID != "ana-river-demo" {
		t.Fatalf("id match failed: %v", got)
	}
	if got := store.Search("zeppelin", catalog.DefaultSearchLimit); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestSearchRanksCloserMatchFirst(t *testing.T) {
	store := seedStore(t,
		catalog.NewSong("River Song Collection", "The Band Ensemble", "/music/collection.wav"),
		catalog.NewSong("River Demo", "Ana", "/music/river.wav"),
	)

	got := store.Search("river", catalog.DefaultSearchLimit)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].ID != "ana-river-demo" {
		t.Fatalf("expected tighter match first, got %s", got[0].ID)
	}
	if got[1].ID != "the-band-ensemble-river-song-collection" {
		t.Fatalf("unexpected second match: %s", got[1].ID)
	}
}

func TestSearchHonorsLimit(t *testing.T) {
	songs := make([]*catalog.Song, 0, 7)
	for i := 0; i < 7; i++ {
		songs = append(songs, catalog.NewSong(fmt.Sprintf("Take %d", i), "Ana", "/music/take.wav"))
	}
	store := seedStore(t, songs...)

	if got := store.Search("take", catalog.DefaultSearchLimit); len(got) != catalog.DefaultSearchLimit {
		t.Fatalf("expected %d matches, got %d", catalog.DefaultSearchLimit, len(got))
	}
	if got := store.Search("take", 2); len(got) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(got))
	}
}

func TestSearchEmptyQueryReturnsNothing(t *testing.T) {
	store := seedStore(t, catalog.NewSong("River Demo", "Ana", "/music/river.wav"))
	if got := store.Search("   ", catalog.DefaultSearchLimit); got != nil {
		t.Fatalf("expected nil for blank query, got %v", got)
	}
	if got := store.Search("river", 0); got != nil {
		t.Fatalf("expected nil for zero limit, got %v", got)
	}
}
