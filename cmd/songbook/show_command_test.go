package main

import (
	"testing"

	"songbook/internal/catalog"
)

func TestShowCommandEmptyCatalog(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, env.configPath, "show")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, stdout, "Catalog is empty")
}

func TestShowCommandListsSongs(t *testing.T) {
	env := setupCLITestEnv(t)
	first := catalog.NewSong("Demo Song", "Test Artist", "demo.wav")
	first.Tags = []string{"rock", "live"}
	second := catalog.NewSong("Other Tune", "Someone", "other.wav")
	seedSong(t, env.cfg, first)
	seedSong(t, env.cfg, second)

	stdout, _, err := runCLI(t, env.configPath, "show")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, stdout, "test-artist-demo-song")
	requireContains(t, stdout, "someone-other-tune")
	requireContains(t, stdout, "rock, live")
}

func TestShowCommandSongDetail(t *testing.T) {
	env := setupCLITestEnv(t)
	song := catalog.NewSong("Demo Song", "Test Artist", "demo.wav")
	song.Checksum = "abc123"
	song.Metadata = map[string]string{"bpm": "120"}
	seedSong(t, env.cfg, song)

	stdout, _, err := runCLI(t, env.configPath, "show", "test-artist-demo-song")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, stdout, "Demo Song")
	requireContains(t, stdout, "Test Artist")
	requireContains(t, stdout, "abc123")
	requireContains(t, stdout, "bpm: 120")
}

func TestShowCommandUnknownSong(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env.configPath, "show", "nope")
	if err == nil {
		t.Fatal("expected error for unknown song")
	}
	requireContains(t, err.Error(), `song "nope" not found in catalog`)
}
