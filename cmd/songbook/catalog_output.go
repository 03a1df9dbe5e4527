package main

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"songbook/internal/catalog"
	"songbook/internal/config"
)

var songTableHeaders = []string{"ID", "Title", "Artist", "Tags", "Tracks", "Added"}

var songTableAligns = []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft}

func buildSongRows(songs []*catalog.Song) [][]string {
	rows := make([][]string, 0, len(songs))
	for _, song := range songs {
		rows = append(rows, []string{
			song.ID,
			song.Title,
			song.Artist,
			strings.Join(song.Tags, ", "),
			strconv.Itoa(len(song.Tracks)),
			song.AddedDate.Format("2006-01-02"),
		})
	}
	return rows
}

// printSongDetail writes the full record for one catalog entry, including
// linked track information when a project is attached.
func printSongDetail(out io.Writer, cfg *config.Config, song *catalog.Song) {
	fmt.Fprintf(out, "ID:       %s\n", song.ID)
	fmt.Fprintf(out, "Title:    %s\n", song.Title)
	fmt.Fprintf(out, "Artist:   %s\n", song.Artist)
	fmt.Fprintf(out, "File:     %s\n", mediaPath(cfg, song))
	fmt.Fprintf(out, "Checksum: %s\n", song.Checksum)
	fmt.Fprintf(out, "Added:    %s\n", song.AddedDate.Format("2006-01-02 15:04"))
	if len(song.Tags) > 0 {
		fmt.Fprintf(out, "Tags:     %s\n", strings.Join(song.Tags, ", "))
	}
	if len(song.Metadata) > 0 {
		fmt.Fprintln(out, "Metadata:")
		for _, key := range sortedKeys(song.Metadata) {
			fmt.Fprintf(out, "  %s: %s\n", key, song.Metadata[key])
		}
	}
	if !song.HasProject() {
		return
	}

	fmt.Fprintf(out, "Project:  %s\n", song.Project)
	rows := make([][]string, 0, len(song.Tracks))
	for i := range song.Tracks {
		track := &song.Tracks[i]
		rows = append(rows, []string{
			strconv.Itoa(track.Order),
			track.Name,
			track.Color,
			strings.Join(track.Files, ", "),
			outputsSummary(track.Outputs),
		})
	}
	fmt.Fprint(out, renderTable(
		[]string{"#", "Track", "Color", "Sources", "Outputs"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
	))
}

func outputsSummary(outputs catalog.StemOutputs) string {
	if outputs.Empty() {
		return "-"
	}
	parts := make([]string, 0, 3)
	if outputs.MP3 != "" {
		parts = append(parts, "mp3")
	}
	if outputs.OGG != "" {
		parts = append(parts, "ogg")
	}
	if outputs.Peaks != "" {
		parts = append(parts, "peaks")
	}
	return strings.Join(parts, ", ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// mediaPath resolves a song's recorded audio file. Bare filenames live next
// to the catalog file; absolute paths are used as recorded.
func mediaPath(cfg *config.Config, song *catalog.Song) string {
	if filepath.IsAbs(song.Filename) {
		return song.Filename
	}
	return filepath.Join(cfg.CatalogDir(), song.Filename)
}
