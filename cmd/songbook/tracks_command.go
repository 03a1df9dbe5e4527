package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"songbook/internal/reaper"
)

// newTracksCommand inspects a project file directly and needs no
// configuration.
func newTracksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tracks <project.rpp>",
		Short: "List audio tracks in a REAPER project file",
		Args:  cobra.ExactArgs(1),
		Annotations: map[string]string{
			"skipConfigLoad": "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			info, err := os.Stat(absPath)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("file does not exist: %s", absPath)
				}
				return fmt.Errorf("inspect file: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("%s is a directory", absPath)
			}

			tracks, err := reaper.ParseFile(absPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(tracks) == 0 {
				fmt.Fprintln(out, "No audio tracks found")
				return nil
			}
			rows := make([][]string, 0, len(tracks))
			for i, track := range tracks {
				name := track.Name
				if name == "" {
					name = track.ID
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					name,
					track.ColorHex(),
					strconv.Itoa(len(track.Files)),
					strings.Join(track.Files, ", "),
				})
			}
			headers := []string{"#", "Track", "Color", "Files", "Sources"}
			aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft}
			fmt.Fprint(out, renderTable(headers, rows, aligns))
			return nil
		},
	}
}
