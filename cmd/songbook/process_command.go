package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"songbook/internal/catalog"
	"songbook/internal/config"
	"songbook/internal/preflight"
	"songbook/internal/prompt"
	"songbook/internal/stems"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "process [song-id]",
		Short: "Encode web stems for a linked song",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := preflight.RequireTools(cfg); err != nil {
				return err
			}
			return ctx.withStems(func(cfg *config.Config, cat *catalog.Store, svc *stems.Service, logger *slog.Logger) error {
				var songID string
				if len(args) == 1 {
					songID = args[0]
				} else {
					songID, err = selectLinkedSong(cmd, cat)
					if err != nil {
						return err
					}
				}
				result, err := svc.ProcessSong(cmd.Context(), songID, force)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(result.Processed) == 0 && len(result.Skipped) > 0 {
					fmt.Fprintf(out, "All %d stems up to date for %s\n", len(result.Skipped), result.Song.Title)
					return nil
				}
				fmt.Fprintf(out, "Processed %d stems for %s in %s (%d skipped)\n",
					len(result.Processed), result.Song.Title,
					result.Duration.Round(time.Millisecond), len(result.Skipped))
				fmt.Fprintf(out, "Outputs in %s\n", cfg.SongDir(result.Song.ID))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Re-encode stems even when sources are unchanged")
	return cmd
}

// selectLinkedSong prompts for one of the catalog songs that have a linked
// project and returns its ID.
func selectLinkedSong(cmd *cobra.Command, cat *catalog.Store) (string, error) {
	candidates := make([]*catalog.Song, 0, cat.Len())
	for _, song := range cat.Songs() {
		if song.HasProject() {
			candidates = append(candidates, song)
		}
	}
	if len(candidates) == 0 {
		return "", errors.New("no songs with linked projects; link a project first")
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Select a song:")
	for i, song := range candidates {
		fmt.Fprintf(out, "  %d. %s - %s (%s)\n", i+1, song.Title, song.Artist, song.ID)
	}
	reader := prompt.New(cmd.InOrStdin(), out)
	index, err := reader.SelectIndex("Enter song number", len(candidates))
	if err != nil {
		return "", err
	}
	return candidates[index].ID, nil
}
