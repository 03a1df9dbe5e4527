package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"songbook/internal/catalog"
	"songbook/internal/config"
	"songbook/internal/fileutil"
	"songbook/internal/prompt"
	"songbook/internal/textutil"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var title string
	var artist string
	var tags []string
	var meta []string
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "add <audio-file>",
		Short: "Add a song to the catalog",
		Args:  cobra.ExactArgs(1),
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

			metadata, err := parseMetadataFlags(meta)
			if err != nil {
				return err
			}

			return ctx.withCatalog(func(cfg *config.Config, cat *catalog.Store) error {
				out := cmd.OutOrStdout()
				reader := prompt.New(cmd.InOrStdin(), out)

				// Prompts are skipped when --yes is given or when stdin is
				// not a terminal and the title and artist came from flags.
				scripted := assumeYes ||
					(!prompt.IsInteractive(cmd.InOrStdin()) && title != "" && artist != "")

				songTitle := strings.TrimSpace(title)
				songArtist := strings.TrimSpace(artist)
				if scripted {
					if songTitle == "" {
						songTitle = textutil.TitleFromFilename(info.Name())
					}
				} else {
					if songTitle == "" {
						songTitle, err = reader.Input("Song title", textutil.TitleFromFilename(info.Name()))
						if err != nil {
							return err
						}
					}
					if songArtist == "" {
						songArtist, err = reader.Input("Artist name", "")
						if err != nil {
							return err
						}
					}
				}
				if songTitle == "" {
					return errors.New("song title is required")
				}
				if songArtist == "" {
					return errors.New("artist name is required (use --artist)")
				}

				songTags := append([]string(nil), tags...)
				if !scripted {
					for {
						more, err := reader.Confirm("Add a tag?", false)
						if err != nil {
							return err
						}
						if !more {
							break
						}
						tag, err := reader.Input("Enter tag", "")
						if err != nil {
							return err
						}
						if tag != "" {
							songTags = append(songTags, tag)
						}
					}
					for {
						more, err := reader.Confirm("Add metadata field?", false)
						if err != nil {
							return err
						}
						if !more {
							break
						}
						key, err := reader.Input("Enter metadata key", "")
						if err != nil {
							return err
						}
						value, err := reader.Input("Enter metadata value", "")
						if err != nil {
							return err
						}
						if key != "" {
							if metadata == nil {
								metadata = make(map[string]string)
							}
							metadata[key] = value
						}
					}
				}

				song := catalog.NewSong(songTitle, songArtist, absPath)
				if filepath.Dir(absPath) != cfg.CatalogDir() {
					song.Filename = absPath
				}
				song.Tags = songTags
				song.Metadata = metadata
				if cat.Contains(song.ID) {
					return fmt.Errorf("song with ID %s already exists", song.ID)
				}
				song.Checksum, err = fileutil.HashFile(absPath)
				if err != nil {
					return fmt.Errorf("hash %s: %w", absPath, err)
				}

				if !scripted {
					fmt.Fprintln(out, "\nSong details:")
					printSongDetail(out, cfg, song)
					confirmed, err := reader.Confirm("Add this song to catalog?", true)
					if err != nil {
						return err
					}
					if !confirmed {
						fmt.Fprintln(out, "Cancelled adding song")
						return nil
					}
				}

				if err := cat.Add(song); err != nil {
					return err
				}
				if err := cat.Save(); err != nil {
					return err
				}
				fmt.Fprintf(out, "Added song: %s by %s\n", song.Title, song.Artist)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Song title (prompts when omitted)")
	cmd.Flags().StringVar(&artist, "artist", "", "Artist name (prompts when omitted)")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag to attach (repeatable)")
	cmd.Flags().StringArrayVar(&meta, "meta", nil, "Metadata entry as key=value (repeatable)")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip prompts and confirmation")
	return cmd
}

func parseMetadataFlags(entries []string) (map[string]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	metadata := make(map[string]string, len(entries))
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid metadata %q (expected key=value)", entry)
		}
		metadata[key] = strings.TrimSpace(value)
	}
	return metadata, nil
}
