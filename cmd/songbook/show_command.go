package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"songbook/internal/catalog"
	"songbook/internal/config"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show [song-id]",
		Short: "Show the catalog or a single song",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(cfg *config.Config, cat *catalog.Store) error {
				out := cmd.OutOrStdout()
				if len(args) == 1 {
					song, ok := cat.Get(args[0])
					if !ok {
						return fmt.Errorf("song %q not found in catalog", args[0])
					}
					printSongDetail(out, cfg, song)
					return nil
				}
				songs := cat.Songs()
				if len(songs) == 0 {
					fmt.Fprintln(out, "Catalog is empty")
					return nil
				}
				fmt.Fprint(out, renderTable(songTableHeaders, buildSongRows(songs), songTableAligns))
				return nil
			})
		},
	}
}
