package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"songbook/internal/catalog"
	"songbook/internal/config"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search songs by title, artist, or tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(args[0])
			if query == "" {
				return errors.New("search query is required")
			}
			return ctx.withCatalog(func(cfg *config.Config, cat *catalog.Store) error {
				out := cmd.OutOrStdout()
				matches := cat.Search(query, limit)
				if len(matches) == 0 {
					fmt.Fprintf(out, "No songs match %q\n", query)
					return nil
				}
				fmt.Fprint(out, renderTable(songTableHeaders, buildSongRows(matches), songTableAligns))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "Maximum number of results")
	return cmd
}
