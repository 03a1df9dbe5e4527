package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"songbook/internal/catalog"
	"songbook/internal/config"
	"songbook/internal/preflight"
	"songbook/internal/stems"
)

func newLinkCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "link <song-id> <project.rpp>",
		Short: "Link a REAPER project file to a catalog song",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := preflight.RequireTools(cfg); err != nil {
				return err
			}
			return ctx.withStems(func(cfg *config.Config, cat *catalog.Store, svc *stems.Service, logger *slog.Logger) error {
				result, err := svc.LinkProject(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Linked %d tracks from %s to %s\n",
					len(result.Tracks), filepath.Base(result.ProjectPath), result.Song.ID)
				if result.Preserved > 0 {
					fmt.Fprintf(out, "Outputs preserved for %d unchanged tracks\n", result.Preserved)
				}
				return nil
			})
		},
	}
}
