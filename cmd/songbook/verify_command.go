package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"songbook/internal/catalog"
	"songbook/internal/config"
	"songbook/internal/fileutil"
)

func newVerifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Verify catalog files against stored checksums",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(cfg *config.Config, cat *catalog.Store) error {
				out := cmd.OutOrStdout()
				songs := cat.Songs()
				if len(songs) == 0 {
					fmt.Fprintln(out, "Catalog is empty")
					return nil
				}
				failures := 0
				for _, song := range songs {
					path := mediaPath(cfg, song)
					if !fileutil.IsFile(path) {
						fmt.Fprintf(cmd.ErrOrStderr(), "Error: File not found: %s\n", path)
						failures++
						continue
					}
					hash, err := fileutil.HashFile(path)
					if err != nil {
						return fmt.Errorf("hash %s: %w", path, err)
					}
					if hash != song.Checksum {
						fmt.Fprintf(out, "Hash mismatch for %s:\n", song.ID)
						fmt.Fprintf(out, "  Stored:  %s\n", song.Checksum)
						fmt.Fprintf(out, "  Current: %s\n", hash)
						failures++
					}
				}
				if failures > 0 {
					return fmt.Errorf("%d of %d songs failed verification", failures, len(songs))
				}
				fmt.Fprintln(out, "All files verified successfully!")
				return nil
			})
		},
	}
}
