package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"songbook/internal/catalog"
	"songbook/internal/config"
	"songbook/internal/stems"
	"songbook/internal/watcher"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch linked projects and re-encode stems on change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStems(func(cfg *config.Config, cat *catalog.Store, svc *stems.Service, logger *slog.Logger) error {
				runCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer cancel()

				w := watcher.New(cfg, cat, svc, logger)
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Watching linked projects (press Ctrl-C to stop)")
				if err := w.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				fmt.Fprintln(out, "Watcher stopped")
				return nil
			})
		},
	}
}
