package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"songbook/internal/config"
	"songbook/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [song-id]",
		Short: "Show recorded processing runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(cfg *config.Config, hist *history.Store) error {
				var runs []*history.Run
				var err error
				if len(args) == 1 {
					runs, err = hist.RunsForSong(cmd.Context(), args[0], limit)
				} else {
					runs, err = hist.RecentRuns(cmd.Context(), limit)
				}
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No history recorded")
					return nil
				}
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						shortRunID(run.ID),
						run.SongID,
						run.Operation,
						string(run.Status),
						run.StartedAt.Format("2006-01-02 15:04:05"),
						formatRunDuration(run),
						run.Detail,
					})
				}
				headers := []string{"Run", "Song", "Operation", "Status", "Started", "Duration", "Detail"}
				aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft}
				fmt.Fprint(out, renderTable(headers, rows, aligns))
				if len(args) == 1 {
					return printEncodedStems(cmd, hist, args[0])
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}

// printEncodedStems appends the song's encode cache so a user can see which
// source checksum produced the stems currently on disk.
func printEncodedStems(cmd *cobra.Command, hist *history.Store, songID string) error {
	records, err := hist.StemsForSong(cmd.Context(), songID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Encoded stems:")
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.TrackID,
			rec.SourceFile,
			shortRunID(rec.SourceChecksum),
			rec.ProcessedAt.Format("2006-01-02 15:04:05"),
		})
	}
	headers := []string{"Track", "Source", "Checksum", "Encoded"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft}
	fmt.Fprint(out, renderTable(headers, rows, aligns))
	return nil
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatRunDuration(run *history.Run) string {
	d := run.Duration()
	if d <= 0 {
		return "-"
	}
	return d.Round(time.Millisecond).String()
}
