package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/CTAG07/charchain/pkg/runlog"
)

const (
	defaultHistoryLimit = 10
	maxPreviewRunes     = 40
)

func newHistoryCmd(opts *cliOptions, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			rl, err := openRunLog(config.DatabasePath, newLogger(config))
			if err != nil {
				return err
			}
			defer func() {
				_ = rl.Close()
			}()

			summary, err := rl.store.Summary(cmd.Context())
			if err != nil {
				return err
			}
			runs, err := rl.store.Recent(cmd.Context(), opts.limit)
			if err != nil {
				return err
			}
			return writeHistory(stdout, summary, runs, time.Now())
		},
	}
	cmd.Flags().IntVar(&opts.limit, "limit", defaultHistoryLimit, "number of runs to show")
	return cmd
}

func writeHistory(w io.Writer, summary runlog.Summary, runs []runlog.Run, now time.Time) error {
	if _, err := fmt.Fprintf(w, "%s runs, %s characters generated\n",
		humanize.Comma(summary.TotalRuns), humanize.Comma(summary.GeneratedChars)); err != nil {
		return err
	}
	if len(runs) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tWHEN\tWINDOW\tCORPUS\tSEED\tOUTPUT")
	for _, run := range runs {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\n",
			run.ID,
			humanize.RelTime(run.CreatedAt, now, "ago", "from now"),
			run.WindowLength,
			run.CorpusSource,
			strconv.Quote(preview(run.Seed)),
			strconv.Quote(preview(run.Output)),
		)
	}
	return tw.Flush()
}

// preview shortens s to maxPreviewRunes characters.
func preview(s string) string {
	if utf8.RuneCountInString(s) <= maxPreviewRunes {
		return s
	}
	return string([]rune(s)[:maxPreviewRunes]) + "..."
}
