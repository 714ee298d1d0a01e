package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/CTAG07/charchain/pkg/markov"
)

func newStatsCmd(opts *cliOptions, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <window-length> <corpus>",
		Short: "Train on a corpus and print model statistics",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			model, err := loadModel(args[0], args[1], config)
			if err != nil {
				return err
			}
			return writeStats(stdout, model.Stats())
		},
	}
}

func writeStats(w io.Writer, stats markov.ModelStats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := []struct {
		label string
		value int
	}{
		{"window length", stats.WindowLength},
		{"windows", stats.Windows},
		{"transitions", stats.Transitions},
		{"observations", stats.Observations},
		{"alphabet", stats.Alphabet},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", row.label, humanize.Comma(int64(row.value))); err != nil {
			return err
		}
	}
	return tw.Flush()
}
