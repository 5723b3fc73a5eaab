package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mat-analysis/pkg/model"
)

var statsFormat string

var statsCmd = &cobra.Command{
	Use:   "stats NAME...",
	Short: "Print min, max, mean and standard deviation of variables",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadInput(cmd, false)
		if err != nil {
			return err
		}

		entries := make([]model.VariableStats, 0, len(args))
		for _, name := range args {
			st, ok := s.VariableStats(name)
			if !ok {
				warnUnknown(s.Suggest, name)
			}
			entries = append(entries, model.VariableStats{Name: name, Stats: st, Available: ok})
		}
		return printStats(cmd.OutOrStdout(), statsFormat, entries)
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary [NAME...]",
	Short: "Print statistics for every variable, or the given ones",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadInput(cmd, false)
		if err != nil {
			return err
		}
		return printStats(cmd.OutOrStdout(), statsFormat, s.Summary(cmd.Context(), args))
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(summaryCmd)
	for _, c := range []*cobra.Command{statsCmd, summaryCmd} {
		addInputFlags(c)
		c.Flags().StringVar(&statsFormat, "format", formatText, "Output format: text, json or yaml")
	}
}

func printStats(out io.Writer, format string, entries []model.VariableStats) error {
	if format != formatText {
		return writeStructured(out, format, entries)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMIN\tMAX\tMEAN\tSTD\tCOUNT")
	for _, e := range entries {
		if !e.Available {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t0\n", e.Name)
			continue
		}
		fmt.Fprintf(tw, "%s\t%g\t%g\t%g\t%g\t%d\n",
			e.Name, e.Stats.Min, e.Stats.Max, e.Stats.Mean, e.Stats.Std, e.Stats.Count)
	}
	return tw.Flush()
}
