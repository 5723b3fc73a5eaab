package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var (
	historyLimit  int
	historyFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent loads recorded in the history database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.Database.Enabled {
			return fmt.Errorf("load history is disabled, set database.enabled in the config")
		}
		s, err := newService(false)
		if err != nil {
			return err
		}
		records, err := s.History(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if historyFormat != formatText {
			return writeStructured(out, historyFormat, records)
		}
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "WHEN\tSTATUS\tVARIABLES\tPOINTS\tDURATION\tSOURCE")
		for _, r := range records {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%v\t%s\n",
				r.CreatedAt.Local().Format(time.DateTime), r.Status, r.VariableCount, r.TimePoints,
				time.Duration(r.DurationMs)*time.Millisecond, r.Source)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of records")
	historyCmd.Flags().StringVar(&historyFormat, "format", formatText, "Output format: text, json or yaml")
}
