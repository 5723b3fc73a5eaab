package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mat-analysis/pkg/model"
)

var infoFormat string

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show a summary of the result file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadInput(cmd, false)
		if err != nil {
			return err
		}
		info, _ := s.Info()
		out := cmd.OutOrStdout()
		if infoFormat != formatText {
			return writeStructured(out, infoFormat, info)
		}

		fmt.Fprintf(out, "Source:      %s\n", info.Source)
		fmt.Fprintf(out, "Load ID:     %s\n", info.LoadID)
		fmt.Fprintf(out, "Variables:   %d (%d resolved)\n", info.VariableCount, info.ResolvedCount)
		fmt.Fprintf(out, "Time points: %d\n", info.TimePoints)
		if info.TimePoints > 0 {
			fmt.Fprintf(out, "Time range:  %g .. %g\n", info.StartTime, info.StopTime)
		}
		fmt.Fprintln(out, "Categories:")
		for _, cat := range model.AllCategories {
			fmt.Fprintf(out, "  %-12s %d\n", cat, info.CategoryCounts[cat])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	addInputFlags(infoCmd)
	infoCmd.Flags().StringVar(&infoFormat, "format", formatText, "Output format: text, json or yaml")
}
