package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mat-analysis/pkg/writer"
)

var (
	plotHeight int
	plotWidth  int
)

var plotCmd = &cobra.Command{
	Use:   "plot KEY...",
	Short: "Draw variables as a terminal line chart",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadInput(cmd, false)
		if err != nil {
			return err
		}

		height, width := cfg.Plot.Height, cfg.Plot.Width
		if plotHeight > 0 {
			height = plotHeight
		}
		if plotWidth > 0 {
			width = plotWidth
		}

		series, _ := s.ReadVariables(args)
		columns := make([][]float64, len(series))
		for i, sr := range series {
			if len(sr) == 0 {
				warnUnknown(s.Suggest, args[i])
			}
			columns[i] = sr
		}

		w := writer.NewPlotWriter(height, width, uint(cfg.Plot.Precision))
		return w.Write(writer.NewTable(args, columns), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	addInputFlags(plotCmd)
	plotCmd.Flags().IntVar(&plotHeight, "height", 0, "Chart height in rows (default from config)")
	plotCmd.Flags().IntVar(&plotWidth, "width", 0, "Chart width in columns (default from config)")
}
