package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mat-analysis/pkg/model"
	"github.com/mat-analysis/pkg/writer"
)

// readOutput is the JSON document printed by the read command.
type readOutput struct {
	Time      model.Series            `json:"time"`
	Variables map[string]model.Series `json:"variables"`
	Order     []string                `json:"order"`
}

var readCmd = &cobra.Command{
	Use:   "read KEY...",
	Short: "Print variable series as JSON",
	Long: `Print the series of each KEY as JSON. A key is a variable name or a
difference of two variables such as "a - b". Keys that cannot be resolved
print an empty series.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadInput(cmd, false)
		if err != nil {
			return err
		}

		series, axis := s.ReadVariables(args)
		doc := readOutput{
			Time:      axis,
			Variables: make(map[string]model.Series, len(args)),
			Order:     args,
		}
		for i, key := range args {
			doc.Variables[key] = series[i]
			if len(series[i]) == 0 {
				warnUnknown(s.Suggest, key)
			}
		}
		return writer.NewPrettyJSONWriter[readOutput]().Write(doc, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
	addInputFlags(readCmd)
}

func warnUnknown(suggest func(string) string, key string) {
	if hint := suggest(key); hint != "" && hint != key {
		GetLogger().Warn("no data for %q, did you mean %q?", key, hint)
		return
	}
	GetLogger().Warn("no data for %q", key)
}
