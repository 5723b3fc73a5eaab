package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchFuzzy bool

var searchCmd = &cobra.Command{
	Use:   "search PATTERN",
	Short: "Find variables whose name contains PATTERN",
	Long: `Find variables whose name contains PATTERN, ignoring case. With --fuzzy
the pattern characters only need to appear in order and the closest matches
are listed first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadInput(cmd, false)
		if err != nil {
			return err
		}

		var matches []string
		if searchFuzzy {
			matches = s.FuzzySearchVariables(args[0])
		} else {
			matches = s.SearchVariables(args[0])
		}
		for _, name := range matches {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		GetLogger().Debug("%d matches for %q", len(matches), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	addInputFlags(searchCmd)
	searchCmd.Flags().BoolVar(&searchFuzzy, "fuzzy", false, "Rank fuzzy subsequence matches")
}
